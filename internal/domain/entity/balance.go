package entity

// DefaultPrecision is the number of fractional digits shown for amounts.
const DefaultPrecision = 2

// WalletBalance is a raw balance as reported by the balance source.
type WalletBalance struct {
	Currency   string  `json:"currency" yaml:"currency"`
	Amount     float64 `json:"amount" yaml:"amount"`
	Blockchain string  `json:"blockchain" yaml:"blockchain"`
}

// FormattedWalletBalance is a WalletBalance prepared for display.
// It is derived on every request and never persisted.
type FormattedWalletBalance struct {
	WalletBalance
	Formatted string  `json:"formatted"`
	USDValue  float64 `json:"usdValue"`
	Priority  int     `json:"priority"`
}

// Key returns the row identifier used by renderers. A wallet may hold several
// currencies on one chain, so the blockchain alone is not unique.
func (b FormattedWalletBalance) Key() string {
	return b.Blockchain + "_" + b.Currency
}

// Wallet groups the balances held by one address.
type Wallet struct {
	Address  string          `json:"address"`
	Balances []WalletBalance `json:"balances"`
}

// WalletBalanceView is the formatted balance sheet of a single wallet.
type WalletBalanceView struct {
	WalletAddress string                   `json:"walletAddress"`
	Balances      []FormattedWalletBalance `json:"balances"`
	TotalUSDValue float64                  `json:"totalUSDValue"`
}
