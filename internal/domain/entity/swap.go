package entity

import "fmt"

// SwapSide tells which leg of a swap the requested amount refers to.
type SwapSide string

const (
	SwapSideFrom SwapSide = "from"
	SwapSideTo   SwapSide = "to"
)

// ParseSwapSide validates s. An empty string means SwapSideFrom.
func ParseSwapSide(s string) (SwapSide, error) {
	switch SwapSide(s) {
	case "", SwapSideFrom:
		return SwapSideFrom, nil
	case SwapSideTo:
		return SwapSideTo, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidSwapSide, s)
	}
}

// SwapRequest asks for a conversion quote between two currencies held by a wallet.
type SwapRequest struct {
	WalletAddress string   `json:"walletAddress"`
	FromCurrency  string   `json:"fromCurrency"`
	ToCurrency    string   `json:"toCurrency"`
	Amount        float64  `json:"amount"`
	Side          SwapSide `json:"side"`
}

// SwapQuote is the priced result of a SwapRequest.
type SwapQuote struct {
	FromCurrency string  `json:"fromCurrency"`
	ToCurrency   string  `json:"toCurrency"`
	FromAmount   float64 `json:"fromAmount"`
	ToAmount     float64 `json:"toAmount"`
	USDValue     float64 `json:"usdValue"`
	FromPrice    float64 `json:"fromPrice"`
	ToPrice      float64 `json:"toPrice"`
	Available    float64 `json:"available"`
}
