package port

import (
	"context"

	"balance_formatter/internal/domain/entity"
)

// WalletProvider defines the interface for fetching wallets and their raw balances.
type WalletProvider interface {
	GetWallets() ([]entity.Wallet, error)
	// GetWalletByAddress matches addresses case-insensitively.
	// Returns entity.ErrWalletNotFound when no wallet matches.
	GetWalletByAddress(address string) (*entity.Wallet, error)
}

// BalanceFormatter turns raw balances into display rows.
type BalanceFormatter interface {
	Format(balances []entity.WalletBalance, prices entity.PriceTable) []entity.FormattedWalletBalance
}

// WalletService serves formatted balance sheets.
type WalletService interface {
	ListWallets(ctx context.Context) ([]string, error)
	GetFormattedBalances(ctx context.Context, address string) (*entity.WalletBalanceView, error)
}

// SwapService prices conversions between currencies held by a wallet.
type SwapService interface {
	Quote(ctx context.Context, req entity.SwapRequest) (*entity.SwapQuote, error)
}
