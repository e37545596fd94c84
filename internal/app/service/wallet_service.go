package service

import (
	"context"
	"fmt"

	"balance_formatter/internal/app/port"
	"balance_formatter/internal/domain/entity"
	"balance_formatter/internal/infrastructure/balanceloader"
	"balance_formatter/internal/infrastructure/metrics"
	"balance_formatter/internal/pkg/utils"
)

// WalletServiceImpl implements port.WalletService.
type WalletServiceImpl struct {
	walletProvider port.WalletProvider
	tokenPriceSvc  port.TokenPriceService
	formatter      *BalanceFormatter
	logger         port.Logger
	metrics        *metrics.Metrics
}

// NewWalletService creates a new instance of WalletServiceImpl.
func NewWalletService(
	wp port.WalletProvider,
	tps port.TokenPriceService,
	formatter *BalanceFormatter,
	l port.Logger,
	m *metrics.Metrics,
) *WalletServiceImpl {
	if formatter == nil {
		formatter = NewBalanceFormatter(nil, DefaultFormatOptions())
	}
	return &WalletServiceImpl{
		walletProvider: wp,
		tokenPriceSvc:  tps,
		formatter:      formatter,
		logger:         l,
		metrics:        m,
	}
}

// ListWallets returns the address of every known wallet.
func (s *WalletServiceImpl) ListWallets(_ context.Context) ([]string, error) {
	wallets, err := s.walletProvider.GetWallets()
	if err != nil {
		s.logger.Error("Failed to get wallets", "error", err)
		return nil, fmt.Errorf("failed to load wallets: %w", err)
	}
	addresses := make([]string, 0, len(wallets))
	for _, w := range wallets {
		addresses = append(addresses, w.Address)
	}
	return addresses, nil
}

// GetFormattedBalances formats the balances of one wallet against the
// current price table.
func (s *WalletServiceImpl) GetFormattedBalances(ctx context.Context, address string) (*entity.WalletBalanceView, error) {
	normalized, err := balanceloader.NormalizeAddress(address)
	if err != nil {
		return nil, err
	}

	wallet, err := s.walletProvider.GetWalletByAddress(normalized)
	if err != nil {
		s.logger.Warn("Wallet lookup failed", "address", normalized, "error", err)
		return nil, err
	}

	prices, err := s.tokenPriceSvc.GetPriceTable(ctx)
	if err != nil {
		s.logger.Error("Failed to get price table", "address", normalized, "error", err)
		return nil, err
	}

	for _, b := range wallet.Balances {
		if reason := s.formatter.ExclusionReason(b); reason != "" {
			s.logger.Debug("Balance excluded", "address", normalized, "currency", b.Currency, "blockchain", b.Blockchain, "reason", reason)
			s.metrics.ObserveExcluded(reason)
		}
	}

	rows := s.formatter.Format(wallet.Balances, prices)
	s.metrics.ObserveFormatted(len(rows))

	var total float64
	for _, row := range rows {
		if row.USDValue == 0 {
			s.logger.Debug("No price for currency, valued at 0", "currency", row.Currency)
		}
		total += row.USDValue
	}

	view := &entity.WalletBalanceView{
		WalletAddress: wallet.Address,
		Balances:      rows,
		TotalUSDValue: utils.RoundFloat(total, QuoteUSDPrecision),
	}
	s.logger.Info("Formatted wallet balances", "address", wallet.Address, "rows", len(rows), "total_usd", view.TotalUSDValue)
	return view, nil
}

// Holding sums the amount of currency held by a wallet across all chains.
func Holding(wallet *entity.Wallet, currency string) float64 {
	var sum float64
	for _, b := range wallet.Balances {
		if b.Currency == currency && b.Amount > 0 {
			sum += b.Amount
		}
	}
	return sum
}
