package service

import (
	"context"
	"fmt"
	"math"

	"balance_formatter/internal/app/port"
	"balance_formatter/internal/domain/entity"
	"balance_formatter/internal/infrastructure/balanceloader"
	"balance_formatter/internal/pkg/utils"
)

const (
	// QuoteUSDPrecision is the number of fractional digits of USD values.
	QuoteUSDPrecision = 2
	// QuoteAmountPrecision is the number of fractional digits of the computed leg.
	QuoteAmountPrecision = 6
)

// SwapServiceImpl implements port.SwapService.
type SwapServiceImpl struct {
	walletProvider port.WalletProvider
	tokenPriceSvc  port.TokenPriceService
	logger         port.Logger
}

// NewSwapService creates a new instance of SwapServiceImpl.
func NewSwapService(wp port.WalletProvider, tps port.TokenPriceService, l port.Logger) *SwapServiceImpl {
	return &SwapServiceImpl{walletProvider: wp, tokenPriceSvc: tps, logger: l}
}

// Quote prices a conversion from req.FromCurrency into req.ToCurrency.
// req.Amount is the from-leg or the to-leg depending on req.Side; the other
// leg is derived through the USD value.
func (s *SwapServiceImpl) Quote(ctx context.Context, req entity.SwapRequest) (*entity.SwapQuote, error) {
	side, err := entity.ParseSwapSide(string(req.Side))
	if err != nil {
		return nil, err
	}
	if !(req.Amount > 0) || math.IsInf(req.Amount, 0) {
		return nil, fmt.Errorf("%w: %v", entity.ErrInvalidAmount, req.Amount)
	}
	if req.FromCurrency == "" || req.ToCurrency == "" {
		return nil, fmt.Errorf("%w: both currencies are required", entity.ErrUnknownCurrency)
	}
	if req.FromCurrency == req.ToCurrency {
		return nil, fmt.Errorf("%w: %s", entity.ErrSameCurrency, req.FromCurrency)
	}

	address, err := balanceloader.NormalizeAddress(req.WalletAddress)
	if err != nil {
		return nil, err
	}
	wallet, err := s.walletProvider.GetWalletByAddress(address)
	if err != nil {
		return nil, err
	}

	prices, err := s.tokenPriceSvc.GetPriceTable(ctx)
	if err != nil {
		return nil, err
	}
	fromPrice, toPrice := prices.Price(req.FromCurrency), prices.Price(req.ToCurrency)
	if fromPrice <= 0 {
		return nil, fmt.Errorf("%w: no price for %s", entity.ErrUnknownCurrency, req.FromCurrency)
	}
	if toPrice <= 0 {
		return nil, fmt.Errorf("%w: no price for %s", entity.ErrUnknownCurrency, req.ToCurrency)
	}

	quote := &entity.SwapQuote{
		FromCurrency: req.FromCurrency,
		ToCurrency:   req.ToCurrency,
		FromPrice:    fromPrice,
		ToPrice:      toPrice,
		Available:    Holding(wallet, req.FromCurrency),
	}
	switch side {
	case entity.SwapSideTo:
		usd := utils.MulFloat(toPrice, req.Amount)
		quote.ToAmount = req.Amount
		quote.USDValue = utils.RoundFloat(usd, QuoteUSDPrecision)
		// from-leg uses the unrounded USD value
		quote.FromAmount = utils.RoundFloat(utils.DivFloat(usd, fromPrice), QuoteAmountPrecision)
	default:
		quote.FromAmount = req.Amount
		quote.USDValue = utils.RoundFloat(utils.MulFloat(fromPrice, req.Amount), QuoteUSDPrecision)
		quote.ToAmount = utils.RoundFloat(utils.DivFloat(quote.USDValue, toPrice), QuoteAmountPrecision)
	}

	if quote.FromAmount > quote.Available {
		s.logger.Info("Swap quote exceeds holding",
			"address", wallet.Address, "currency", req.FromCurrency,
			"requested", quote.FromAmount, "available", quote.Available)
		return nil, fmt.Errorf("%w: need %v %s, have %v", entity.ErrInsufficientFunds, quote.FromAmount, req.FromCurrency, quote.Available)
	}

	s.logger.Debug("Swap quote computed",
		"address", wallet.Address, "from", req.FromCurrency, "to", req.ToCurrency,
		"from_amount", quote.FromAmount, "to_amount", quote.ToAmount, "usd", quote.USDValue)
	return quote, nil
}
