package priceloader

import (
	"context"
	"fmt"

	"balance_formatter/internal/app/port"
	"balance_formatter/internal/domain/entity"
	"balance_formatter/internal/pkg/utils"
)

// PriceFileLoader implements port.PriceSource by reading a JSON price feed
// from disk. The file has the same shape as the HTTP feed.
type PriceFileLoader struct {
	filePath   string
	loggerInfo func(msg string, args ...any)
	loggerWarn func(msg string, args ...any)
}

// NewPriceFileLoader creates a new PriceFileLoader.
func NewPriceFileLoader(filePath string, loggerInfo func(msg string, args ...any), loggerWarn func(msg string, args ...any)) port.PriceSource {
	return &PriceFileLoader{
		filePath:   filePath,
		loggerInfo: loggerInfo,
		loggerWarn: loggerWarn,
	}
}

// FetchPrices reads and decodes the price file. Entries without a currency
// are skipped.
func (l *PriceFileLoader) FetchPrices(ctx context.Context) ([]entity.TokenPrice, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var raw []entity.TokenPrice
	if err := utils.ReadJSONFile(l.filePath, &raw); err != nil {
		return nil, fmt.Errorf("failed to load prices: %w", err)
	}

	prices := make([]entity.TokenPrice, 0, len(raw))
	for i, p := range raw {
		if p.Currency == "" {
			if l.loggerWarn != nil {
				l.loggerWarn("Price entry without currency, skipping.", "file", l.filePath, "index", i)
			}
			continue
		}
		prices = append(prices, p)
	}

	if l.loggerInfo != nil {
		l.loggerInfo("Prices loaded from file", "path", l.filePath, "count", len(prices))
	}
	return prices, nil
}
