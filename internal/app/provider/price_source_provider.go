package provider

import (
	"time"

	"balance_formatter/internal/app/port"
	"balance_formatter/internal/client"
	"balance_formatter/internal/infrastructure/configloader"
	"balance_formatter/internal/infrastructure/priceloader"

	"go.uber.org/zap"
)

// NewPriceSource picks the price source described by cfg: a local file when
// prices.file is set, the HTTP feed otherwise.
func NewPriceSource(cfg configloader.PricesConfig, zl *zap.Logger, logger port.Logger) port.PriceSource {
	if cfg.File != "" {
		logger.Info("Using price file", "path", cfg.File)
		return priceloader.NewPriceFileLoader(cfg.File, logger.Debug, logger.Warn)
	}

	logger.Info("Using price feed", "url", cfg.SourceURL, "rate_per_second", cfg.RateLimitPerSecond)
	return client.NewPriceClient(
		cfg.SourceURL,
		time.Duration(cfg.RequestTimeoutMillis)*time.Millisecond,
		cfg.RateLimitPerSecond,
		cfg.RateBurst,
		zl,
	)
}
