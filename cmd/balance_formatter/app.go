package main

import (
	"time"

	"balance_formatter/internal/app/port"
	"balance_formatter/internal/app/provider"
	"balance_formatter/internal/app/service"
	"balance_formatter/internal/infrastructure/configloader"
	"balance_formatter/internal/infrastructure/metrics"
	"balance_formatter/internal/infrastructure/pricestore"
	"balance_formatter/internal/pkg/logger"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// application holds the wired services shared by every subcommand.
type application struct {
	registry      *prometheus.Registry
	metrics       *metrics.Metrics
	priceService  port.TokenPriceService
	walletService *service.WalletServiceImpl
	swapService   *service.SwapServiceImpl
	store         *pricestore.Store
}

func newApplication(cfg *configloader.Config, zl *zap.Logger) (*application, error) {
	appLogger := logger.NewSlogAdapter()

	registry := prometheus.NewRegistry()
	registry.MustRegister(prometheus.NewGoCollector(), prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	app := &application{registry: registry, metrics: m}

	var snapshots port.PriceSnapshotStore
	if cfg.Prices.SnapshotDB != "" {
		store, err := pricestore.NewStore(cfg.Prices.SnapshotDB)
		if err != nil {
			return nil, err
		}
		app.store = store
		snapshots = store
		zl.Info("Price snapshot store opened", zap.String("path", cfg.Prices.SnapshotDB))
	}

	source := provider.NewPriceSource(cfg.Prices, zl, appLogger)
	app.priceService = service.NewTokenPriceService(
		source,
		snapshots,
		time.Duration(cfg.Prices.CacheTTLMinutes)*time.Minute,
		appLogger,
		m,
	)

	wallets := provider.NewWalletProvider(cfg.Balances.File, appLogger)
	formatter := service.NewBalanceFormatter(cfg.PriorityTable(), service.FormatOptions{Precision: cfg.FormatPrecision()})

	app.walletService = service.NewWalletService(wallets, app.priceService, formatter, appLogger, m)
	app.swapService = service.NewSwapService(wallets, app.priceService, appLogger)
	return app, nil
}

func (a *application) Close() error {
	if a.store != nil {
		return a.store.Close()
	}
	return nil
}
