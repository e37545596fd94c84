package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"balance_formatter/internal/infrastructure/restapi"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const initialPriceLoadTimeout = 30 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	app, err := newApplication(cfg, zapLogger)
	if err != nil {
		return err
	}
	defer app.Close()

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), initialPriceLoadTimeout)
		defer cancel()
		if err := app.priceService.LoadAndCachePrices(ctx); err != nil {
			zapLogger.Error("Failed to perform initial load of token prices", zap.Error(err))
		} else {
			zapLogger.Info("Initial token price loading completed.")
		}
	}()

	if cfg.Logging.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	handler := restapi.NewHandler(app.walletService, app.priceService, app.swapService)
	router := restapi.SetupRouter(handler, restapi.RouterOptions{
		Logger:       zapLogger.Named("http"),
		Metrics:      app.metrics,
		Gatherer:     app.registry,
		AllowOrigins: cfg.CORS.AllowOrigins,
	})

	addr := cfg.Server.Port
	if !strings.Contains(addr, ":") {
		addr = ":" + addr
	}
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		zapLogger.Info("Server starting", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-serveErr:
		if err != nil {
			zapLogger.Error("Failed to start server", zap.Error(err))
			return err
		}
		return nil
	case sig := <-quit:
		zapLogger.Info("Shutting down server...", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Error("Server forced to shutdown", zap.Error(err))
		return err
	}
	zapLogger.Info("Server exiting")
	return nil
}
