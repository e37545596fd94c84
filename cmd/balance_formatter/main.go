package main

import (
	"fmt"
	"os"

	"balance_formatter/internal/infrastructure/configloader"
	"balance_formatter/internal/pkg/logger"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const defaultConfigPath = "config/config.yml"

var (
	configPath string
	cfg        *configloader.Config
	zapLogger  *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "balance-formatter",
	Short: "Format wallet balances by chain priority and USD value",
	Long: `balance-formatter ranks the balances held by a wallet by the priority of
the chain they live on, drops empty or unsupported entries, and values each
row in USD from the token price feed.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cfg != nil {
			return nil
		}
		loaded, err := configloader.Load(configPath)
		if err != nil {
			return err
		}
		zl, err := logger.Init(loaded.Logging.Level)
		if err != nil {
			return err
		}
		cfg, zapLogger = loaded, zl
		zapLogger.Debug("Configuration loaded", zap.String("path", configPath))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Sync()
	},
}

func init() {
	if err := godotenv.Load(); err != nil {
		logrus.Debug("No .env file found, using process environment")
	}

	defaultPath := os.Getenv("CONFIG_PATH")
	if defaultPath == "" {
		defaultPath = defaultConfigPath
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", defaultPath, "path to the YAML configuration file (env CONFIG_PATH)")

	rootCmd.AddCommand(serveCmd, formatCmd, pricesCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
