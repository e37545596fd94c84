package main

import (
	"context"

	"balance_formatter/internal/infrastructure/render"

	"github.com/spf13/cobra"
)

var walletAddress string

var formatCmd = &cobra.Command{
	Use:   "format",
	Short: "Print the formatted balances of a wallet",
	Example: `  balance-formatter format --wallet 0x71C7656EC7ab88b098defB751B7401B5f6d8976F`,
	RunE: runFormat,
}

func init() {
	formatCmd.Flags().StringVarP(&walletAddress, "wallet", "w", "", "wallet address")
	_ = formatCmd.MarkFlagRequired("wallet")
}

func runFormat(cmd *cobra.Command, args []string) error {
	app, err := newApplication(cfg, zapLogger)
	if err != nil {
		return err
	}
	defer app.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	view, err := app.walletService.GetFormattedBalances(ctx, walletAddress)
	if err != nil {
		return err
	}
	return render.Balances(cmd.OutOrStdout(), view)
}
