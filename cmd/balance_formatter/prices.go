package main

import (
	"context"

	"balance_formatter/internal/infrastructure/render"

	"github.com/spf13/cobra"
)

var priceSearch string

var pricesCmd = &cobra.Command{
	Use:   "prices",
	Short: "Print the latest USD price of every currency",
	RunE:  runPrices,
}

func init() {
	pricesCmd.Flags().StringVarP(&priceSearch, "search", "s", "", "only show currencies containing this text")
}

func runPrices(cmd *cobra.Command, args []string) error {
	app, err := newApplication(cfg, zapLogger)
	if err != nil {
		return err
	}
	defer app.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	prices, err := app.priceService.ListPrices(ctx, priceSearch)
	if err != nil {
		return err
	}
	return render.Prices(cmd.OutOrStdout(), prices)
}
