package render

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"balance_formatter/internal/domain/entity"
	"balance_formatter/internal/pkg/utils"

	"github.com/pterm/pterm"
)

// BalanceTableData lays out one row per formatted balance, headed by the
// column names, followed by a total row.
func BalanceTableData(view *entity.WalletBalanceView) pterm.TableData {
	data := pterm.TableData{{"Key", "Amount", "Formatted", "USD Value", "Priority"}}
	for _, b := range view.Balances {
		data = append(data, []string{
			b.Key(),
			strconv.FormatFloat(b.Amount, 'f', -1, 64),
			b.Formatted,
			utils.RoundToFixed(b.USDValue, 2),
			strconv.Itoa(b.Priority),
		})
	}
	data = append(data, []string{"Total", "", "", utils.RoundToFixed(view.TotalUSDValue, 2), ""})
	return data
}

// PriceTableData lays out one row per quote.
func PriceTableData(prices []entity.TokenPrice) pterm.TableData {
	data := pterm.TableData{{"Currency", "Price (USD)", "Date"}}
	for _, p := range prices {
		date := "-"
		if !p.Date.IsZero() {
			date = p.Date.UTC().Format(time.RFC3339)
		}
		data = append(data, []string{p.Currency, strconv.FormatFloat(p.Price, 'f', -1, 64), date})
	}
	return data
}

// Balances writes the balance sheet of a wallet to w.
func Balances(w io.Writer, view *entity.WalletBalanceView) error {
	if _, err := fmt.Fprintf(w, "Wallet %s\n", view.WalletAddress); err != nil {
		return err
	}
	return table(w, BalanceTableData(view))
}

// Prices writes the price list to w.
func Prices(w io.Writer, prices []entity.TokenPrice) error {
	return table(w, PriceTableData(prices))
}

func table(w io.Writer, data pterm.TableData) error {
	out, err := pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(data).Srender()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}
	_, err = fmt.Fprintln(w, out)
	return err
}
