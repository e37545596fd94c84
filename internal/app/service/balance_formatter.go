package service

import (
	"cmp"
	"math"
	"slices"

	"balance_formatter/internal/domain/entity"
	"balance_formatter/internal/pkg/utils"
)

// FormatOptions configures BalanceFormatter.
type FormatOptions struct {
	// Precision is the number of fractional digits in FormattedWalletBalance.Formatted.
	// Negative values are treated as 0.
	Precision int32
}

// DefaultFormatOptions returns the options used when nothing is configured.
func DefaultFormatOptions() FormatOptions {
	return FormatOptions{Precision: entity.DefaultPrecision}
}

// BalanceFormatter filters, values and ranks wallet balances for display.
// It holds no mutable state and is safe for concurrent use.
type BalanceFormatter struct {
	priorities entity.PriorityTable
	precision  int32
}

// NewBalanceFormatter creates a BalanceFormatter. A nil priority table means
// entity.DefaultPriorityTable.
func NewBalanceFormatter(priorities entity.PriorityTable, opts FormatOptions) *BalanceFormatter {
	if priorities == nil {
		priorities = entity.DefaultPriorityTable()
	}
	precision := opts.Precision
	if precision < 0 {
		precision = 0
	}
	table := make(entity.PriorityTable, len(priorities))
	for chain, p := range priorities {
		table[chain] = p
	}
	return &BalanceFormatter{priorities: table, precision: precision}
}

// Precision returns the number of fractional digits used for amounts.
func (f *BalanceFormatter) Precision() int32 {
	return f.precision
}

// Format keeps the balances held on a ranked chain with a positive finite amount,
// attaches the display amount, USD value and priority, and returns them
// ordered by priority, highest first. Balances with equal priority keep their
// input order. Currencies missing from prices are valued at 0.
func (f *BalanceFormatter) Format(balances []entity.WalletBalance, prices entity.PriceTable) []entity.FormattedWalletBalance {
	formatted := make([]entity.FormattedWalletBalance, 0, len(balances))
	for _, balance := range balances {
		priority, ok := f.priorities.Lookup(entity.ParseBlockchain(balance.Blockchain))
		if !ok || !displayableAmount(balance.Amount) {
			continue
		}
		formatted = append(formatted, entity.FormattedWalletBalance{
			WalletBalance: balance,
			Formatted:     utils.RoundToFixed(balance.Amount, f.precision),
			USDValue:      utils.MulFloat(prices.Price(balance.Currency), balance.Amount),
			Priority:      priority,
		})
	}

	slices.SortStableFunc(formatted, func(lhs, rhs entity.FormattedWalletBalance) int {
		return cmp.Compare(rhs.Priority, lhs.Priority)
	})
	return formatted
}

// ExclusionReason tells why Format dropped a balance. Empty means kept.
func (f *BalanceFormatter) ExclusionReason(balance entity.WalletBalance) string {
	if _, ok := f.priorities.Lookup(entity.ParseBlockchain(balance.Blockchain)); !ok {
		return "unknown_blockchain"
	}
	if math.IsInf(balance.Amount, 1) {
		return "infinite_amount"
	}
	if !displayableAmount(balance.Amount) {
		return "non_positive_amount"
	}
	return ""
}

// displayableAmount rejects zero, negative, NaN and infinite amounts.
func displayableAmount(amount float64) bool {
	return amount > 0 && !math.IsInf(amount, 1)
}
