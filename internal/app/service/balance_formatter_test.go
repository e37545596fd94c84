package service

import (
	"math"
	"strconv"
	"testing"

	"balance_formatter/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatExample(t *testing.T) {
	f := NewBalanceFormatter(entity.PriorityTable{entity.Osmosis: 100, entity.Ethereum: 50}, DefaultFormatOptions())
	balances := []entity.WalletBalance{
		{Currency: "BTC", Amount: 1, Blockchain: "osmosis"},
		{Currency: "ETH", Amount: 0, Blockchain: "ethereum"},
		{Currency: "USD", Amount: 5, Blockchain: "ethereum"},
	}
	prices := entity.PriceTable{"BTC": 30000, "USD": 1}

	got := f.Format(balances, prices)

	require.Len(t, got, 2)
	assert.Equal(t, entity.FormattedWalletBalance{
		WalletBalance: balances[0],
		Formatted:     "1.00",
		USDValue:      30000,
		Priority:      100,
	}, got[0])
	assert.Equal(t, entity.FormattedWalletBalance{
		WalletBalance: balances[2],
		Formatted:     "5.00",
		USDValue:      5,
		Priority:      50,
	}, got[1])
}

func TestFormatExcludesNonPositiveAmounts(t *testing.T) {
	f := NewBalanceFormatter(nil, DefaultFormatOptions())
	balances := []entity.WalletBalance{
		{Currency: "A", Amount: 0, Blockchain: "Osmosis"},
		{Currency: "B", Amount: -3, Blockchain: "Osmosis"},
		{Currency: "C", Amount: math.NaN(), Blockchain: "Osmosis"},
		{Currency: "D", Amount: 0.0001, Blockchain: "Osmosis"},
	}

	got := f.Format(balances, nil)

	require.Len(t, got, 1)
	assert.Equal(t, "D", got[0].Currency)
	assert.Equal(t, "0.00", got[0].Formatted)
	for _, b := range got {
		assert.Greater(t, b.Amount, 0.0)
	}
}

func TestFormatExcludesUnknownBlockchains(t *testing.T) {
	f := NewBalanceFormatter(entity.PriorityTable{entity.Osmosis: 100}, DefaultFormatOptions())
	balances := []entity.WalletBalance{
		{Currency: "SOL", Amount: 4, Blockchain: "Solana"},
		{Currency: "ETH", Amount: 1, Blockchain: "Ethereum"}, // known chain, but not ranked by this table
		{Currency: "OSMO", Amount: 2, Blockchain: "OSMOSIS"},
	}

	got := f.Format(balances, entity.PriceTable{"OSMO": 0.5})

	require.Len(t, got, 1)
	assert.Equal(t, "OSMO", got[0].Currency)
	assert.Equal(t, 1.0, got[0].USDValue)
	assert.Equal(t, "unknown_blockchain", f.ExclusionReason(balances[0]))
	assert.Equal(t, "unknown_blockchain", f.ExclusionReason(balances[1]))
	assert.Equal(t, "", f.ExclusionReason(balances[2]))
	assert.Equal(t, "non_positive_amount", f.ExclusionReason(entity.WalletBalance{Amount: 0, Blockchain: "osmosis"}))
}

func TestFormatSortsByPriorityStable(t *testing.T) {
	f := NewBalanceFormatter(nil, DefaultFormatOptions())
	balances := []entity.WalletBalance{
		{Currency: "NEO1", Amount: 1, Blockchain: "Neo"},
		{Currency: "ZIL1", Amount: 1, Blockchain: "Zilliqa"},
		{Currency: "ETH", Amount: 1, Blockchain: "Ethereum"},
		{Currency: "NEO2", Amount: 1, Blockchain: "Neo"},
		{Currency: "OSMO", Amount: 1, Blockchain: "Osmosis"},
		{Currency: "ZIL2", Amount: 1, Blockchain: "Zilliqa"},
		{Currency: "ARB", Amount: 1, Blockchain: "Arbitrum"},
	}

	got := f.Format(balances, nil)

	currencies := make([]string, 0, len(got))
	for i, b := range got {
		currencies = append(currencies, b.Currency)
		if i > 0 {
			assert.GreaterOrEqual(t, got[i-1].Priority, b.Priority)
		}
	}
	// Neo and Zilliqa share priority 20, so their input order must survive.
	assert.Equal(t, []string{"OSMO", "ETH", "ARB", "NEO1", "ZIL1", "NEO2", "ZIL2"}, currencies)
}

func TestFormatMissingPriceIsZero(t *testing.T) {
	f := NewBalanceFormatter(nil, DefaultFormatOptions())
	got := f.Format([]entity.WalletBalance{{Currency: "XYZ", Amount: 12, Blockchain: "Arbitrum"}}, entity.PriceTable{"BTC": 1})

	require.Len(t, got, 1)
	assert.Zero(t, got[0].USDValue)
	assert.Equal(t, "12.00", got[0].Formatted)
}

func TestFormatDoesNotMutateInput(t *testing.T) {
	f := NewBalanceFormatter(nil, DefaultFormatOptions())
	balances := []entity.WalletBalance{
		{Currency: "ZIL", Amount: 1, Blockchain: "Zilliqa"},
		{Currency: "OSMO", Amount: 0, Blockchain: "Osmosis"},
		{Currency: "ETH", Amount: 2, Blockchain: "Ethereum"},
	}
	snapshot := append([]entity.WalletBalance(nil), balances...)

	_ = f.Format(balances, entity.PriceTable{"ETH": 10})

	assert.Equal(t, snapshot, balances)
}

func TestFormatEmptyInput(t *testing.T) {
	f := NewBalanceFormatter(nil, DefaultFormatOptions())
	got := f.Format(nil, nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestFormatPrecision(t *testing.T) {
	balances := []entity.WalletBalance{{Currency: "ZIL", Amount: 1200.4567, Blockchain: "Zilliqa"}}

	tests := []struct {
		precision int32
		want      string
	}{
		{0, "1200"},
		{2, "1200.46"},
		{4, "1200.4567"},
		{6, "1200.456700"},
		{-3, "1200"},
	}
	for _, tt := range tests {
		t.Run(strconv.Itoa(int(tt.precision)), func(t *testing.T) {
			f := NewBalanceFormatter(nil, FormatOptions{Precision: tt.precision})
			got := f.Format(balances, nil)
			require.Len(t, got, 1)
			assert.Equal(t, tt.want, got[0].Formatted)
		})
	}
}

func TestFormatIsIdempotentOnFormattedAmount(t *testing.T) {
	f := NewBalanceFormatter(nil, DefaultFormatOptions())
	amounts := []float64{1.005, 2.675, 0.125, 99.999, 1234.5, 0.1 + 0.2}

	for _, amount := range amounts {
		first := f.Format([]entity.WalletBalance{{Currency: "ETH", Amount: amount, Blockchain: "Ethereum"}}, nil)
		require.Len(t, first, 1)

		reparsed, err := strconv.ParseFloat(first[0].Formatted, 64)
		require.NoError(t, err)

		second := f.Format([]entity.WalletBalance{{Currency: "ETH", Amount: reparsed, Blockchain: "Ethereum"}}, nil)
		require.Len(t, second, 1)
		assert.Equal(t, first[0].Formatted, second[0].Formatted, "amount %v", amount)
	}
}

func TestNewBalanceFormatterCopiesPriorities(t *testing.T) {
	table := entity.PriorityTable{entity.Osmosis: 1}
	f := NewBalanceFormatter(table, DefaultFormatOptions())
	table[entity.Osmosis] = 999

	got := f.Format([]entity.WalletBalance{{Currency: "OSMO", Amount: 1, Blockchain: "osmosis"}}, nil)
	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].Priority)
	assert.Equal(t, int32(2), f.Precision())
}

func TestFormatSortsExtremePriorities(t *testing.T) {
	f := NewBalanceFormatter(entity.PriorityTable{
		entity.Osmosis:  math.MaxInt,
		entity.Ethereum: math.MinInt,
		entity.Neo:      0,
	}, DefaultFormatOptions())
	balances := []entity.WalletBalance{
		{Currency: "ETH", Amount: 1, Blockchain: "Ethereum"},
		{Currency: "OSMO", Amount: 1, Blockchain: "Osmosis"},
		{Currency: "NEO", Amount: 1, Blockchain: "Neo"},
	}

	got := f.Format(balances, nil)

	require.Len(t, got, 3)
	assert.Equal(t, []string{"OSMO", "NEO", "ETH"}, []string{got[0].Currency, got[1].Currency, got[2].Currency})
}

func TestFormatExcludesInfiniteAmounts(t *testing.T) {
	f := NewBalanceFormatter(nil, DefaultFormatOptions())
	inf := entity.WalletBalance{Currency: "ETH", Amount: math.Inf(1), Blockchain: "Ethereum"}

	got := f.Format([]entity.WalletBalance{inf, {Currency: "USD", Amount: 3, Blockchain: "Ethereum"}}, entity.PriceTable{"ETH": 1000})

	require.Len(t, got, 1)
	assert.Equal(t, "USD", got[0].Currency)
	assert.Equal(t, "infinite_amount", f.ExclusionReason(inf))
}
