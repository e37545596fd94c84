package provider

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"balance_formatter/internal/app/port"
	"balance_formatter/internal/domain/entity"
	"balance_formatter/internal/infrastructure/configloader"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const address = "0x71c7656ec7ab88b098defb751b7401b5f6d8976f"

func TestWalletProviderCachesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "balances.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"wallets":[{"address":"`+address+`","balances":[
		{"currency":"ETH","amount":1.5,"blockchain":"Ethereum"}
	]}]}`), 0o644))

	p := NewWalletProvider(path, port.NopLogger{})
	wallets, err := p.GetWallets()
	require.NoError(t, err)
	require.Len(t, wallets, 1)

	// later reads come from memory
	require.NoError(t, os.Remove(path))
	wallets[0].Balances[0].Amount = 99

	w, err := p.GetWalletByAddress(address)
	require.NoError(t, err)
	assert.Equal(t, 1.5, w.Balances[0].Amount, "callers get copies")

	_, err = p.GetWalletByAddress("0x0000000000000000000000000000000000000001")
	assert.ErrorIs(t, err, entity.ErrWalletNotFound)

	_, err = p.GetWalletByAddress("bogus")
	assert.ErrorIs(t, err, entity.ErrInvalidAddress)
}

func TestWalletProviderLoadError(t *testing.T) {
	p := NewWalletProvider(filepath.Join(t.TempDir(), "missing.json"), port.NopLogger{})
	_, err := p.GetWallets()
	assert.Error(t, err)
}

func TestNewPriceSourcePrefersFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prices.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"currency":"ETH","date":"2023-08-29T07:10:52.000Z","price":1645.93}]`), 0o644))

	cfg := configloader.Default().Prices
	cfg.File = path

	src := NewPriceSource(cfg, zap.NewNop(), port.NopLogger{})
	prices, err := src.FetchPrices(context.Background())
	require.NoError(t, err)
	require.Len(t, prices, 1)
	assert.Equal(t, "ETH", prices[0].Currency)
}
