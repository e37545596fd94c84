package configloader

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"balance_formatter/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAppliesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(""))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, int32(entity.DefaultPrecision), cfg.FormatPrecision())
	assert.Equal(t, defaultPriceSourceURL, cfg.Prices.SourceURL)
	assert.Equal(t, int64(10000), cfg.Prices.RequestTimeoutMillis)
	assert.Equal(t, 5, cfg.Prices.CacheTTLMinutes)
	assert.Equal(t, 2.0, cfg.Prices.RateLimitPerSecond)
	assert.Equal(t, 1, cfg.Prices.RateBurst)
	assert.Empty(t, cfg.Prices.SnapshotDB)
	assert.Equal(t, "data/balances.json", cfg.Balances.File)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowOrigins)
	assert.Equal(t, entity.DefaultPriorityTable(), cfg.PriorityTable())
}

func TestParseCustomValues(t *testing.T) {
	data := []byte(`
server:
  port: "9090"
logging:
  level: debug
formatter:
  precision: 0
  priorities:
    Osmosis: 10
    neo: 99
prices:
  file: data/prices.json
  cacheTTLMinutes: 1
balances:
  file: /tmp/balances.json
`)
	cfg, err := Parse(data)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, int32(0), cfg.FormatPrecision())
	assert.Equal(t, entity.PriorityTable{entity.Osmosis: 10, entity.Neo: 99}, cfg.PriorityTable())
	assert.Equal(t, "data/prices.json", cfg.Prices.File)
	assert.Empty(t, cfg.Prices.SourceURL, "a price file replaces the default URL")
	assert.Equal(t, 1, cfg.Prices.CacheTTLMinutes)
	assert.Equal(t, "/tmp/balances.json", cfg.Balances.File)
}

func TestParseRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"negative precision", "formatter:\n  precision: -1\n"},
		{"unknown chain", "formatter:\n  priorities:\n    dogechain: 5\n"},
		{"bad url", "prices:\n  sourceURL: ftp://prices\n"},
		{"bad yaml", "server: [unterminated"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			assert.Error(t, err)
		})
	}

	_, err := Parse([]byte("formatter:\n  priorities:\n    dogechain: 5\n"))
	assert.True(t, errors.Is(err, entity.ErrUnknownBlockchain))
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: \"7000\"\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "7000", cfg.Server.Port)

	_, err = Load(filepath.Join(dir, "missing.yml"))
	assert.Error(t, err)
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, int32(2), cfg.FormatPrecision())
}
