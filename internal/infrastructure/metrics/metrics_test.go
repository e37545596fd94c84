package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsRecord(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveFormatted(3)
	m.ObserveFormatted(0)
	m.ObserveExcluded("unknown_blockchain")
	m.ObserveExcluded("unknown_blockchain")
	m.ObservePriceRefresh("source")
	m.ObserveHTTPRequest("GET", "/api/v1/prices", 200, 15*time.Millisecond)

	assert.Equal(t, 3.0, testutil.ToFloat64(m.balancesFormatted))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.balancesExcluded.WithLabelValues("unknown_blockchain")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.priceRefreshes.WithLabelValues("source")))

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.Len(t, families, 4)
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveFormatted(1)
		m.ObserveExcluded("x")
		m.ObservePriceRefresh("failed")
		m.ObserveHTTPRequest("GET", "/", 500, time.Second)
	})
}
