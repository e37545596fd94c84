package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "balance_formatter"

// Metrics holds the Prometheus collectors of the service. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	balancesFormatted prometheus.Counter
	balancesExcluded  *prometheus.CounterVec
	priceRefreshes    *prometheus.CounterVec
	httpRequests      *prometheus.HistogramVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		balancesFormatted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "balances_formatted_total",
			Help:      "Balances returned by the formatter.",
		}),
		balancesExcluded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "balances_excluded_total",
			Help:      "Balances dropped by the formatter, by reason.",
		}, []string{"reason"}),
		priceRefreshes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "price_refreshes_total",
			Help:      "Price table refreshes, by outcome (source, snapshot, failed).",
		}, []string{"result"}),
		httpRequests: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
	reg.MustRegister(m.balancesFormatted, m.balancesExcluded, m.priceRefreshes, m.httpRequests)
	return m
}

// ObserveFormatted counts n balances returned by the formatter.
func (m *Metrics) ObserveFormatted(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.balancesFormatted.Add(float64(n))
}

// ObserveExcluded counts one balance dropped for reason.
func (m *Metrics) ObserveExcluded(reason string) {
	if m == nil {
		return
	}
	m.balancesExcluded.WithLabelValues(reason).Inc()
}

// ObservePriceRefresh counts a price refresh with the given outcome.
func (m *Metrics) ObservePriceRefresh(result string) {
	if m == nil {
		return
	}
	m.priceRefreshes.WithLabelValues(result).Inc()
}

// ObserveHTTPRequest records the latency of one HTTP request.
func (m *Metrics) ObserveHTTPRequest(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Observe(elapsed.Seconds())
}
