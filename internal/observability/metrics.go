package observability

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the Prometheus counters for the report pipeline and the
// image analysis endpoint.
type Metrics struct {
	ReportsSubmitted *prometheus.CounterVec // label: status (initial validation status)
	ReportsResolved  *prometheus.CounterVec // label: outcome (terminal status after resolution)
	RewardCoins      prometheus.Counter
	ImageAnalyses    *prometheus.CounterVec // label: outcome={success,error}
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.ReportsSubmitted,
		m.ReportsResolved,
		m.RewardCoins,
		m.ImageAnalyses,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		ReportsSubmitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "enviro",
			Name:      "reports_submitted_total",
			Help:      "Reports accepted for validation, by initial status.",
		}, []string{"status"}),
		ReportsResolved: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "enviro",
			Name:      "reports_resolved_total",
			Help:      "Validating reports resolved on status query, by outcome.",
		}, []string{"outcome"}),
		RewardCoins: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "enviro",
			Name:      "reward_coins_total",
			Help:      "Total reward coins granted for verified reports.",
		}),
		ImageAnalyses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "enviro",
			Name:      "image_analyses_total",
			Help:      "Image analysis requests, by outcome.",
		}, []string{"outcome"}),
	}
}
