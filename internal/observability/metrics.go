package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus instruments for the prediction pipeline.
type Metrics struct {
	Evaluations      *prometheus.CounterVec   // labels: outcome={ok,unknown_city,upstream_error,internal_error}
	FallbackScores   prometheus.Counter
	AlertsEmitted    *prometheus.CounterVec   // labels: type, severity
	UpstreamRequests *prometheus.CounterVec   // labels: endpoint={current,forecast}, outcome={success,error}
	UpstreamDuration *prometheus.HistogramVec // labels: endpoint
	CacheLookups     *prometheus.CounterVec   // labels: endpoint={current,forecast}, result={hit,miss}
	RiskScore        prometheus.Histogram
}

// NewMetrics creates and registers all pipeline metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.Evaluations,
		m.FallbackScores,
		m.AlertsEmitted,
		m.UpstreamRequests,
		m.UpstreamDuration,
		m.CacheLookups,
		m.RiskScore,
	)
	return m
}

// NewUnregisteredMetrics creates the instruments without touching the global
// registry, for tests that build more than one pipeline per process.
func NewUnregisteredMetrics() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		Evaluations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "flood_alerts",
			Name:      "evaluations_total",
			Help:      "Prediction evaluations by outcome.",
		}, []string{"outcome"}),
		FallbackScores: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "flood_alerts",
			Name:      "fallback_scores_total",
			Help:      "Evaluations scored by the heuristic because the model was unavailable.",
		}),
		AlertsEmitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "flood_alerts",
			Name:      "alerts_emitted_total",
			Help:      "Hazard alerts emitted by type and severity.",
		}, []string{"type", "severity"}),
		UpstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "flood_alerts",
			Name:      "upstream_requests_total",
			Help:      "Weather provider requests by endpoint and outcome.",
		}, []string{"endpoint", "outcome"}),
		UpstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "flood_alerts",
			Name:      "upstream_request_duration_seconds",
			Help:      "Weather provider request duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"endpoint"}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "flood_alerts",
			Name:      "weather_cache_lookups_total",
			Help:      "Weather cache lookups by endpoint and result.",
		}, []string{"endpoint", "result"}),
		RiskScore: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "flood_alerts",
			Name:      "risk_score",
			Help:      "Distribution of computed flood risk scores.",
			Buckets:   []float64{10, 20, 30, 40, 50, 60, 70, 85, 100},
		}),
	}
}
