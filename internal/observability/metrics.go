package observability

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/couchcryptid/fantasy-season-service/internal/season"
)

const namespace = "season"

// Metrics holds the Prometheus counters, histograms, and gauges for the season service.
type Metrics struct {
	Evaluations         prometheus.Counter
	PhaseTransitions    prometheus.Counter
	SnapshotsPublished  prometheus.Counter
	PublishErrors       prometheus.Counter
	PublishDuration     prometheus.Histogram
	PublisherRunning    prometheus.Gauge
	SeasonYear          prometheus.Gauge
	CurrentPhase        *prometheus.GaugeVec     // labels: status={preseason,regular,playoffs,offseason}
	HTTPRequestDuration *prometheus.HistogramVec // labels: route, code
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(m.collectors()...)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		Evaluations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "evaluations_total",
			Help:      "Total season phase evaluations.",
		}),
		PhaseTransitions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "phase_transitions_total",
			Help:      "Total observed changes of season phase.",
		}),
		SnapshotsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "snapshots_published_total",
			Help:      "Total season snapshots written to the sink topic.",
		}),
		PublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "publish_errors_total",
			Help:      "Total failed snapshot publishes.",
		}),
		PublishDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "publish_duration_seconds",
			Help:      "Duration of a snapshot publish.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		}),
		PublisherRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "publisher_running",
			Help:      "1 when the publisher loop is active, 0 when shut down.",
		}),
		SeasonYear: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "year",
			Help:      "Season-year of the most recent evaluation.",
		}),
		CurrentPhase: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "current_phase",
			Help:      "1 for the phase of the most recent evaluation, 0 for the others.",
		}, []string{"status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Season API request duration in seconds.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}, []string{"route", "code"}),
	}
}

func (m *Metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.Evaluations,
		m.PhaseTransitions,
		m.SnapshotsPublished,
		m.PublishErrors,
		m.PublishDuration,
		m.PublisherRunning,
		m.SeasonYear,
		m.CurrentPhase,
		m.HTTPRequestDuration,
	}
}

// ObserveSeason records an evaluation and flips the phase gauge.
func (m *Metrics) ObserveSeason(info season.SeasonInfo) {
	m.Evaluations.Inc()
	m.SeasonYear.Set(float64(info.Year))
	for _, s := range season.Statuses {
		v := 0.0
		if s == info.Status {
			v = 1
		}
		m.CurrentPhase.WithLabelValues(s.String()).Set(v)
	}
}
