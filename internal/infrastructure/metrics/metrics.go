package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Conta metrics
	ContaMutations *prometheus.CounterVec

	// Report metrics
	ReportsGenerated *prometheus.CounterVec
	ReportDuration   *prometheus.HistogramVec

	// Snapshot cache metrics
	SnapshotLookups *prometheus.CounterVec

	// API metrics
	HTTPRequests  *prometheus.CounterVec
	HTTPDuration  *prometheus.HistogramVec
	HTTPInFlight  prometheus.Gauge
	RateLimitHits prometheus.Counter
}

// New creates all metrics and registers them with reg.
// A nil reg registers with the default Prometheus registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	factory := promauto.With(reg)

	return &Metrics{
		ContaMutations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "livrocaixa_conta_mutations_total",
				Help: "Total conta mutations by operation",
			},
			[]string{"operation"},
		),

		ReportsGenerated: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "livrocaixa_reports_generated_total",
				Help: "Total reports generated by kind and output format",
			},
			[]string{"kind", "format"},
		),
		ReportDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "livrocaixa_report_duration_seconds",
				Help:    "Duration of report generation",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"kind"},
		),

		SnapshotLookups: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "livrocaixa_snapshot_lookups_total",
				Help: "Conta snapshot cache lookups by result",
			},
			[]string{"result"},
		),

		HTTPRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "livrocaixa_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "livrocaixa_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		HTTPInFlight: factory.NewGauge(prometheus.GaugeOpts{
			Name: "livrocaixa_http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		}),
		RateLimitHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "livrocaixa_rate_limit_hits_total",
			Help: "Total requests rejected by the rate limiter",
		}),
	}
}

// RecordContaMutation counts a create, update or delete.
func (m *Metrics) RecordContaMutation(operation string) {
	m.ContaMutations.WithLabelValues(operation).Inc()
}

// RecordReport counts a generated report and observes how long it took.
func (m *Metrics) RecordReport(kind, format string, elapsed time.Duration) {
	m.ReportsGenerated.WithLabelValues(kind, format).Inc()
	m.ReportDuration.WithLabelValues(kind).Observe(elapsed.Seconds())
}

// RecordSnapshotLookup counts a snapshot cache hit or miss.
func (m *Metrics) RecordSnapshotLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.SnapshotLookups.WithLabelValues(result).Inc()
}

// RecordHTTPRequest records a finished HTTP request.
func (m *Metrics) RecordHTTPRequest(method, path string, status int, elapsed time.Duration) {
	m.HTTPRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.HTTPDuration.WithLabelValues(method, path).Observe(elapsed.Seconds())
}
