// Package metrics holds the Prometheus collectors of leaderlens.
package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/huangsam/leaderlens/schema"
)

var (
	globalMetrics *Metrics
	metricsOnce   sync.Once
)

// Metrics holds Prometheus metrics for comparisons and the HTTP API.
type Metrics struct {
	ComparisonsTotal     *prometheus.CounterVec
	ReportsPerComparison prometheus.Histogram
	ComparisonDuration   *prometheus.HistogramVec
	RequestDuration      *prometheus.HistogramVec
	SummariesTotal       *prometheus.CounterVec
}

// NewMetrics creates and registers the collectors on the default registry.
//
// Registration happens once per process; later calls return the same instance.
//
// Metrics:
//   - leaderlens_comparisons_total{source} - comparisons computed
//   - leaderlens_reports_per_comparison - reports in each comparison
//   - leaderlens_comparison_duration_seconds{source} - time spent loading and comparing
//   - leaderlens_http_request_duration_seconds{method,route,status} - HTTP latency
//   - leaderlens_summaries_total{outcome} - AI summaries by outcome
func NewMetrics() *Metrics {
	metricsOnce.Do(func() {
		globalMetrics = &Metrics{
			ComparisonsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "leaderlens_comparisons_total",
					Help: "Total number of comparisons computed",
				},
				[]string{"source"}, // "cli", "http" or "mcp"
			),

			ReportsPerComparison: promauto.NewHistogram(
				prometheus.HistogramOpts{
					Name:    "leaderlens_reports_per_comparison",
					Help:    "Number of reports merged by a comparison",
					Buckets: []float64{2, 3, 4, 6, 8, 12, 16, 24, 32},
				},
			),

			ComparisonDuration: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "leaderlens_comparison_duration_seconds",
					Help:    "Duration of a comparison in seconds",
					Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12), // 0.5ms to ~1s
				},
				[]string{"source"},
			),

			RequestDuration: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "leaderlens_http_request_duration_seconds",
					Help:    "Duration of HTTP requests in seconds",
					Buckets: prometheus.DefBuckets,
				},
				[]string{"method", "route", "status"},
			),

			SummariesTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "leaderlens_summaries_total",
					Help: "Total number of AI summaries requested",
				},
				[]string{"outcome"}, // "parsed", "raw" or "error"
			),
		}
	})

	return globalMetrics
}

// RecordComparison records a finished comparison.
func (m *Metrics) RecordComparison(source schema.RunSource, reports int, d time.Duration) {
	m.ComparisonsTotal.WithLabelValues(string(source)).Inc()
	m.ReportsPerComparison.Observe(float64(reports))
	m.ComparisonDuration.WithLabelValues(string(source)).Observe(d.Seconds())
}

// RecordRequest records the latency of one HTTP request.
func (m *Metrics) RecordRequest(method, route string, status int, d time.Duration) {
	m.RequestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(d.Seconds())
}

// RecordSummary records the outcome of one summary request.
func (m *Metrics) RecordSummary(outcome string) {
	m.SummariesTotal.WithLabelValues(outcome).Inc()
}
