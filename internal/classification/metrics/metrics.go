// Package metrics provides observability for the classification module.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the classification module's instruments. All methods are
// nil-safe so wiring metrics stays optional in tests.
type Metrics struct {
	// Classifications by resolved tier
	Classifications *prometheus.CounterVec

	// Full classification latency including reference-data retrieval
	ClassifyLatency prometheus.Histogram

	// Reference-data fetch failures by bucket
	BucketFailures *prometheus.CounterVec
}

// New creates a Metrics instance with all classification metrics registered.
func New() *Metrics {
	return &Metrics{
		Classifications: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "regent_classifications_total",
			Help: "Total classifications by resolved risk tier",
		}, []string{"tier"}),

		ClassifyLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "regent_classify_duration_seconds",
			Help:    "Duration of full classification including obligation retrieval",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),

		BucketFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "regent_obligation_fetch_failures_total",
			Help: "Reference-data fetch failures by regulation bucket",
		}, []string{"bucket"}),
	}
}

// IncrementClassification records a classification outcome.
func (m *Metrics) IncrementClassification(tier string) {
	if m != nil {
		m.Classifications.WithLabelValues(tier).Inc()
	}
}

// ObserveClassifyLatency records the total classification duration.
func (m *Metrics) ObserveClassifyLatency(d time.Duration) {
	if m != nil {
		m.ClassifyLatency.Observe(d.Seconds())
	}
}

// IncrementBucketFailure records a failed reference-data fetch.
func (m *Metrics) IncrementBucketFailure(bucket string) {
	if m != nil {
		m.BucketFailures.WithLabelValues(bucket).Inc()
	}
}
