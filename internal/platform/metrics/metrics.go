// Package metrics holds process-wide HTTP metrics. Module-specific
// instruments live next to their services.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the HTTP-level Prometheus instruments.
type Metrics struct {
	RequestDuration *prometheus.HistogramVec
}

// New creates and registers the HTTP metrics.
func New() *Metrics {
	return &Metrics{
		RequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "regent_http_request_duration_seconds",
			Help:    "HTTP request duration by route and status",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"method", "route", "status"}),
	}
}

// ObserveRequest records one served request.
func (m *Metrics) ObserveRequest(method, route, status string, d time.Duration) {
	if m != nil {
		m.RequestDuration.WithLabelValues(method, route, status).Observe(d.Seconds())
	}
}
