// Package monitoring exposes Prometheus metrics for dispatch outcomes.
package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the dispatch layer.
type Metrics struct {
	DispatchTotal    *prometheus.CounterVec
	DispatchDuration *prometheus.HistogramVec
	FailuresTotal    *prometheus.CounterVec
}

// NewMetrics creates a metrics collector registered on reg. Pass a fresh
// prometheus.NewRegistry() in tests to avoid duplicate registration.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		DispatchTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dispatch_operations_total",
				Help: "Total number of dispatched operations",
			},
			[]string{"operation", "status"},
		),
		DispatchDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "dispatch_operation_duration_seconds",
				Help:    "Operation execution duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
			},
			[]string{"operation"},
		),
		FailuresTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dispatch_failures_total",
				Help: "Total number of failed operations by error kind",
			},
			[]string{"operation", "kind"},
		),
	}
}

// RecordDispatch records one completed dispatch.
func (m *Metrics) RecordDispatch(operation, status string, duration time.Duration) {
	m.DispatchTotal.WithLabelValues(operation, status).Inc()
	m.DispatchDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordFailure records a failed dispatch by error kind.
func (m *Metrics) RecordFailure(operation, kind string) {
	m.FailuresTotal.WithLabelValues(operation, kind).Inc()
}
