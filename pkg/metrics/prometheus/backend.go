package prometheus

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/modkit-io/modkit/pkg/metrics"
	"github.com/modkit-io/modkit/pkg/settings"
)

// backendMetrics is the Prometheus implementation of settings.BackendMetrics.
type backendMetrics struct {
	opDuration *prometheus.HistogramVec
	opErrors   *prometheus.CounterVec
}

// NewBackendMetrics creates a Prometheus-backed recorder for settings
// backend operations.
//
// Returns nil if metrics are not enabled (InitRegistry not called). A nil
// recorder disables instrumentation entirely.
func NewBackendMetrics() settings.BackendMetrics {
	if !metrics.IsEnabled() {
		return nil
	}

	reg := metrics.GetRegistry()

	return &backendMetrics{
		opDuration: promauto.With(reg).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "modkit_settings_backend_op_duration_seconds",
				Help:    "Duration of settings backend operations",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"op"}, // "load", "save", "delete"
		),
		opErrors: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "modkit_settings_backend_op_errors_total",
				Help: "Total number of failed settings backend operations",
			},
			[]string{"op"},
		),
	}
}

// ObserveOp implements settings.BackendMetrics.
func (m *backendMetrics) ObserveOp(op string, duration time.Duration, err error) {
	m.opDuration.WithLabelValues(op).Observe(duration.Seconds())
	if err != nil {
		m.opErrors.WithLabelValues(op).Inc()
	}
}
