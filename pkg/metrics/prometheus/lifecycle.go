// Package prometheus contains the Prometheus-backed implementations of the
// metrics interfaces consumed by the rest of the system.
package prometheus

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/modkit-io/modkit/pkg/capability/lifecycle"
	"github.com/modkit-io/modkit/pkg/metrics"
)

// lifecycleMetrics is the Prometheus implementation of lifecycle.Metrics.
type lifecycleMetrics struct {
	loadPasses    *prometheus.CounterVec
	modulesLoaded *prometheus.CounterVec
	loadFailures  *prometheus.CounterVec
	activeModules prometheus.Gauge
}

// NewLifecycleMetrics creates a Prometheus-backed lifecycle.Metrics.
//
// Returns nil if metrics are not enabled (InitRegistry not called); the
// lifecycle manager treats a nil recorder as a no-op.
func NewLifecycleMetrics() lifecycle.Metrics {
	if !metrics.IsEnabled() {
		return nil
	}

	reg := metrics.GetRegistry()

	return &lifecycleMetrics{
		loadPasses: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "modkit_module_load_passes_total",
				Help: "Total number of module load passes by host generation",
			},
			[]string{"generation"},
		),
		modulesLoaded: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "modkit_modules_loaded_total",
				Help: "Total number of modules successfully loaded by host generation",
			},
			[]string{"generation"},
		),
		loadFailures: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "modkit_module_load_failures_total",
				Help: "Total number of modules that failed to load by host generation",
			},
			[]string{"generation"},
		),
		activeModules: promauto.With(reg).NewGauge(
			prometheus.GaugeOpts{
				Name: "modkit_active_modules",
				Help: "Current number of active modules",
			},
		),
	}
}

// LoadPass records one completed load pass.
func (m *lifecycleMetrics) LoadPass(generation string, loaded, failed int) {
	m.loadPasses.WithLabelValues(generation).Inc()
	m.modulesLoaded.WithLabelValues(generation).Add(float64(loaded))
	m.loadFailures.WithLabelValues(generation).Add(float64(failed))
}

// SetActiveModules records the current size of the active set.
func (m *lifecycleMetrics) SetActiveModules(n int) {
	m.activeModules.Set(float64(n))
}
