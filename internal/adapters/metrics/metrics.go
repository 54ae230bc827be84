// Package metrics records pipeline phase timings and target counts with Prometheus.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.trai.ch/prism/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Metrics = (*Metrics)(nil)

const namespace = "prism"

// Phase outcome label values.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Metrics implements ports.Metrics.
type Metrics struct {
	// PhaseRuns counts phase runs. Labels: phase, status.
	PhaseRuns *prometheus.CounterVec
	// PhaseDuration measures phase wall time. Labels: phase.
	PhaseDuration *prometheus.HistogramVec
	// TargetsVisited counts configured targets reached by updates.
	TargetsVisited prometheus.Counter
	// TargetsEvaluated counts configured targets computed rather than reused.
	TargetsEvaluated prometheus.Counter
	// LoadingErrors counts requested labels that failed to load.
	LoadingErrors prometheus.Counter

	gatherer prometheus.Gatherer
}

// New registers the pipeline metrics with reg. WriteTextfile exports
// everything reg holds.
func New(reg *prometheus.Registry) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		gatherer: reg,
		PhaseRuns: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "phase_runs_total",
			Help:      "Pipeline phase runs by phase and status",
		}, []string{"phase", "status"}),
		PhaseDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "phase_duration_seconds",
			Help:      "Time spent in each pipeline phase",
			Buckets:   []float64{0.0001, 0.001, 0.01, 0.1, 1, 10},
		}, []string{"phase"}),
		TargetsVisited: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "targets_visited_total",
			Help:      "Configured targets reached by updates",
		}),
		TargetsEvaluated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "targets_evaluated_total",
			Help:      "Configured targets computed rather than reused",
		}),
		LoadingErrors: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "loading_errors_total",
			Help:      "Requested labels that failed to load",
		}),
	}
}

// ObservePhase implements ports.Metrics.
func (m *Metrics) ObservePhase(phase string, d time.Duration, err error) {
	status := StatusSuccess
	if err != nil {
		status = StatusError
	}
	m.PhaseRuns.WithLabelValues(phase, status).Inc()
	m.PhaseDuration.WithLabelValues(phase).Observe(d.Seconds())
}

// AddTargets implements ports.Metrics.
func (m *Metrics) AddTargets(visited, evaluated int) {
	m.TargetsVisited.Add(float64(visited))
	m.TargetsEvaluated.Add(float64(evaluated))
}

// AddLoadingErrors implements ports.Metrics.
func (m *Metrics) AddLoadingErrors(n int) {
	m.LoadingErrors.Add(float64(n))
}

// WriteTextfile writes the registry to path in the Prometheus text format.
// The file is replaced atomically.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.gatherer); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write metrics file"), "path", path)
	}
	return nil
}
