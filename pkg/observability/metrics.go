package observability

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/turing/pkg/domain"
)

// Metrics holds the Prometheus collectors fed by engine hooks.
type Metrics struct {
	Runs     *prometheus.CounterVec
	Steps    prometheus.Counter
	RunSteps prometheus.Histogram
}

// NewMetrics creates the collectors and registers them on reg.
// A nil reg registers on the default registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		Runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "turing_runs_total",
				Help: "Total number of finished runs by status",
			},
			[]string{"status"},
		),
		Steps: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "turing_steps_total",
				Help: "Total number of applied transitions",
			},
		),
		RunSteps: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "turing_run_steps",
				Help:    "Transitions applied per run",
				Buckets: prometheus.ExponentialBuckets(1, 4, 10),
			},
		),
	}
	reg.MustRegister(m.Runs, m.Steps, m.RunSteps)
	return m
}

// Hooks returns lifecycle hooks that record into the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStep: func(_ context.Context, _ *domain.StepEvent) {
			m.Steps.Inc()
		},
		OnHalt: func(_ context.Context, e *domain.HaltEvent) {
			m.Runs.WithLabelValues(string(e.Status)).Inc()
			m.RunSteps.Observe(float64(e.Steps))
		},
	}
}
