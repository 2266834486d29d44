// Package observability exposes engine lifecycle metrics. Metrics are wired
// as lifecycle hooks so the core stays free of any metrics dependency; hosts
// merge them with their own hooks via domain.MergeHooks.
package observability

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/effective-digital/flowkit/pkg/domain"
)

// Metrics holds the prometheus collectors for continuation runs.
type Metrics struct {
	runsStarted   prometheus.Counter
	runsCompleted *prometheus.CounterVec
	stepDispatch  *prometheus.CounterVec
	runDuration   prometheus.Histogram
}

// Option configures Metrics.
type Option func(*options)

type options struct {
	registerer prometheus.Registerer
	namespace  string
}

// WithRegisterer registers the collectors on the given registerer. Without
// it the metrics live on their own private registry, which keeps tests and
// multi-engine hosts from colliding on the default one.
func WithRegisterer(r prometheus.Registerer) Option {
	return func(o *options) {
		o.registerer = r
	}
}

// WithNamespace prefixes every metric name.
func WithNamespace(ns string) Option {
	return func(o *options) {
		o.namespace = ns
	}
}

// NewMetrics creates the collectors and registers them.
func NewMetrics(opts ...Option) *Metrics {
	o := &options{
		registerer: prometheus.NewRegistry(),
		namespace:  "flowkit",
	}
	for _, opt := range opts {
		opt(o)
	}

	m := &Metrics{
		runsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: o.namespace,
			Name:      "runs_started_total",
			Help:      "Continuation runs started.",
		}),
		runsCompleted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: o.namespace,
			Name:      "runs_completed_total",
			Help:      "Continuation runs completed, by outcome.",
		}, []string{"outcome"}),
		stepDispatch: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: o.namespace,
			Name:      "step_dispatches_total",
			Help:      "Step handler dispatches, by step.",
		}, []string{"step"}),
		runDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: o.namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall time of one continuation run.",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 12),
		}),
	}

	o.registerer.MustRegister(m.runsStarted, m.runsCompleted, m.stepDispatch, m.runDuration)
	return m
}

// Hooks returns lifecycle hooks feeding these collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnRunStart: func(_ context.Context, _ *domain.RunEvent) {
			m.runsStarted.Inc()
		},
		OnStepDispatch: func(_ context.Context, e *domain.StepEvent) {
			m.stepDispatch.WithLabelValues(e.Step).Inc()
		},
		OnRunEnd: func(_ context.Context, e *domain.RunEvent) {
			outcome := "success"
			if e.Err != nil {
				outcome = "failure"
			}
			m.runsCompleted.WithLabelValues(outcome).Inc()
			m.runDuration.Observe(e.Elapsed.Seconds())
		},
	}
}
