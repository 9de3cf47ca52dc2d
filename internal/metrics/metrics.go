// Package metrics instruments solve runs with Prometheus collectors.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the engine's Prometheus collectors.
type Metrics struct {
	solves        *prometheus.CounterVec
	solveDuration prometheus.Histogram
	problemRows   prometheus.Gauge
	problemCols   prometheus.Gauge
}

// New registers the engine collectors with reg. A nil reg registers with the
// default registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &Metrics{
		solves: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "pathopt_solves_total",
			Help: "Completed solve runs by terminal status.",
		}, []string{"status", "backend"}),
		solveDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "pathopt_solve_duration_seconds",
			Help:    "Wall-clock duration of solver backend invocations.",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
		}),
		problemRows: factory.NewGauge(prometheus.GaugeOpts{
			Name: "pathopt_problem_constraints",
			Help: "Constraint rows in the most recently assembled problem.",
		}),
		problemCols: factory.NewGauge(prometheus.GaugeOpts{
			Name: "pathopt_problem_variables",
			Help: "Decision variables in the most recently assembled problem.",
		}),
	}
}

// ObserveAssembly records the size of an assembled problem.
func (m *Metrics) ObserveAssembly(variables, constraints int) {
	if m == nil {
		return
	}
	m.problemCols.Set(float64(variables))
	m.problemRows.Set(float64(constraints))
}

// ObserveSolve records a terminal solve outcome.
func (m *Metrics) ObserveSolve(status, backend string, d time.Duration) {
	if m == nil {
		return
	}
	m.solves.WithLabelValues(status, backend).Inc()
	m.solveDuration.Observe(d.Seconds())
}
