// Package optimizer orchestrates a pathway optimization run.
//
// A run follows a fixed pipeline: series resolution and constraint assembly
// produce the problem (state Built), the solver adapter submits it to the
// configured backends (state Solving), and the extractor converts the solved
// values into a pathway. Terminal states are final; the engine performs no
// retries. Retry policy, if any, belongs to the caller, which may re-invoke
// with relaxed caps or slack enabled.
//
// Solve-time outcomes (Infeasible, TimedOut, Cancelled, SolverUnavailable)
// are expected, actionable conditions: they are returned on the pathway's
// Status, never as errors. Validation and integrity defects abort the run
// synchronously with full context.
package optimizer

import (
	"context"
	"fmt"
	"sort"

	"github.com/go-logr/logr"

	"github.com/industrial-decarb/pathway-optimizer/internal/assembler"
	"github.com/industrial-decarb/pathway-optimizer/internal/extractor"
	"github.com/industrial-decarb/pathway-optimizer/internal/metrics"
	"github.com/industrial-decarb/pathway-optimizer/pkg/config"
	"github.com/industrial-decarb/pathway-optimizer/pkg/core"
	"github.com/industrial-decarb/pathway-optimizer/pkg/solver"
)

// Engine runs pathway optimizations under an immutable configuration.
// Engines are safe for concurrent use; each run owns its own model.
type Engine struct {
	cfg     config.RunConfig
	log     logr.Logger
	metrics *metrics.Metrics
}

// Option customizes an Engine.
type Option func(*Engine)

// WithLogger sets the engine logger.
func WithLogger(log logr.Logger) Option {
	return func(e *Engine) { e.log = log }
}

// WithMetrics attaches Prometheus instrumentation.
func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Engine) { e.metrics = m }
}

// New validates the configuration and returns an engine.
func New(cfg config.RunConfig, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("run config: %w", err)
	}
	e := &Engine{cfg: cfg, log: logr.Discard()}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Run executes a single optimization over the given inputs.
//
// Input tables are treated as read-only; independent runs may share them.
func (e *Engine) Run(ctx context.Context, in assembler.Inputs) (*core.Pathway, error) {
	asm, err := assembler.New(e.cfg, in, e.log)
	if err != nil {
		return nil, err
	}
	m, err := asm.Build()
	if err != nil {
		return nil, err
	}
	e.metrics.ObserveAssembly(m.Problem.NumVariables(), m.Problem.NumConstraints())
	e.log.Info("run built",
		"variables", m.Problem.NumVariables(),
		"constraints", m.Problem.NumConstraints())

	e.screenFeasibility(m)

	adapter := &solver.Adapter{
		Preference: e.cfg.SolverPreference,
		Timeout:    e.cfg.SolverTimeout,
	}
	e.log.V(1).Info("run solving", "preference", e.cfg.SolverPreference)
	res := adapter.Solve(ctx, m.Problem)
	e.metrics.ObserveSolve(string(res.Status), res.Backend, res.Duration)

	switch res.Status {
	case solver.StatusOptimal:
		pathway, err := extractor.Extract(m, res)
		if err != nil {
			return nil, err
		}
		e.log.Info("run optimal",
			"backend", res.Backend,
			"objective", pathway.Objective,
			"duration", res.Duration)
		return pathway, nil

	case solver.StatusUnbounded:
		// Adoption caps bound every variable, so an unbounded problem means
		// the model itself is broken.
		return nil, &core.ModelIntegrityError{
			Check:  "boundedness",
			Detail: fmt.Sprintf("problem reported unbounded by backend %q: %v", res.Backend, res.Err),
		}

	default:
		e.log.Info("run terminal", "status", res.Status, "backend", res.Backend, "duration", res.Duration)
		return &core.Pathway{
			Status:    res.Status,
			Backend:   res.Backend,
			SolveTime: res.Duration,
		}, nil
	}
}

// screenFeasibility compares each year's required abatement against a cheap
// upper bound on deployable abatement (caps and band activity, ignoring ramp
// and links). The screen only warns; the solver delivers the verdict.
func (e *Engine) screenFeasibility(m *assembler.Model) {
	for _, y := range m.Years {
		required := m.Required[y]
		if required <= 0 {
			continue
		}
		potential := 0.0
		for _, t := range m.Techs {
			if y < t.CommercialYear {
				continue
			}
			potential += m.Caps[t.ID][y] * m.Bands[t.Band].Activity * m.Factors[t.ID][y]
		}
		if potential < required {
			e.log.Info("target exceeds maximum deployable abatement",
				"year", y, "required", required, "potential", potential)
		}
	}
}

// MACC computes the marginal abatement cost curve for a single year:
// technologies commercial by that year, sorted by levelized cost per unit
// abatement, with cumulative deployable potential.
func (e *Engine) MACC(in assembler.Inputs, year int) ([]core.MACCPoint, error) {
	asm, err := assembler.New(e.cfg, in, e.log)
	if err != nil {
		return nil, err
	}
	m, err := asm.Resolve()
	if err != nil {
		return nil, err
	}

	inTimeline := false
	for _, y := range m.Years {
		if y == year {
			inTimeline = true
			break
		}
	}
	if !inTimeline {
		return nil, fmt.Errorf("year %d is outside the planning timeline", year)
	}

	points := make([]core.MACCPoint, 0, len(m.Techs))
	for _, t := range m.Techs {
		if year < t.CommercialYear {
			continue
		}
		factor := m.Factors[t.ID][year]
		potential := m.Caps[t.ID][year] * m.Bands[t.Band].Activity * factor
		if potential <= 0 {
			continue
		}
		points = append(points, core.MACCPoint{
			TechID:    t.ID,
			Cost:      core.LevelizedAbatementCost(m.Costs[t.ID][year], factor, e.cfg.DiscountRate, t.Lifetime),
			Potential: potential,
		})
	}

	sort.Slice(points, func(i, j int) bool { return points[i].Cost < points[j].Cost })
	cumulative := 0.0
	for i := range points {
		cumulative += points[i].Potential
		points[i].Cumulative = cumulative
	}
	return points, nil
}
