package optimizer

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/industrial-decarb/pathway-optimizer/internal/assembler"
	"github.com/industrial-decarb/pathway-optimizer/pkg/core"
)

// SweepResult is the outcome of one run in a sensitivity sweep.
type SweepResult struct {
	DiscountRate float64
	Pathway      *core.Pathway
	Err          error
}

// Sweep runs one optimization per discount rate. Runs are independent: each
// owns an immutable copy of the configuration and shares the read-only input
// tables, so they parallelize without coordination. Parallelism bounds the
// number of concurrent runs; zero or negative means one per rate.
//
// Per-run failures (including infeasible regions, which sensitivity analysis
// deliberately explores) are captured in the corresponding SweepResult rather
// than aborting the sweep. Cancelling ctx stops unstarted runs and cancels
// in-flight solves.
func (e *Engine) Sweep(ctx context.Context, in assembler.Inputs, rates []float64, parallelism int) []SweepResult {
	results := make([]SweepResult, len(rates))

	g, ctx := errgroup.WithContext(ctx)
	if parallelism > 0 {
		g.SetLimit(parallelism)
	}
	for i, rate := range rates {
		i, rate := i, rate
		g.Go(func() error {
			cfg := e.cfg
			cfg.DiscountRate = rate

			run := &Engine{cfg: cfg, log: e.log.WithValues("discountRate", rate), metrics: e.metrics}
			pathway, err := run.Run(ctx, in)
			results[i] = SweepResult{DiscountRate: rate, Pathway: pathway, Err: err}
			return nil
		})
	}
	// Goroutines never return errors; Wait only synchronizes completion.
	_ = g.Wait()
	return results
}
