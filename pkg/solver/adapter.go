/*
Copyright 2025 The pathway-optimizer Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package solver

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Result is the normalized outcome of an adapter solve.
type Result struct {
	// Status is the terminal outcome.
	Status Status

	// Solution is non-nil only for StatusOptimal.
	Solution *Solution

	// Backend names the backend that produced the outcome, empty for
	// StatusSolverUnavailable.
	Backend string

	// Duration is the wall-clock time spent solving.
	Duration time.Duration

	// Err carries diagnostic detail for non-Optimal outcomes.
	Err error
}

// Adapter submits a problem to an ordered list of acceptable backends and
// returns the first definitive outcome.
type Adapter struct {
	// Preference is the ordered list of backend names to attempt. Names not
	// registered are skipped.
	Preference []string

	// Timeout bounds the whole solve across all attempts. Zero means no
	// timeout.
	Timeout time.Duration
}

// Solve attempts each preferred backend in order. A backend reporting
// infeasibility or unboundedness is a definitive verdict and ends the attempt
// sequence; only backend failure moves on to the next preference. A timeout
// without a found solution is StatusTimedOut, and caller cancellation is
// StatusCancelled, never conflated with each other or with infeasibility.
func (a *Adapter) Solve(ctx context.Context, p *Problem) Result {
	start := time.Now()

	if a.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.Timeout)
		defer cancel()
	}

	var attempted []error
	for _, name := range a.Preference {
		backend, ok := Lookup(name)
		if !ok {
			attempted = append(attempted, fmt.Errorf("backend %q not registered", name))
			continue
		}

		sol, err := a.solveOne(ctx, backend, p)
		elapsed := time.Since(start)
		switch {
		case err == nil:
			return Result{Status: StatusOptimal, Solution: sol, Backend: name, Duration: elapsed}
		case errors.Is(err, ErrInfeasible):
			return Result{Status: StatusInfeasible, Backend: name, Duration: elapsed, Err: err}
		case errors.Is(err, ErrUnbounded):
			return Result{Status: StatusUnbounded, Backend: name, Duration: elapsed, Err: err}
		case errors.Is(err, context.DeadlineExceeded):
			return Result{Status: StatusTimedOut, Backend: name, Duration: elapsed, Err: err}
		case errors.Is(err, context.Canceled):
			return Result{Status: StatusCancelled, Backend: name, Duration: elapsed, Err: err}
		default:
			attempted = append(attempted, fmt.Errorf("backend %q: %w", name, err))
		}
	}

	return Result{
		Status:   StatusSolverUnavailable,
		Duration: time.Since(start),
		Err:      fmt.Errorf("no backend could solve the problem: %w", errors.Join(attempted...)),
	}
}

// solveOne runs a single backend under ctx. Backends that cannot be
// interrupted keep running in their goroutine; their late result is discarded.
func (a *Adapter) solveOne(ctx context.Context, b Backend, p *Problem) (*Solution, error) {
	type outcome struct {
		sol *Solution
		err error
	}
	ch := make(chan outcome, 1)
	go func() {
		sol, err := b.Solve(ctx, p)
		ch <- outcome{sol, err}
	}()

	select {
	case out := <-ch:
		return out.sol, out.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
