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

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
)

// SimplexName is the registered name of the gonum dense simplex backend.
const SimplexName = "simplex"

func init() {
	Register(&SimplexBackend{})
}

// SimplexBackend solves problems with gonum's dense simplex method.
//
// gonum's lp.Simplex accepts only standard form (minimize c'x subject to
// Ax = b, x >= 0), so Solve first augments each inequality row with a slack or
// surplus column. The simplex iteration itself is not interruptible; the
// adapter enforces timeouts by abandoning the goroutine.
type SimplexBackend struct {
	// Tol is the pivot tolerance passed to lp.Simplex. Zero selects gonum's
	// default.
	Tol float64
}

func (s *SimplexBackend) Name() string { return SimplexName }

func (s *SimplexBackend) Solve(ctx context.Context, p *Problem) (*Solution, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if p.NumVariables() == 0 {
		return nil, fmt.Errorf("simplex: problem has no variables")
	}

	c, a, b, n := toStandardForm(p)

	optF, optX, err := lp.Simplex(c, a, b, s.Tol, nil)
	switch {
	case errors.Is(err, lp.ErrInfeasible):
		return nil, fmt.Errorf("simplex: %w", ErrInfeasible)
	case errors.Is(err, lp.ErrUnbounded):
		return nil, fmt.Errorf("simplex: %w", ErrUnbounded)
	case err != nil:
		return nil, fmt.Errorf("simplex: %w", err)
	}

	values := make([]float64, n)
	copy(values, optX[:n])
	return &Solution{Values: values, Objective: optF}, nil
}

// toStandardForm augments the problem with slack (<=) and surplus (>=)
// columns, producing minimize c'x subject to Ax = b over x >= 0. The original
// variables occupy the first n columns.
func toStandardForm(p *Problem) (c []float64, a *mat.Dense, b []float64, n int) {
	n = p.NumVariables()
	rows := p.Constraints()

	extra := 0
	for _, row := range rows {
		if row.Sense != Equal {
			extra++
		}
	}

	cols := n + extra
	c = make([]float64, cols)
	for j := 0; j < n; j++ {
		c[j] = p.ObjectiveCoeff(j)
	}

	a = mat.NewDense(len(rows), cols, nil)
	b = make([]float64, len(rows))
	next := n
	for i, row := range rows {
		for j, coeff := range row.Coeffs {
			a.Set(i, j, coeff)
		}
		b[i] = row.RHS
		switch row.Sense {
		case LessEq:
			a.Set(i, next, 1)
			next++
		case GreaterEq:
			a.Set(i, next, -1)
			next++
		}
	}
	return c, a, b, n
}
