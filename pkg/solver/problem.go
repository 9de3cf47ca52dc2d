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

import "fmt"

// Sense is the comparison sense of a linear constraint.
type Sense int

const (
	LessEq Sense = iota
	GreaterEq
	Equal
)

func (s Sense) String() string {
	switch s {
	case LessEq:
		return "<="
	case GreaterEq:
		return ">="
	case Equal:
		return "="
	default:
		return fmt.Sprintf("Sense(%d)", int(s))
	}
}

// Constraint is a single sparse linear row: sum(Coeffs[j] * x[j]) Sense RHS.
type Constraint struct {
	// Name labels the row for diagnostics, e.g. "vintaging[h2-cracker,2037]".
	Name string

	// Coeffs maps variable column index to coefficient. Absent columns are zero.
	Coeffs map[int]float64

	// Sense is the row's comparison sense.
	Sense Sense

	// RHS is the row's right-hand side.
	RHS float64
}

// Problem is a minimize linear program over nonnegative variables.
// It is not safe for concurrent mutation; a fully built Problem is read-only
// and safe to share.
type Problem struct {
	names       []string
	objective   map[int]float64
	constraints []Constraint
}

// NewProblem returns an empty problem.
func NewProblem() *Problem {
	return &Problem{objective: make(map[int]float64)}
}

// AddVariable registers a named nonnegative variable and returns its column
// index.
func (p *Problem) AddVariable(name string) int {
	p.names = append(p.names, name)
	return len(p.names) - 1
}

// NumVariables returns the number of registered variables.
func (p *Problem) NumVariables() int { return len(p.names) }

// NumConstraints returns the number of constraint rows.
func (p *Problem) NumConstraints() int { return len(p.constraints) }

// VariableName returns the name of column j.
func (p *Problem) VariableName(j int) string { return p.names[j] }

// AddObjective accumulates coeff onto column j's objective coefficient.
func (p *Problem) AddObjective(j int, coeff float64) {
	p.objective[j] += coeff
}

// ObjectiveCoeff returns column j's objective coefficient.
func (p *Problem) ObjectiveCoeff(j int) float64 { return p.objective[j] }

// AddConstraint appends a row. Coeffs is retained; callers must not mutate it
// afterwards.
func (p *Problem) AddConstraint(name string, coeffs map[int]float64, sense Sense, rhs float64) {
	p.constraints = append(p.constraints, Constraint{
		Name:   name,
		Coeffs: coeffs,
		Sense:  sense,
		RHS:    rhs,
	})
}

// Constraints returns the constraint rows. The returned slice is owned by the
// problem and must not be modified.
func (p *Problem) Constraints() []Constraint { return p.constraints }

// Evaluate computes the objective value of a candidate point.
func (p *Problem) Evaluate(x []float64) float64 {
	v := 0.0
	for j, c := range p.objective {
		v += c * x[j]
	}
	return v
}
