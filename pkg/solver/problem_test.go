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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProblem_Build(t *testing.T) {
	p := NewProblem()
	x := p.AddVariable("x")
	y := p.AddVariable("y")

	require.Equal(t, 2, p.NumVariables())
	assert.Equal(t, "x", p.VariableName(x))
	assert.Equal(t, "y", p.VariableName(y))

	p.AddObjective(x, 1.5)
	p.AddObjective(x, 0.5) // accumulates onto the same column
	p.AddObjective(y, 2)
	assert.InDelta(t, 2.0, p.ObjectiveCoeff(x), 1e-12)
	assert.InDelta(t, 2.0, p.ObjectiveCoeff(y), 1e-12)

	p.AddConstraint("cap", map[int]float64{x: 1, y: 1}, LessEq, 10)
	p.AddConstraint("floor", map[int]float64{x: 1}, GreaterEq, 2)
	require.Equal(t, 2, p.NumConstraints())

	rows := p.Constraints()
	assert.Equal(t, "cap", rows[0].Name)
	assert.Equal(t, LessEq, rows[0].Sense)
	assert.InDelta(t, 10.0, rows[0].RHS, 1e-12)

	assert.InDelta(t, 10.0, p.Evaluate([]float64{3, 2}), 1e-12)
}

func TestSense_String(t *testing.T) {
	assert.Equal(t, "<=", LessEq.String())
	assert.Equal(t, ">=", GreaterEq.String())
	assert.Equal(t, "=", Equal.String())
	assert.Equal(t, "Sense(7)", Sense(7).String())
}
