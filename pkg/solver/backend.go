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
	"sort"
	"sync"
)

// Status is the normalized terminal outcome of a solve.
type Status string

const (
	StatusOptimal           Status = "Optimal"
	StatusInfeasible        Status = "Infeasible"
	StatusUnbounded         Status = "Unbounded"
	StatusTimedOut          Status = "TimedOut"
	StatusCancelled         Status = "Cancelled"
	StatusSolverUnavailable Status = "SolverUnavailable"
)

// Sentinel errors returned by backends. The adapter maps them onto statuses.
var (
	// ErrInfeasible indicates no point satisfies the constraints.
	ErrInfeasible = errors.New("problem is infeasible")

	// ErrUnbounded indicates the objective is unbounded below.
	ErrUnbounded = errors.New("problem is unbounded")
)

// Solution holds the values found by a backend.
type Solution struct {
	// Values are the variable values, indexed by problem column.
	Values []float64

	// Objective is the objective value at Values.
	Objective float64
}

// Backend solves a built problem. Implementations must be safe for concurrent
// use by independent solves.
//
// Solve returns ErrInfeasible or ErrUnbounded (possibly wrapped) for those
// definitive verdicts, and any other error for backend failure. Backends
// should honor ctx where their underlying method allows it; dense in-memory
// methods that cannot be interrupted run to completion and the adapter
// abandons the result.
type Backend interface {
	Name() string
	Solve(ctx context.Context, p *Problem) (*Solution, error)
}

var backends = struct {
	sync.RWMutex
	m map[string]Backend
}{m: make(map[string]Backend)}

// Register makes a backend available under its name, replacing any previous
// registration with the same name.
func Register(b Backend) {
	backends.Lock()
	defer backends.Unlock()
	backends.m[b.Name()] = b
}

// Lookup returns the backend registered under name.
func Lookup(name string) (Backend, bool) {
	backends.RLock()
	defer backends.RUnlock()
	b, ok := backends.m[name]
	return b, ok
}

// Available returns the sorted names of all registered backends.
func Available() []string {
	backends.RLock()
	defer backends.RUnlock()
	names := make([]string, 0, len(backends.m))
	for name := range backends.m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
