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

// Package solver provides a direct linear-program representation and pluggable
// solving backends for the pathway optimization engine.
//
// A Problem is a variable list, a set of sparse linear constraints
// (<=, >= or =) over nonnegative variables, and a minimize objective vector.
// Constraint construction is deliberately decoupled from any algebraic-modeling
// framework: the assembler writes rows directly and backends consume them
// through the narrow Backend interface.
//
// Backends register themselves by name. The Adapter attempts an ordered list of
// acceptable backends and normalizes heterogeneous backend statuses into the
// Status enumeration:
//
//   - StatusOptimal: a solution and objective value were found
//   - StatusInfeasible: no solution satisfies the constraints; surfaced
//     distinctly from generic failure so callers can retry with slack enabled
//   - StatusUnbounded: the objective is unbounded below; a modeling-integrity
//     defect given finite adoption caps
//   - StatusTimedOut: the wall-clock timeout elapsed without a solution
//   - StatusCancelled: the caller's context was cancelled
//   - StatusSolverUnavailable: no acceptable backend could be invoked
//
// The included "simplex" backend converts general-form problems to standard
// form and solves them with gonum's dense simplex method.
package solver
