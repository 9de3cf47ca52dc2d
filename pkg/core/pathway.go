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

package core

import (
	"time"

	"github.com/industrial-decarb/pathway-optimizer/pkg/solver"
)

// TechnologyYear is one cell of the solved deployment grid.
type TechnologyYear struct {
	TechID string
	Year   int

	// Installed is new capacity added this year (units/yr).
	Installed float64

	// InService is total capacity still within its lifetime window (units/yr).
	InService float64

	// Production is actual activity served this year (units/yr).
	Production float64

	// Abatement is emissions avoided this year.
	Abatement float64

	// AnnualizedCost is this year's undiscounted cost contribution:
	// CRF-annualized capex on installation plus fixed opex on in-service
	// capacity plus variable opex and fuel premium on production.
	AnnualizedCost float64
}

// YearSummary aggregates a single year across all technologies.
type YearSummary struct {
	Year int

	// Required is the abatement the year's emissions ceiling demands.
	Required float64

	// Achieved is total abatement delivered across technologies.
	Achieved float64

	// Shortfall is the unmet portion of Required, nonzero only when slack is
	// enabled.
	Shortfall float64

	// Remaining is baseline emissions minus achieved abatement.
	Remaining float64

	// Cost is the year's undiscounted total cost across technologies.
	Cost float64

	// TargetMet reports whether the year's target was achieved without
	// shortfall beyond numerical tolerance.
	TargetMet bool
}

// Pathway is the structured result of a single optimization run.
type Pathway struct {
	// Status is the terminal solve outcome. Records are populated only for
	// StatusOptimal.
	Status solver.Status

	// Records holds the deployment grid ordered by technology, then year.
	Records []TechnologyYear

	// Summary holds per-year aggregates ordered by year.
	Summary []YearSummary

	// Shortfall maps year to unmet required abatement; only nonzero entries
	// are present.
	Shortfall map[int]float64

	// Objective is the solved discounted net present cost.
	Objective float64

	// Backend names the solver backend that produced the solution.
	Backend string

	// SolveTime is the wall-clock duration of the backend solve.
	SolveTime time.Duration
}

// MACCPoint is one technology on a marginal abatement cost curve for a year.
type MACCPoint struct {
	TechID string

	// Cost is the levelized cost per unit abatement.
	Cost float64

	// Potential is the maximum abatement deliverable by the technology that
	// year given its adoption cap and band activity.
	Potential float64

	// Cumulative is the running total of Potential in cost order.
	Cumulative float64
}
