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

import "math"

// Technology describes a deployable abatement option. Instances are immutable
// once loaded for a run.
type Technology struct {
	// ID uniquely identifies the technology within a run.
	ID string

	// Name is a human-readable label used in reports. Defaults to ID.
	Name string

	// Band is the ID of the baseline band this technology substitutes into.
	Band string

	// Lifetime is the operating lifetime in years. Capacity installed in year
	// tau serves years governed by the run's lifetime boundary policy
	// (default: tau <= t < tau+Lifetime).
	Lifetime int

	// CommercialYear is the earliest year any installation may occur.
	CommercialYear int

	// RampLimit is the maximum new capacity (units/yr) installable in a single
	// year. Zero means the run configuration's default ramp share applies;
	// a missing ramp limit is never silently treated as zero.
	RampLimit float64

	// AdoptionCap maps year to the maximum in-service share of band activity
	// this technology may occupy, in [0,1]. Sparse; resolved to a dense annual
	// series at assembly. Empty means uncapped (share limit 1.0).
	// Caps are taken as given and may fall year over year; anomaly detection
	// belongs to the data-validation collaborator.
	AdoptionCap map[int]float64

	// AbatementFactor maps year to emissions abated per unit production.
	// Sparse; resolved at assembly.
	AbatementFactor map[int]float64
}

// Validate checks the technology's structural invariants. It returns a
// *DataValidationError describing the first offending field.
func (t *Technology) Validate() error {
	if t.ID == "" {
		return Validationf("technology.id", "must not be empty")
	}
	if t.Band == "" {
		return Validationf("technology["+t.ID+"].band", "must reference a baseline band")
	}
	if t.Lifetime <= 0 {
		return Validationf("technology["+t.ID+"].lifetime", "must be positive, got %d", t.Lifetime)
	}
	if t.RampLimit < 0 {
		return Validationf("technology["+t.ID+"].rampLimit", "must be >= 0, got %g", t.RampLimit)
	}
	for year, cap := range t.AdoptionCap {
		if cap < 0 || cap > 1 {
			return Validationf("technology["+t.ID+"].adoptionCap",
				"must be within [0,1], got %g for year %d", cap, year)
		}
	}
	for year, f := range t.AbatementFactor {
		if f < 0 {
			return Validationf("technology["+t.ID+"].abatementFactor",
				"must be >= 0, got %g for year %d", f, year)
		}
	}
	if len(t.AbatementFactor) == 0 {
		return Validationf("technology["+t.ID+"].abatementFactor", "at least one year is required")
	}
	return nil
}

// DisplayName returns Name, falling back to ID.
func (t *Technology) DisplayName() string {
	if t.Name != "" {
		return t.Name
	}
	return t.ID
}

// CRF returns the capital recovery factor for the given discount rate and
// lifetime: the factor converting a one-time capital outlay into an equivalent
// annual cost stream over the asset's life. A zero rate degenerates to
// straight-line recovery 1/lifetime.
func CRF(rate float64, lifetime int) float64 {
	if lifetime <= 0 {
		return 0
	}
	if rate == 0 {
		return 1.0 / float64(lifetime)
	}
	denom := 1.0
	for i := 0; i < lifetime; i++ {
		denom /= 1.0 + rate
	}
	return rate / (1.0 - denom)
}

// LevelizedAbatementCost returns the cost per unit emissions abated for a
// technology operating at the given per-year costs and abatement factor:
// (CRF-annualized capex + fixed opex + variable opex + fuel premium) divided by
// the abatement factor. Returns +Inf when the factor is not positive.
func LevelizedAbatementCost(c YearCost, factor, rate float64, lifetime int) float64 {
	if factor <= 0 {
		return math.Inf(1)
	}
	annual := c.Capex*CRF(rate, lifetime) + c.FixedOpex + c.VariableOpex + c.FuelPremium
	return annual / factor
}
