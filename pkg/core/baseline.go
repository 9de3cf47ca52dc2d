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

// BaselineBand is a fixed process segment that alternative technologies
// substitute into. Its activity is a hard ceiling shared across all
// technologies targeting the band.
type BaselineBand struct {
	// ID uniquely identifies the band within a run.
	ID string

	// Activity is the fixed annual activity level (units/yr).
	Activity float64

	// EmissionIntensity is the fixed emissions per unit activity.
	EmissionIntensity float64
}

// Emissions returns the band's annual baseline emissions.
func (b BaselineBand) Emissions() float64 {
	return b.Activity * b.EmissionIntensity
}

// Validate checks the band's structural invariants.
func (b BaselineBand) Validate() error {
	if b.ID == "" {
		return Validationf("band.id", "must not be empty")
	}
	if b.Activity <= 0 {
		return Validationf("band["+b.ID+"].activity", "must be positive, got %g", b.Activity)
	}
	if b.EmissionIntensity < 0 {
		return Validationf("band["+b.ID+"].emissionIntensity", "must be >= 0, got %g", b.EmissionIntensity)
	}
	return nil
}

// BaselineTotal sums annual baseline emissions across bands.
func BaselineTotal(bands map[string]BaselineBand) float64 {
	total := 0.0
	for _, b := range bands {
		total += b.Emissions()
	}
	return total
}

// RequiredAbatement derives the abatement a year's emissions ceiling demands:
// max(0, baseline total - ceiling). A ceiling above the baseline requires
// nothing.
func RequiredAbatement(baselineTotal, ceiling float64) float64 {
	if r := baselineTotal - ceiling; r > 0 {
		return r
	}
	return 0
}
