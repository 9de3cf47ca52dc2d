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

// YearCost holds a technology's costs for a single year. Costs feed only the
// objective; they never constrain decision variables directly.
type YearCost struct {
	// Capex is the capital cost per unit new capacity.
	Capex float64

	// FixedOpex is the fixed operating cost per unit in-service capacity.
	FixedOpex float64

	// VariableOpex is the variable operating cost per unit production.
	VariableOpex float64

	// FuelPremium is an optional fuel-cost premium per unit production.
	FuelPremium float64
}

// CostTable maps technology ID to a sparse year -> YearCost series.
// Sparse years are resolved to dense annual series at assembly.
type CostTable map[string]map[int]YearCost

// Validate checks that every referenced technology has at least one costed
// year and that no cost is negative.
func (ct CostTable) Validate() error {
	for techID, years := range ct {
		if len(years) == 0 {
			return Validationf("cost["+techID+"]", "at least one year is required")
		}
		for year, c := range years {
			if c.Capex < 0 || c.FixedOpex < 0 || c.FuelPremium < 0 {
				return Validationf("cost["+techID+"]",
					"capex, fixed opex and fuel premium must be >= 0 in year %d", year)
			}
			// Variable opex may be negative: a technology can save
			// operating cost relative to the baseline it displaces.
		}
	}
	return nil
}
