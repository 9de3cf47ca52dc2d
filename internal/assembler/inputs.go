package assembler

import (
	"github.com/industrial-decarb/pathway-optimizer/pkg/core"
)

// Inputs are the validated, read-only parameter tables a run consumes.
// They are supplied by the data-loading collaborator; the assembler re-checks
// referential integrity but defers domain anomaly detection (falling caps,
// suspicious costs) to that collaborator.
type Inputs struct {
	Technologies []*core.Technology
	Bands        map[string]core.BaselineBand
	Costs        core.CostTable

	// Targets maps year to the absolute emissions ceiling. Sparse; resolved
	// to a dense annual series at assembly.
	Targets map[int]float64

	Links []core.TechLink
}

// Validate checks structural and referential integrity of the inputs.
// Violations surface as *core.DataValidationError before any model
// construction happens.
func (in Inputs) Validate() error {
	if len(in.Technologies) == 0 {
		return core.Validationf("technologies", "at least one technology is required")
	}
	for _, b := range in.Bands {
		if err := b.Validate(); err != nil {
			return err
		}
	}

	byID := make(map[string]*core.Technology, len(in.Technologies))
	for _, t := range in.Technologies {
		if err := t.Validate(); err != nil {
			return err
		}
		if _, dup := byID[t.ID]; dup {
			return core.Validationf("technology["+t.ID+"]", "duplicate technology id")
		}
		byID[t.ID] = t

		if _, ok := in.Bands[t.Band]; !ok {
			return core.Validationf("technology["+t.ID+"].band", "unknown band %q", t.Band)
		}
		if _, ok := in.Costs[t.ID]; !ok {
			return core.Validationf("cost["+t.ID+"]", "no cost record for technology")
		}
	}

	if err := in.Costs.Validate(); err != nil {
		return err
	}
	for year, ceiling := range in.Targets {
		if ceiling < 0 {
			return core.Validationf("target", "emissions ceiling must be >= 0, got %g for year %d", ceiling, year)
		}
	}
	for _, l := range in.Links {
		if err := l.Validate(byID); err != nil {
			return err
		}
	}
	return nil
}

func (in Inputs) techByID() map[string]*core.Technology {
	byID := make(map[string]*core.Technology, len(in.Technologies))
	for _, t := range in.Technologies {
		byID[t.ID] = t
	}
	return byID
}
