// Package extractor maps solved decision values back onto the
// technology/year grid and guards the result with post-solve consistency
// checks.
package extractor

import (
	"fmt"
	"math"

	"github.com/industrial-decarb/pathway-optimizer/internal/assembler"
	"github.com/industrial-decarb/pathway-optimizer/pkg/core"
	"github.com/industrial-decarb/pathway-optimizer/pkg/solver"
)

// Extract converts an optimal solver result into a structured pathway.
//
// Rather than trusting raw solver output, it re-evaluates the vintaging
// relation and the mass-balance ceiling from the extracted values and returns
// a *core.ModelIntegrityError if either is violated beyond the configured
// tolerance. Such a violation is a defect in model construction or a solver
// precision pathology, never a normal outcome.
func Extract(m *assembler.Model, res solver.Result) (*core.Pathway, error) {
	if res.Status != solver.StatusOptimal {
		return nil, fmt.Errorf("extract requires an optimal result, got %s", res.Status)
	}
	x := res.Solution.Values

	p := &core.Pathway{
		Status:    res.Status,
		Objective: res.Solution.Objective,
		Backend:   res.Backend,
		SolveTime: res.Duration,
		Shortfall: make(map[int]float64),
	}

	for _, y := range m.Years {
		if col, ok := m.Vars.Shortfall(y); ok {
			if v := x[col]; v > m.Cfg.Tolerance {
				p.Shortfall[y] = v
			}
		}
	}

	for _, t := range m.Techs {
		crf := core.CRF(m.Cfg.DiscountRate, t.Lifetime)
		for _, y := range m.Years {
			c := m.Costs[t.ID][y]
			installed := x[m.Vars.Install(t.ID, y)]
			inService := x[m.Vars.Capacity(t.ID, y)]
			production := x[m.Vars.Production(t.ID, y)]
			abatement := x[m.Vars.Abatement(t.ID, y)]

			p.Records = append(p.Records, core.TechnologyYear{
				TechID:     t.ID,
				Year:       y,
				Installed:  installed,
				InService:  inService,
				Production: production,
				Abatement:  abatement,
				AnnualizedCost: crf*c.Capex*installed +
					c.FixedOpex*inService +
					(c.VariableOpex+c.FuelPremium)*production,
			})
		}
	}

	if err := checkVintaging(m, p); err != nil {
		return nil, err
	}
	if err := checkMassBalance(m, p); err != nil {
		return nil, err
	}

	p.Summary = summarize(m, p)
	return p, nil
}

// checkVintaging re-evaluates in-service capacity from the extracted
// installation series through the same window index the constraints were
// built from.
func checkVintaging(m *assembler.Model, p *core.Pathway) error {
	installed := make(map[string]map[int]float64, len(m.Techs))
	inService := make(map[string]map[int]float64, len(m.Techs))
	for _, r := range p.Records {
		if installed[r.TechID] == nil {
			installed[r.TechID] = make(map[int]float64, len(m.Years))
			inService[r.TechID] = make(map[int]float64, len(m.Years))
		}
		installed[r.TechID][r.Year] = r.Installed
		inService[r.TechID][r.Year] = r.InService
	}

	for _, t := range m.Techs {
		w := m.Windows[t.ID]
		for _, y := range m.Years {
			want := w.InService(y, installed[t.ID])
			got := inService[t.ID][y]
			if diff := math.Abs(got - want); diff > tolerance(m, want) {
				return &core.ModelIntegrityError{
					Check: "vintaging",
					Detail: fmt.Sprintf("technology %s year %d: in-service %g, window sum %g (diff %g)",
						t.ID, y, got, want, diff),
				}
			}
		}
	}
	return nil
}

// checkMassBalance verifies that band production never exceeds band activity.
func checkMassBalance(m *assembler.Model, p *core.Pathway) error {
	produced := make(map[string]map[int]float64, len(m.Bands))
	for _, r := range p.Records {
		band := m.Tech(r.TechID).Band
		if produced[band] == nil {
			produced[band] = make(map[int]float64, len(m.Years))
		}
		produced[band][r.Year] += r.Production
	}

	for bandID, byYear := range produced {
		activity := m.Bands[bandID].Activity
		for y, total := range byYear {
			if total > activity+tolerance(m, activity) {
				return &core.ModelIntegrityError{
					Check: "mass-balance",
					Detail: fmt.Sprintf("band %s year %d: production %g exceeds activity %g",
						bandID, y, total, activity),
				}
			}
		}
	}
	return nil
}

func summarize(m *assembler.Model, p *core.Pathway) []core.YearSummary {
	achieved := make(map[int]float64, len(m.Years))
	cost := make(map[int]float64, len(m.Years))
	for _, r := range p.Records {
		achieved[r.Year] += r.Abatement
		cost[r.Year] += r.AnnualizedCost
	}

	out := make([]core.YearSummary, 0, len(m.Years))
	for _, y := range m.Years {
		short := p.Shortfall[y]
		out = append(out, core.YearSummary{
			Year:      y,
			Required:  m.Required[y],
			Achieved:  achieved[y],
			Shortfall: short,
			Remaining: m.BaselineTotal - achieved[y],
			Cost:      cost[y],
			TargetMet: short <= m.Cfg.Tolerance,
		})
	}
	return out
}

// tolerance blends the configured absolute tolerance with a relative term so
// checks stay meaningful across scenario scales.
func tolerance(m *assembler.Model, scale float64) float64 {
	return m.Cfg.Tolerance * (1 + math.Abs(scale))
}
