// Package assembler builds the time-indexed linear program for a pathway run:
// all structural constraints (vintaging, start-year gate, ramp limit,
// adoption cap, mass balance, links, target achievement) and the discounted
// net-present-cost objective.
package assembler

import (
	"fmt"

	"github.com/go-logr/logr"

	"github.com/industrial-decarb/pathway-optimizer/internal/series"
	"github.com/industrial-decarb/pathway-optimizer/internal/vintage"
	"github.com/industrial-decarb/pathway-optimizer/pkg/config"
	"github.com/industrial-decarb/pathway-optimizer/pkg/core"
	"github.com/industrial-decarb/pathway-optimizer/pkg/solver"
)

// Model is the assembled artifact: the problem plus everything the extractor
// needs to map solved values back onto the technology/year grid.
type Model struct {
	Cfg     config.RunConfig
	Problem *solver.Problem
	Vars    *VarIndex

	Years []int
	Techs []*core.Technology
	Bands map[string]core.BaselineBand

	// BaselineTotal is annual baseline emissions summed across bands.
	BaselineTotal float64

	// Required maps year to required abatement derived from the resolved
	// emissions ceilings.
	Required map[int]float64

	// Caps, Factors and Costs are the resolved dense annual series per
	// technology.
	Caps    map[string]map[int]float64
	Factors map[string]map[int]float64
	Costs   map[string]map[int]core.YearCost

	// Windows holds the vintaging index per technology.
	Windows map[string]*vintage.Window
}

// Tech returns the technology with the given ID.
func (m *Model) Tech(id string) *core.Technology {
	for _, t := range m.Techs {
		if t.ID == id {
			return t
		}
	}
	return nil
}

// RampLimit returns the effective annual installation ceiling for a
// technology: its own limit, or the configured default share of its band
// activity when the input data omits one.
func (m *Model) RampLimit(t *core.Technology) float64 {
	if t.RampLimit > 0 {
		return t.RampLimit
	}
	return m.Cfg.DefaultRampShare * m.Bands[t.Band].Activity
}

// Assembler builds Models from validated inputs under an immutable run
// configuration.
type Assembler struct {
	cfg config.RunConfig
	in  Inputs
	log logr.Logger
}

// New validates the configuration and inputs and returns an assembler.
func New(cfg config.RunConfig, in Inputs, log logr.Logger) (*Assembler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("run config: %w", err)
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return &Assembler{cfg: cfg, in: in, log: log}, nil
}

// Build resolves all sparse parameter series and produces the full constraint
// set and objective.
func (a *Assembler) Build() (*Model, error) {
	m, err := a.prepare()
	if err != nil {
		return nil, err
	}

	a.declareVariables(m)
	a.addVintaging(m)
	a.addStartYearGates(m)
	a.addRampLimits(m)
	a.addAdoptionCaps(m)
	a.addProductionLimits(m)
	a.addMassBalance(m)
	a.addAbatement(m)
	a.addTargets(m)
	a.addLinks(m)
	a.buildObjective(m)

	a.log.V(1).Info("assembled problem",
		"years", len(m.Years),
		"technologies", len(m.Techs),
		"variables", m.Problem.NumVariables(),
		"constraints", m.Problem.NumConstraints())
	return m, nil
}

// Resolve returns a model with all sparse series resolved but no constraints
// built. Used by analyses that need the dense parameters without a solve
// (feasibility screening, MACC curves).
func (a *Assembler) Resolve() (*Model, error) {
	return a.prepare()
}

// prepare resolves every sparse series to the planning timeline and
// precomputes the vintaging windows.
func (a *Assembler) prepare() (*Model, error) {
	years := a.cfg.Timeline()
	m := &Model{
		Cfg:           a.cfg,
		Problem:       solver.NewProblem(),
		Vars:          newVarIndex(),
		Years:         years,
		Techs:         a.in.Technologies,
		Bands:         a.in.Bands,
		BaselineTotal: core.BaselineTotal(a.in.Bands),
		Required:      make(map[int]float64, len(years)),
		Caps:          make(map[string]map[int]float64, len(a.in.Technologies)),
		Factors:       make(map[string]map[int]float64, len(a.in.Technologies)),
		Costs:         make(map[string]map[int]core.YearCost, len(a.in.Technologies)),
		Windows:       make(map[string]*vintage.Window, len(a.in.Technologies)),
	}

	ceilings, err := series.Resolve("targets", a.in.Targets, years)
	if err != nil {
		return nil, err
	}
	for _, y := range years {
		m.Required[y] = core.RequiredAbatement(m.BaselineTotal, ceilings[y])
	}

	for _, t := range m.Techs {
		if len(t.AdoptionCap) == 0 {
			m.Caps[t.ID] = series.Constant(1.0, years)
		} else {
			caps, err := series.Resolve("technology["+t.ID+"].adoptionCap", t.AdoptionCap, years)
			if err != nil {
				return nil, err
			}
			m.Caps[t.ID] = caps
		}

		factors, err := series.Resolve("technology["+t.ID+"].abatementFactor", t.AbatementFactor, years)
		if err != nil {
			return nil, err
		}
		m.Factors[t.ID] = factors

		costs, err := resolveCosts(t.ID, a.in.Costs[t.ID], years)
		if err != nil {
			return nil, err
		}
		m.Costs[t.ID] = costs

		w, err := vintage.New(years, t.Lifetime, a.cfg.LifetimeBoundary)
		if err != nil {
			return nil, core.Validationf("technology["+t.ID+"].lifetime", "%v", err)
		}
		m.Windows[t.ID] = w
	}
	return m, nil
}

// resolveCosts resolves the four cost components independently so each can be
// given at its own sparse set of years.
func resolveCosts(techID string, sparse map[int]core.YearCost, years []int) (map[int]core.YearCost, error) {
	capex := make(map[int]float64, len(sparse))
	fixed := make(map[int]float64, len(sparse))
	variable := make(map[int]float64, len(sparse))
	fuel := make(map[int]float64, len(sparse))
	for y, c := range sparse {
		capex[y] = c.Capex
		fixed[y] = c.FixedOpex
		variable[y] = c.VariableOpex
		fuel[y] = c.FuelPremium
	}

	name := "cost[" + techID + "]"
	dense := make(map[int]core.YearCost, len(years))
	capexD, err := series.Resolve(name+".capex", capex, years)
	if err != nil {
		return nil, err
	}
	fixedD, err := series.Resolve(name+".fixedOpex", fixed, years)
	if err != nil {
		return nil, err
	}
	variableD, err := series.Resolve(name+".variableOpex", variable, years)
	if err != nil {
		return nil, err
	}
	fuelD, err := series.Resolve(name+".fuelPremium", fuel, years)
	if err != nil {
		return nil, err
	}
	for _, y := range years {
		dense[y] = core.YearCost{
			Capex:        capexD[y],
			FixedOpex:    fixedD[y],
			VariableOpex: variableD[y],
			FuelPremium:  fuelD[y],
		}
	}
	return dense, nil
}

func (a *Assembler) declareVariables(m *Model) {
	for _, t := range m.Techs {
		for _, y := range m.Years {
			m.Vars.declare(m.Problem, "install", t.ID, y, m.Vars.install)
			m.Vars.declare(m.Problem, "capacity", t.ID, y, m.Vars.capacity)
			m.Vars.declare(m.Problem, "production", t.ID, y, m.Vars.production)
			m.Vars.declare(m.Problem, "abatement", t.ID, y, m.Vars.abatement)
		}
	}
	if a.cfg.SlackEnabled {
		for _, y := range m.Years {
			if m.Required[y] > 0 {
				col := m.Problem.AddVariable(fmt.Sprintf("shortfall[%d]", y))
				m.Vars.shortfall[y] = col
			}
		}
	}
}

// addVintaging ties in-service capacity to the installations still inside the
// lifetime window as an exact equality, not an upper bound: the total is a
// decision-dependent quantity reused by production limits and link shares.
func (a *Assembler) addVintaging(m *Model) {
	for _, t := range m.Techs {
		w := m.Windows[t.ID]
		for _, y := range m.Years {
			coeffs := map[int]float64{m.Vars.Capacity(t.ID, y): 1}
			for _, tau := range w.Active(y) {
				coeffs[m.Vars.Install(t.ID, tau)] = -1
			}
			m.Problem.AddConstraint(
				fmt.Sprintf("vintaging[%s,%d]", t.ID, y),
				coeffs, solver.Equal, 0)
		}
	}
}

// addStartYearGates fixes installation to zero strictly before the
// commercialization year. A hard equality rather than an upper bound of zero;
// presolve eliminates the column outright.
func (a *Assembler) addStartYearGates(m *Model) {
	for _, t := range m.Techs {
		for _, y := range m.Years {
			if y < t.CommercialYear {
				m.Problem.AddConstraint(
					fmt.Sprintf("gate[%s,%d]", t.ID, y),
					map[int]float64{m.Vars.Install(t.ID, y): 1},
					solver.Equal, 0)
			}
		}
	}
}

func (a *Assembler) addRampLimits(m *Model) {
	for _, t := range m.Techs {
		limit := m.RampLimit(t)
		for _, y := range m.Years {
			if y < t.CommercialYear {
				continue // gate already pins installation to zero
			}
			m.Problem.AddConstraint(
				fmt.Sprintf("ramp[%s,%d]", t.ID, y),
				map[int]float64{m.Vars.Install(t.ID, y): 1},
				solver.LessEq, limit)
		}
	}
}

// addAdoptionCaps bounds in-service share of band activity by the resolved
// per-year cap. Caps are applied exactly as given; they may fall year over
// year.
func (a *Assembler) addAdoptionCaps(m *Model) {
	for _, t := range m.Techs {
		activity := m.Bands[t.Band].Activity
		for _, y := range m.Years {
			m.Problem.AddConstraint(
				fmt.Sprintf("adoption[%s,%d]", t.ID, y),
				map[int]float64{m.Vars.Capacity(t.ID, y): 1},
				solver.LessEq, m.Caps[t.ID][y]*activity)
		}
	}
}

func (a *Assembler) addProductionLimits(m *Model) {
	for _, t := range m.Techs {
		for _, y := range m.Years {
			m.Problem.AddConstraint(
				fmt.Sprintf("prodcap[%s,%d]", t.ID, y),
				map[int]float64{
					m.Vars.Production(t.ID, y): 1,
					m.Vars.Capacity(t.ID, y):   -1,
				},
				solver.LessEq, 0)
		}
	}
}

// addMassBalance caps total production across the technologies targeting a
// band at the band's fixed activity. A ceiling, never a forced equality:
// under-deployment is always feasible, the residual stays on the baseline.
func (a *Assembler) addMassBalance(m *Model) {
	byBand := make(map[string][]*core.Technology)
	for _, t := range m.Techs {
		byBand[t.Band] = append(byBand[t.Band], t)
	}
	for bandID, techs := range byBand {
		activity := m.Bands[bandID].Activity
		for _, y := range m.Years {
			coeffs := make(map[int]float64, len(techs))
			for _, t := range techs {
				coeffs[m.Vars.Production(t.ID, y)] = 1
			}
			m.Problem.AddConstraint(
				fmt.Sprintf("massbalance[%s,%d]", bandID, y),
				coeffs, solver.LessEq, activity)
		}
	}
}

// addAbatement ties the abatement variable to production scaled by the
// per-year abatement factor. The factor is a parameter, so the product stays
// linear.
func (a *Assembler) addAbatement(m *Model) {
	for _, t := range m.Techs {
		for _, y := range m.Years {
			m.Problem.AddConstraint(
				fmt.Sprintf("abatement[%s,%d]", t.ID, y),
				map[int]float64{
					m.Vars.Abatement(t.ID, y):  1,
					m.Vars.Production(t.ID, y): -m.Factors[t.ID][y],
				},
				solver.Equal, 0)
		}
	}
}

// addTargets requires total abatement (plus shortfall, when slack is enabled)
// to reach the year's required abatement. Years requiring nothing add no row.
func (a *Assembler) addTargets(m *Model) {
	for _, y := range m.Years {
		required := m.Required[y]
		if required <= 0 {
			continue
		}
		coeffs := make(map[int]float64, len(m.Techs)+1)
		for _, t := range m.Techs {
			coeffs[m.Vars.Abatement(t.ID, y)] = 1
		}
		if col, ok := m.Vars.Shortfall(y); ok {
			coeffs[col] = 1
		}
		m.Problem.AddConstraint(
			fmt.Sprintf("target[%d]", y),
			coeffs, solver.GreaterEq, required)
	}
}

// addLinks enforces mutual-exclusivity groups and coupling pairs for every
// planning year, not just at endpoints or steady state.
func (a *Assembler) addLinks(m *Model) {
	byID := a.in.techByID()
	for i, l := range a.in.Links {
		switch l.Kind {
		case core.LinkMutuallyExclusive:
			for _, y := range m.Years {
				coeffs := make(map[int]float64, len(l.Techs))
				for _, id := range l.Techs {
					activity := m.Bands[byID[id].Band].Activity
					coeffs[m.Vars.Capacity(id, y)] = 1 / activity
				}
				m.Problem.AddConstraint(
					fmt.Sprintf("exclusive[%d,%d]", i, y),
					coeffs, solver.LessEq, 1)
			}
		case core.LinkCoupling:
			priAct := m.Bands[byID[l.Primary].Band].Activity
			secAct := m.Bands[byID[l.Secondary].Band].Activity
			for _, y := range m.Years {
				m.Problem.AddConstraint(
					fmt.Sprintf("coupling[%d,%d]", i, y),
					map[int]float64{
						m.Vars.Capacity(l.Secondary, y): 1 / secAct,
						m.Vars.Capacity(l.Primary, y):   -1 / priAct,
					},
					solver.GreaterEq, 0)
			}
		}
	}
}
