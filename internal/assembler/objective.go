package assembler

import "github.com/industrial-decarb/pathway-optimizer/pkg/core"

// buildObjective constructs the discounted net-present-cost expression.
//
// For each year: CRF-annualized capital cost of that year's installation,
// fixed operating cost of in-service capacity, variable operating cost and
// fuel premium of actual production, and the slack penalty on shortfall, all
// multiplied by the discount factor anchored at the run's base year.
// Annualization through the capital recovery factor makes capital outlays
// commensurable with operating costs across technologies whose installation
// and lifetime windows differ.
func (a *Assembler) buildObjective(m *Model) {
	for _, t := range m.Techs {
		crf := core.CRF(a.cfg.DiscountRate, t.Lifetime)
		for _, y := range m.Years {
			df := a.cfg.DiscountFactor(y)
			c := m.Costs[t.ID][y]

			m.Problem.AddObjective(m.Vars.Install(t.ID, y), df*crf*c.Capex)
			m.Problem.AddObjective(m.Vars.Capacity(t.ID, y), df*c.FixedOpex)
			m.Problem.AddObjective(m.Vars.Production(t.ID, y), df*(c.VariableOpex+c.FuelPremium))
		}
	}

	if a.cfg.SlackEnabled {
		for _, y := range m.Years {
			if col, ok := m.Vars.Shortfall(y); ok {
				m.Problem.AddObjective(col, a.cfg.DiscountFactor(y)*a.cfg.SlackPenalty)
			}
		}
	}
}
