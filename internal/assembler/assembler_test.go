package assembler

import (
	"fmt"
	"testing"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/industrial-decarb/pathway-optimizer/pkg/config"
	"github.com/industrial-decarb/pathway-optimizer/pkg/core"
	"github.com/industrial-decarb/pathway-optimizer/pkg/solver"
)

func testConfig() config.RunConfig {
	cfg := config.Default()
	cfg.StartYear = 2030
	cfg.EndYear = 2034
	return cfg
}

// testInputs is one band with two technologies: electric is commercial from
// the first year with its own ramp limit, hydrogen arrives in 2032 with none.
func testInputs() Inputs {
	return Inputs{
		Bands: map[string]core.BaselineBand{
			"steam": {ID: "steam", Activity: 100, EmissionIntensity: 0.5},
		},
		Technologies: []*core.Technology{
			{
				ID: "electric", Band: "steam", Lifetime: 25, CommercialYear: 2030,
				RampLimit:       40,
				AbatementFactor: map[int]float64{2030: 0.5},
			},
			{
				ID: "h2", Band: "steam", Lifetime: 20, CommercialYear: 2032,
				AbatementFactor: map[int]float64{2030: 0.4},
			},
		},
		Costs: core.CostTable{
			"electric": {2030: {Capex: 10, FixedOpex: 1, VariableOpex: 2}},
			"h2":       {2030: {Capex: 8, FixedOpex: 1, VariableOpex: 3, FuelPremium: 1}},
		},
		Targets: map[int]float64{2030: 50, 2034: 35},
	}
}

func buildModel(t *testing.T, cfg config.RunConfig, in Inputs) *Model {
	t.Helper()
	asm, err := New(cfg, in, logr.Discard())
	require.NoError(t, err)
	m, err := asm.Build()
	require.NoError(t, err)
	return m
}

func findConstraint(t *testing.T, m *Model, name string) solver.Constraint {
	t.Helper()
	for _, c := range m.Problem.Constraints() {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("constraint %q not found", name)
	return solver.Constraint{}
}

func hasConstraint(m *Model, name string) bool {
	for _, c := range m.Problem.Constraints() {
		if c.Name == name {
			return true
		}
	}
	return false
}

func TestNew_RejectsBadInputs(t *testing.T) {
	_, err := New(config.RunConfig{}, testInputs(), logr.Discard())
	assert.Error(t, err, "config must validate")

	in := testInputs()
	in.Technologies[1].Band = "nonexistent"
	_, err = New(testConfig(), in, logr.Discard())
	var verr *core.DataValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestBuild_VariableCounts(t *testing.T) {
	t.Run("slack disabled", func(t *testing.T) {
		m := buildModel(t, testConfig(), testInputs())
		// Two technologies, five years, four variables per cell.
		assert.Equal(t, 40, m.Problem.NumVariables())
	})

	t.Run("slack adds shortfall only where required is positive", func(t *testing.T) {
		cfg := testConfig()
		cfg.SlackEnabled = true
		m := buildModel(t, cfg, testInputs())
		// Baseline is 50 and the 2030 ceiling is 50, so 2030 requires
		// nothing and gets no shortfall column.
		assert.Equal(t, 44, m.Problem.NumVariables())
		_, ok := m.Vars.Shortfall(2030)
		assert.False(t, ok)
		_, ok = m.Vars.Shortfall(2034)
		assert.True(t, ok)
	})
}

func TestBuild_RequiredAbatement(t *testing.T) {
	m := buildModel(t, testConfig(), testInputs())

	assert.InDelta(t, 50.0, m.BaselineTotal, 1e-9)
	assert.InDelta(t, 0.0, m.Required[2030], 1e-9)
	assert.InDelta(t, 3.75, m.Required[2031], 1e-9, "ceiling interpolates between 50 and 35")
	assert.InDelta(t, 7.5, m.Required[2032], 1e-9)
	assert.InDelta(t, 15.0, m.Required[2034], 1e-9)
}

func TestBuild_VintagingRows(t *testing.T) {
	m := buildModel(t, testConfig(), testInputs())

	c := findConstraint(t, m, "vintaging[electric,2032]")
	assert.Equal(t, solver.Equal, c.Sense)
	assert.InDelta(t, 0.0, c.RHS, 1e-12)

	// capacity(2032) - install(2030) - install(2031) - install(2032) = 0
	assert.InDelta(t, 1.0, c.Coeffs[m.Vars.Capacity("electric", 2032)], 1e-12)
	for _, tau := range []int{2030, 2031, 2032} {
		assert.InDelta(t, -1.0, c.Coeffs[m.Vars.Install("electric", tau)], 1e-12)
	}
	assert.Len(t, c.Coeffs, 4)
}

func TestBuild_StartYearGates(t *testing.T) {
	m := buildModel(t, testConfig(), testInputs())

	c := findConstraint(t, m, "gate[h2,2031]")
	assert.Equal(t, solver.Equal, c.Sense, "pre-commercial installation is pinned, not merely bounded")
	assert.InDelta(t, 0.0, c.RHS, 1e-12)
	assert.InDelta(t, 1.0, c.Coeffs[m.Vars.Install("h2", 2031)], 1e-12)

	assert.False(t, hasConstraint(m, "gate[h2,2032]"), "no gate from the commercial year on")
	assert.False(t, hasConstraint(m, "gate[electric,2030]"))
}

func TestBuild_RampLimits(t *testing.T) {
	m := buildModel(t, testConfig(), testInputs())

	c := findConstraint(t, m, "ramp[electric,2030]")
	assert.Equal(t, solver.LessEq, c.Sense)
	assert.InDelta(t, 40.0, c.RHS, 1e-12, "technology's own limit")

	c = findConstraint(t, m, "ramp[h2,2033]")
	assert.InDelta(t, 20.0, c.RHS, 1e-12, "default share of band activity when the limit is omitted")

	assert.False(t, hasConstraint(m, "ramp[h2,2031]"), "gated years carry no ramp row")
}

func TestBuild_AdoptionCaps(t *testing.T) {
	in := testInputs()
	in.Technologies[0].AdoptionCap = map[int]float64{2030: 0.1, 2034: 0.5}
	m := buildModel(t, testConfig(), in)

	c := findConstraint(t, m, "adoption[electric,2032]")
	assert.Equal(t, solver.LessEq, c.Sense)
	assert.InDelta(t, 30.0, c.RHS, 1e-9, "interpolated cap 0.3 of activity 100")

	c = findConstraint(t, m, "adoption[h2,2032]")
	assert.InDelta(t, 100.0, c.RHS, 1e-9, "uncapped technology may fill the whole band")
}

func TestBuild_MassBalanceIsCeiling(t *testing.T) {
	m := buildModel(t, testConfig(), testInputs())

	c := findConstraint(t, m, "massbalance[steam,2033]")
	assert.Equal(t, solver.LessEq, c.Sense, "residual demand stays on the baseline")
	assert.InDelta(t, 100.0, c.RHS, 1e-12)
	assert.InDelta(t, 1.0, c.Coeffs[m.Vars.Production("electric", 2033)], 1e-12)
	assert.InDelta(t, 1.0, c.Coeffs[m.Vars.Production("h2", 2033)], 1e-12)
}

func TestBuild_AbatementRows(t *testing.T) {
	m := buildModel(t, testConfig(), testInputs())

	c := findConstraint(t, m, "abatement[electric,2031]")
	assert.Equal(t, solver.Equal, c.Sense)
	assert.InDelta(t, 1.0, c.Coeffs[m.Vars.Abatement("electric", 2031)], 1e-12)
	assert.InDelta(t, -0.5, c.Coeffs[m.Vars.Production("electric", 2031)], 1e-12)
}

func TestBuild_TargetRows(t *testing.T) {
	cfg := testConfig()
	cfg.SlackEnabled = true
	m := buildModel(t, cfg, testInputs())

	assert.False(t, hasConstraint(m, "target[2030]"), "a year requiring nothing adds no row")

	c := findConstraint(t, m, "target[2034]")
	assert.Equal(t, solver.GreaterEq, c.Sense)
	assert.InDelta(t, 15.0, c.RHS, 1e-9)
	assert.InDelta(t, 1.0, c.Coeffs[m.Vars.Abatement("electric", 2034)], 1e-12)
	assert.InDelta(t, 1.0, c.Coeffs[m.Vars.Abatement("h2", 2034)], 1e-12)
	col, ok := m.Vars.Shortfall(2034)
	require.True(t, ok)
	assert.InDelta(t, 1.0, c.Coeffs[col], 1e-12, "shortfall relaxes the target when slack is on")
}

func TestBuild_Links(t *testing.T) {
	in := testInputs()
	in.Links = []core.TechLink{
		{Kind: core.LinkMutuallyExclusive, Techs: []string{"electric", "h2"}},
		{Kind: core.LinkCoupling, Primary: "electric", Secondary: "h2"},
	}
	m := buildModel(t, testConfig(), in)

	for _, y := range m.Years {
		c := findConstraint(t, m, fmt.Sprintf("exclusive[0,%d]", y))
		assert.Equal(t, solver.LessEq, c.Sense)
		assert.InDelta(t, 1.0, c.RHS, 1e-12)
		assert.InDelta(t, 0.01, c.Coeffs[m.Vars.Capacity("electric", y)], 1e-12, "capacity is normalized to band share")

		c = findConstraint(t, m, fmt.Sprintf("coupling[1,%d]", y))
		assert.Equal(t, solver.GreaterEq, c.Sense)
		assert.InDelta(t, 0.01, c.Coeffs[m.Vars.Capacity("h2", y)], 1e-12)
		assert.InDelta(t, -0.01, c.Coeffs[m.Vars.Capacity("electric", y)], 1e-12)
	}
}

func TestBuild_Objective(t *testing.T) {
	cfg := testConfig()
	cfg.SlackEnabled = true
	m := buildModel(t, cfg, testInputs())

	crf := core.CRF(cfg.DiscountRate, 25)

	// First year: discount factor 1.
	assert.InDelta(t, crf*10, m.Problem.ObjectiveCoeff(m.Vars.Install("electric", 2030)), 1e-9)
	assert.InDelta(t, 1.0, m.Problem.ObjectiveCoeff(m.Vars.Capacity("electric", 2030)), 1e-9)
	assert.InDelta(t, 2.0, m.Problem.ObjectiveCoeff(m.Vars.Production("electric", 2030)), 1e-9)

	df := cfg.DiscountFactor(2032)
	assert.InDelta(t, df*(3+1), m.Problem.ObjectiveCoeff(m.Vars.Production("h2", 2032)), 1e-9,
		"fuel premium rides on production")

	col, ok := m.Vars.Shortfall(2034)
	require.True(t, ok)
	assert.InDelta(t, cfg.DiscountFactor(2034)*cfg.SlackPenalty, m.Problem.ObjectiveCoeff(col), 1e-3)

	assert.InDelta(t, 0.0, m.Problem.ObjectiveCoeff(m.Vars.Abatement("electric", 2032)), 1e-12,
		"abatement itself carries no cost")
}

func TestResolve_MissingSeries(t *testing.T) {
	in := testInputs()
	in.Targets = nil

	asm, err := New(testConfig(), in, logr.Discard())
	require.NoError(t, err, "an absent target series is a resolution problem, not a shape problem")
	_, err = asm.Build()
	var gap *core.DataGapError
	require.ErrorAs(t, err, &gap)
	assert.Equal(t, "targets", gap.Series)
}

func TestModel_RampLimit(t *testing.T) {
	m := buildModel(t, testConfig(), testInputs())
	assert.InDelta(t, 40.0, m.RampLimit(m.Tech("electric")), 1e-12)
	assert.InDelta(t, 20.0, m.RampLimit(m.Tech("h2")), 1e-12)
}
