// Package loader reads scenario files into validated parameter tables.
//
// The scenario file is a YAML mirror of the engine's tabular input schema:
// baseline bands, technologies, costs, targets and links. Field-level
// validation happens here, before any model construction; violations surface
// as *core.DataValidationError.
package loader

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/industrial-decarb/pathway-optimizer/internal/assembler"
	"github.com/industrial-decarb/pathway-optimizer/pkg/core"
)

var validate = validator.New()

type scenarioFile struct {
	Bands        []bandSpec      `yaml:"bands" validate:"min=1,dive"`
	Technologies []techSpec      `yaml:"technologies" validate:"min=1,dive"`
	Costs        []costSpec      `yaml:"costs" validate:"min=1,dive"`
	Targets      map[int]float64 `yaml:"targets" validate:"required,min=1"`
	Links        []linkSpec      `yaml:"links" validate:"dive"`
}

type bandSpec struct {
	ID                string  `yaml:"id" validate:"required"`
	Activity          float64 `yaml:"activity" validate:"gt=0"`
	EmissionIntensity float64 `yaml:"emissionIntensity" validate:"gte=0"`
}

type techSpec struct {
	ID              string          `yaml:"id" validate:"required"`
	Name            string          `yaml:"name"`
	Band            string          `yaml:"band" validate:"required"`
	Lifetime        int             `yaml:"lifetime" validate:"gt=0"`
	CommercialYear  int             `yaml:"commercialYear" validate:"required"`
	RampLimit       float64         `yaml:"rampLimit" validate:"gte=0"`
	AdoptionCap     map[int]float64 `yaml:"adoptionCap" validate:"dive,gte=0,lte=1"`
	AbatementFactor map[int]float64 `yaml:"abatementFactor" validate:"required,min=1,dive,gte=0"`
}

type costSpec struct {
	Tech  string               `yaml:"tech" validate:"required"`
	Years map[int]costYearSpec `yaml:"years" validate:"required,min=1,dive"`
}

type costYearSpec struct {
	Capex        float64 `yaml:"capex" validate:"gte=0"`
	FixedOpex    float64 `yaml:"fixedOpex" validate:"gte=0"`
	VariableOpex float64 `yaml:"variableOpex"`
	FuelPremium  float64 `yaml:"fuelPremium" validate:"gte=0"`
}

type linkSpec struct {
	Kind      string   `yaml:"kind" validate:"required,oneof=MutuallyExclusive Coupling"`
	Techs     []string `yaml:"techs"`
	Primary   string   `yaml:"primary"`
	Secondary string   `yaml:"secondary"`
}

// Load reads and validates a scenario file.
func Load(path string) (assembler.Inputs, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return assembler.Inputs{}, fmt.Errorf("reading scenario %s: %w", path, err)
	}
	return Parse(raw)
}

// Parse decodes and validates scenario YAML.
func Parse(raw []byte) (assembler.Inputs, error) {
	var file scenarioFile
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return assembler.Inputs{}, fmt.Errorf("decoding scenario: %w", err)
	}

	if err := validate.Struct(&file); err != nil {
		return assembler.Inputs{}, asValidationError(err)
	}

	in := assembler.Inputs{
		Bands:   make(map[string]core.BaselineBand, len(file.Bands)),
		Costs:   make(core.CostTable, len(file.Costs)),
		Targets: file.Targets,
	}
	for _, b := range file.Bands {
		if _, dup := in.Bands[b.ID]; dup {
			return assembler.Inputs{}, core.Validationf("band["+b.ID+"]", "duplicate band id")
		}
		in.Bands[b.ID] = core.BaselineBand{
			ID:                b.ID,
			Activity:          b.Activity,
			EmissionIntensity: b.EmissionIntensity,
		}
	}
	for _, t := range file.Technologies {
		in.Technologies = append(in.Technologies, &core.Technology{
			ID:              t.ID,
			Name:            t.Name,
			Band:            t.Band,
			Lifetime:        t.Lifetime,
			CommercialYear:  t.CommercialYear,
			RampLimit:       t.RampLimit,
			AdoptionCap:     t.AdoptionCap,
			AbatementFactor: t.AbatementFactor,
		})
	}
	for _, c := range file.Costs {
		if _, dup := in.Costs[c.Tech]; dup {
			return assembler.Inputs{}, core.Validationf("cost["+c.Tech+"]", "duplicate cost record")
		}
		years := make(map[int]core.YearCost, len(c.Years))
		for y, yc := range c.Years {
			years[y] = core.YearCost{
				Capex:        yc.Capex,
				FixedOpex:    yc.FixedOpex,
				VariableOpex: yc.VariableOpex,
				FuelPremium:  yc.FuelPremium,
			}
		}
		in.Costs[c.Tech] = years
	}
	for _, l := range file.Links {
		in.Links = append(in.Links, core.TechLink{
			Kind:      core.LinkKind(l.Kind),
			Techs:     l.Techs,
			Primary:   l.Primary,
			Secondary: l.Secondary,
		})
	}

	// Referential integrity beyond field shape.
	if err := in.Validate(); err != nil {
		return assembler.Inputs{}, err
	}
	return in, nil
}

// asValidationError converts the first validator violation into the engine's
// error taxonomy.
func asValidationError(err error) error {
	var verrs validator.ValidationErrors
	if ok := errors.As(err, &verrs); ok && len(verrs) > 0 {
		v := verrs[0]
		return core.Validationf(v.Namespace(), "failed %q validation (value %v)", v.Tag(), v.Value())
	}
	return fmt.Errorf("validating scenario: %w", err)
}
