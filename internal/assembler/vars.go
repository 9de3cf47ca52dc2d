package assembler

import (
	"fmt"

	"github.com/industrial-decarb/pathway-optimizer/pkg/solver"
)

type techYear struct {
	tech string
	year int
}

// VarIndex maps (technology, year) cells onto problem columns. All four
// per-cell decision variables exist for every technology and planning year;
// shortfall variables exist only for years with positive required abatement
// and only when slack is enabled.
type VarIndex struct {
	install    map[techYear]int
	capacity   map[techYear]int
	production map[techYear]int
	abatement  map[techYear]int
	shortfall  map[int]int
}

func newVarIndex() *VarIndex {
	return &VarIndex{
		install:    make(map[techYear]int),
		capacity:   make(map[techYear]int),
		production: make(map[techYear]int),
		abatement:  make(map[techYear]int),
		shortfall:  make(map[int]int),
	}
}

func (v *VarIndex) declare(p *solver.Problem, kind, tech string, year int, m map[techYear]int) int {
	col := p.AddVariable(fmt.Sprintf("%s[%s,%d]", kind, tech, year))
	m[techYear{tech, year}] = col
	return col
}

// Install returns the column of the installation variable for (tech, year).
func (v *VarIndex) Install(tech string, year int) int {
	return v.install[techYear{tech, year}]
}

// Capacity returns the column of the in-service capacity variable.
func (v *VarIndex) Capacity(tech string, year int) int {
	return v.capacity[techYear{tech, year}]
}

// Production returns the column of the production variable.
func (v *VarIndex) Production(tech string, year int) int {
	return v.production[techYear{tech, year}]
}

// Abatement returns the column of the abatement variable.
func (v *VarIndex) Abatement(tech string, year int) int {
	return v.abatement[techYear{tech, year}]
}

// Shortfall returns the column of the year's shortfall variable, if one
// exists.
func (v *VarIndex) Shortfall(year int) (int, bool) {
	col, ok := v.shortfall[year]
	return col, ok
}
