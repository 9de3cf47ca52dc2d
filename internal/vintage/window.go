// Package vintage tracks installed capacity by installation year so it
// expires after its operating lifetime.
//
// The window is a precomputed index map: for each planning year, the set of
// prior years whose installations remain in service. The constraint assembler
// turns the index into exact-equality rows over decision variables (the
// in-service total is itself decision-dependent and feeds production limits),
// and the result extractor reuses the same index to re-check the solved
// values, so the window logic lives in exactly one place.
package vintage

import (
	"fmt"

	"github.com/industrial-decarb/pathway-optimizer/pkg/config"
)

// Window is the precomputed in-service index for one technology.
type Window struct {
	lifetime int
	years    []int
	active   map[int][]int
}

// New builds the window for the given planning years and lifetime under the
// boundary policy. Years need not be contiguous; the window condition is on
// year values, not positions.
func New(years []int, lifetime int, boundary config.LifetimeBoundary) (*Window, error) {
	if lifetime <= 0 {
		return nil, fmt.Errorf("lifetime must be positive, got %d", lifetime)
	}
	span := lifetime
	if boundary == config.BoundaryInclusive {
		span = lifetime + 1
	}

	w := &Window{
		lifetime: lifetime,
		years:    years,
		active:   make(map[int][]int, len(years)),
	}
	for _, t := range years {
		var in []int
		for _, tau := range years {
			if age := t - tau; age >= 0 && age < span {
				in = append(in, tau)
			}
		}
		w.active[t] = in
	}
	return w, nil
}

// Lifetime returns the technology lifetime the window was built with.
func (w *Window) Lifetime() int { return w.lifetime }

// Active returns the installation years still in service in year t, ascending.
// Installations outside the window contribute nothing.
func (w *Window) Active(t int) []int { return w.active[t] }

// InService evaluates the in-service capacity in year t for a concrete
// installation series. Used for post-solve consistency checks; during
// assembly the same index becomes a linear equality over decision variables.
func (w *Window) InService(t int, installed map[int]float64) float64 {
	total := 0.0
	for _, tau := range w.active[t] {
		total += installed[tau]
	}
	return total
}
