// Package series resolves sparse year->value tables into dense annual series.
//
// Values between two known years are linearly interpolated. Outside the known
// range the FlatHold policy applies: the nearest known value is held constant.
// Flat-hold is a deliberate, documented policy of this package, not an
// implicit solver default; callers that need a different anchor below the
// first known year (e.g. a baseline level) must supply it as a point.
package series

import (
	"sort"

	"github.com/industrial-decarb/pathway-optimizer/pkg/core"
)

// Policy names the extrapolation behavior outside the known range.
type Policy string

// FlatHold holds the nearest known value constant outside the known range.
const FlatHold Policy = "flat-hold"

// Resolve fills the sparse points into a dense series covering every year in
// years. The name labels the series in errors. Returns *core.DataGapError if
// points is empty.
func Resolve(name string, points map[int]float64, years []int) (map[int]float64, error) {
	if len(points) == 0 {
		return nil, &core.DataGapError{Series: name}
	}

	known := make([]int, 0, len(points))
	for y := range points {
		known = append(known, y)
	}
	sort.Ints(known)

	out := make(map[int]float64, len(years))
	for _, y := range years {
		out[y] = at(points, known, y)
	}
	return out, nil
}

// at evaluates the series at year y. known is sorted ascending.
func at(points map[int]float64, known []int, y int) float64 {
	first, last := known[0], known[len(known)-1]
	if y <= first {
		return points[first]
	}
	if y >= last {
		return points[last]
	}
	if v, ok := points[y]; ok {
		return v
	}

	// y is strictly inside the known range: find the bracketing points.
	hi := sort.SearchInts(known, y)
	lo := hi - 1
	yLo, yHi := known[lo], known[hi]
	t := float64(y-yLo) / float64(yHi-yLo)
	return points[yLo]*(1-t) + points[yHi]*t
}

// Constant returns a dense series holding v for every year.
func Constant(v float64, years []int) map[int]float64 {
	out := make(map[int]float64, len(years))
	for _, y := range years {
		out[y] = v
	}
	return out
}
