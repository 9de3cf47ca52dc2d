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

// Package config holds the run-wide configuration for pathway optimization.
//
// A RunConfig is an explicit immutable value passed into the constraint
// assembler and objective constructor; nothing in the engine reads ambient or
// global state, so concurrent independent runs cannot interfere.
package config

import (
	"fmt"
	"math"
	"sort"
	"time"
)

// LifetimeBoundary selects how the vintaging window treats the lifetime
// boundary year. The source formulations are inconsistent on this point, and
// the boundary changes total deployable capacity by one year per technology,
// so it is a named policy rather than a guess.
type LifetimeBoundary string

const (
	// BoundaryExclusive keeps capacity installed in year tau in service for
	// years t with 0 <= t-tau < lifetime.
	BoundaryExclusive LifetimeBoundary = "exclusive"

	// BoundaryInclusive extends service through t-tau == lifetime.
	BoundaryInclusive LifetimeBoundary = "inclusive"
)

// Default configuration values.
const (
	DefaultDiscountRate = 0.05

	// DefaultSlackPenalty is the cost per unit shortfall. It must strictly
	// dominate the costliest available technology so slack is only ever used
	// when the target is genuinely unreachable. Values much larger than this
	// (the source material used 1e15) degrade simplex conditioning in double
	// precision once discounted, without buying anything.
	DefaultSlackPenalty = 1e9

	// DefaultRampShare is the fraction of a technology's band activity
	// installable per year when the technology omits a ramp limit. A missing
	// ramp limit is never treated as zero.
	DefaultRampShare = 0.2

	DefaultSolverTimeout = 5 * time.Minute

	// DefaultTolerance is the absolute numerical tolerance used by post-solve
	// consistency checks and share-sum invariants.
	DefaultTolerance = 1e-6
)

// RunConfig is the immutable run-wide configuration.
type RunConfig struct {
	// DiscountRate is the annual discount rate as a fraction, e.g. 0.05.
	DiscountRate float64 `yaml:"discountRate" mapstructure:"discountRate"`

	// StartYear and EndYear bound the inclusive planning horizon. Ignored if
	// Years is set.
	StartYear int `yaml:"startYear" mapstructure:"startYear"`
	EndYear   int `yaml:"endYear" mapstructure:"endYear"`

	// Years optionally lists the planning years explicitly, overriding
	// StartYear/EndYear. Need not be contiguous.
	Years []int `yaml:"years,omitempty" mapstructure:"years"`

	// BaseYear anchors discounting. Zero means the first planning year.
	BaseYear int `yaml:"baseYear,omitempty" mapstructure:"baseYear"`

	// SlackEnabled permits target shortfall, penalized at SlackPenalty per
	// unit. With slack disabled an unreachable target solves Infeasible.
	SlackEnabled bool    `yaml:"slackEnabled" mapstructure:"slackEnabled"`
	SlackPenalty float64 `yaml:"slackPenalty" mapstructure:"slackPenalty"`

	// DefaultRampShare is applied when a technology omits a ramp limit:
	// the technology may install at most DefaultRampShare * band activity of
	// new capacity per year.
	DefaultRampShare float64 `yaml:"defaultRampShare" mapstructure:"defaultRampShare"`

	// LifetimeBoundary is the vintaging boundary policy.
	LifetimeBoundary LifetimeBoundary `yaml:"lifetimeBoundary" mapstructure:"lifetimeBoundary"`

	// SolverPreference is the ordered list of backend names to attempt.
	SolverPreference []string `yaml:"solverPreference" mapstructure:"solverPreference"`

	// SolverTimeout bounds the wall-clock time of a single solve.
	SolverTimeout time.Duration `yaml:"solverTimeout" mapstructure:"solverTimeout"`

	// Tolerance is the absolute numerical tolerance for consistency checks.
	Tolerance float64 `yaml:"tolerance" mapstructure:"tolerance"`
}

// Default returns the default run configuration. StartYear and EndYear must
// still be supplied by the caller.
func Default() RunConfig {
	return RunConfig{
		DiscountRate:     DefaultDiscountRate,
		SlackPenalty:     DefaultSlackPenalty,
		DefaultRampShare: DefaultRampShare,
		LifetimeBoundary: BoundaryExclusive,
		SolverPreference: []string{"simplex"},
		SolverTimeout:    DefaultSolverTimeout,
		Tolerance:        DefaultTolerance,
	}
}

// Validate checks the configuration for invalid values.
func (c RunConfig) Validate() error {
	if c.DiscountRate < 0 || c.DiscountRate >= 1 {
		return fmt.Errorf("discountRate must be in [0,1), got %g", c.DiscountRate)
	}
	if len(c.Years) == 0 {
		if c.StartYear == 0 || c.EndYear == 0 {
			return fmt.Errorf("either years or startYear/endYear must be set")
		}
		if c.EndYear < c.StartYear {
			return fmt.Errorf("endYear %d precedes startYear %d", c.EndYear, c.StartYear)
		}
	}
	if c.SlackPenalty <= 0 {
		return fmt.Errorf("slackPenalty must be positive, got %g", c.SlackPenalty)
	}
	if c.DefaultRampShare <= 0 || c.DefaultRampShare > 1 {
		return fmt.Errorf("defaultRampShare must be in (0,1], got %g", c.DefaultRampShare)
	}
	switch c.LifetimeBoundary {
	case BoundaryExclusive, BoundaryInclusive:
	default:
		return fmt.Errorf("lifetimeBoundary must be %q or %q, got %q",
			BoundaryExclusive, BoundaryInclusive, c.LifetimeBoundary)
	}
	if len(c.SolverPreference) == 0 {
		return fmt.Errorf("solverPreference must name at least one backend")
	}
	if c.SolverTimeout < 0 {
		return fmt.Errorf("solverTimeout must be >= 0, got %s", c.SolverTimeout)
	}
	if c.Tolerance <= 0 {
		return fmt.Errorf("tolerance must be positive, got %g", c.Tolerance)
	}
	return nil
}

// Timeline returns the sorted planning years.
func (c RunConfig) Timeline() []int {
	if len(c.Years) > 0 {
		years := make([]int, len(c.Years))
		copy(years, c.Years)
		sort.Ints(years)
		return years
	}
	years := make([]int, 0, c.EndYear-c.StartYear+1)
	for y := c.StartYear; y <= c.EndYear; y++ {
		years = append(years, y)
	}
	return years
}

// DiscountFactor returns 1/(1+r)^(year-base) anchored at the run's base year.
func (c RunConfig) DiscountFactor(year int) float64 {
	base := c.BaseYear
	if base == 0 {
		base = c.firstYear()
	}
	return 1.0 / math.Pow(1.0+c.DiscountRate, float64(year-base))
}

func (c RunConfig) firstYear() int {
	if len(c.Years) > 0 {
		first := c.Years[0]
		for _, y := range c.Years[1:] {
			if y < first {
				first = y
			}
		}
		return first
	}
	return c.StartYear
}
