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

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() RunConfig {
	c := Default()
	c.StartYear = 2030
	c.EndYear = 2050
	return c
}

func TestRunConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*RunConfig)
		wantErr string
	}{
		{name: "valid", mutate: func(*RunConfig) {}},
		{
			name:    "negative discount rate",
			mutate:  func(c *RunConfig) { c.DiscountRate = -0.01 },
			wantErr: "discountRate",
		},
		{
			name:    "no horizon at all",
			mutate:  func(c *RunConfig) { c.StartYear, c.EndYear = 0, 0 },
			wantErr: "startYear",
		},
		{
			name:    "reversed horizon",
			mutate:  func(c *RunConfig) { c.StartYear, c.EndYear = 2050, 2030 },
			wantErr: "precedes",
		},
		{
			name:   "explicit years beat start and end",
			mutate: func(c *RunConfig) { c.StartYear, c.EndYear = 0, 0; c.Years = []int{2030, 2040} },
		},
		{
			name:    "zero slack penalty",
			mutate:  func(c *RunConfig) { c.SlackPenalty = 0 },
			wantErr: "slackPenalty",
		},
		{
			name:    "ramp share above one",
			mutate:  func(c *RunConfig) { c.DefaultRampShare = 1.5 },
			wantErr: "defaultRampShare",
		},
		{
			name:    "unknown lifetime boundary",
			mutate:  func(c *RunConfig) { c.LifetimeBoundary = "sometimes" },
			wantErr: "lifetimeBoundary",
		},
		{
			name:    "empty solver preference",
			mutate:  func(c *RunConfig) { c.SolverPreference = nil },
			wantErr: "solverPreference",
		},
		{
			name:    "negative tolerance",
			mutate:  func(c *RunConfig) { c.Tolerance = -1 },
			wantErr: "tolerance",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestRunConfig_Timeline(t *testing.T) {
	t.Run("inclusive range", func(t *testing.T) {
		c := RunConfig{StartYear: 2030, EndYear: 2033}
		assert.Equal(t, []int{2030, 2031, 2032, 2033}, c.Timeline())
	})

	t.Run("explicit years are sorted and may be sparse", func(t *testing.T) {
		c := RunConfig{Years: []int{2040, 2030, 2035}}
		assert.Equal(t, []int{2030, 2035, 2040}, c.Timeline())
	})
}

func TestRunConfig_DiscountFactor(t *testing.T) {
	c := RunConfig{DiscountRate: 0.05, StartYear: 2030, EndYear: 2050}

	assert.InDelta(t, 1.0, c.DiscountFactor(2030), 1e-12, "first year is the anchor")
	assert.InDelta(t, 1.0/1.05, c.DiscountFactor(2031), 1e-12)

	c.BaseYear = 2025
	assert.InDelta(t, 1.0/(1.05*1.05*1.05*1.05*1.05), c.DiscountFactor(2030), 1e-12)

	c.BaseYear = 0
	c.DiscountRate = 0
	assert.InDelta(t, 1.0, c.DiscountFactor(2045), 1e-12)
}

func TestLoad(t *testing.T) {
	write := func(t *testing.T, content string) string {
		t.Helper()
		path := filepath.Join(t.TempDir(), "run.yaml")
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
		return path
	}

	t.Run("file over defaults", func(t *testing.T) {
		path := write(t, `
startYear: 2030
endYear: 2050
discountRate: 0.07
slackEnabled: true
`)
		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, 2030, cfg.StartYear)
		assert.InDelta(t, 0.07, cfg.DiscountRate, 1e-12)
		assert.True(t, cfg.SlackEnabled)
		assert.Equal(t, DefaultSlackPenalty, cfg.SlackPenalty)
		assert.Equal(t, []string{"simplex"}, cfg.SolverPreference)
	})

	t.Run("environment over file", func(t *testing.T) {
		t.Setenv("PATHOPT_DISCOUNTRATE", "0.09")
		path := write(t, `
startYear: 2030
endYear: 2050
discountRate: 0.07
`)
		cfg, err := Load(path)
		require.NoError(t, err)
		assert.InDelta(t, 0.09, cfg.DiscountRate, 1e-12)
	})

	t.Run("invalid values rejected", func(t *testing.T) {
		path := write(t, `
startYear: 2050
endYear: 2030
`)
		_, err := Load(path)
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.Error(t, err)
	})
}
