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
	"fmt"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variables recognized by Load,
// e.g. PATHOPT_DISCOUNTRATE.
const EnvPrefix = "PATHOPT"

// Load reads a RunConfig from an optional config file and the environment,
// layered over Default(). Precedence: environment > file > defaults.
func Load(path string) (RunConfig, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return RunConfig{}, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	cfg := Default()
	if err := v.Unmarshal(&cfg); err != nil {
		return RunConfig{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return RunConfig{}, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("discountRate", d.DiscountRate)
	v.SetDefault("slackEnabled", d.SlackEnabled)
	v.SetDefault("slackPenalty", d.SlackPenalty)
	v.SetDefault("defaultRampShare", d.DefaultRampShare)
	v.SetDefault("lifetimeBoundary", string(d.LifetimeBoundary))
	v.SetDefault("solverPreference", d.SolverPreference)
	v.SetDefault("solverTimeout", d.SolverTimeout)
	v.SetDefault("tolerance", d.Tolerance)
}
