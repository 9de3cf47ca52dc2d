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

// Package core provides the fundamental data structures for the pathway
// optimization engine.
//
// This package contains the domain entities the engine operates on:
//
//   - Technology: a deployable abatement option with lifetime, commercialization
//     year, ramp limit, adoption cap, and abatement factor
//   - BaselineBand: a fixed process segment whose activity alternative
//     technologies substitute into
//   - CostTable: per-technology, per-year capital and operating costs
//   - TechLink: mutual-exclusivity groups and coupling pairs between technologies
//   - Pathway: the solved per-technology, per-year deployment result
//
// All entities are loaded once per run from validated external data and held
// read-only through model construction and solving. The core package holds no
// persistent state across runs.
//
// Emission quantities share a single unit throughout (conventionally tCO2);
// the engine never converts between units.
package core
