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

package core

// LinkKind discriminates the two relationship rules between technologies.
type LinkKind string

const (
	// LinkMutuallyExclusive bounds the combined in-service share of a set of
	// technologies to 1 in every year.
	LinkMutuallyExclusive LinkKind = "MutuallyExclusive"

	// LinkCoupling requires the secondary technology's share to be at least
	// the primary's share in every year, modeling a dependency.
	LinkCoupling LinkKind = "Coupling"
)

// TechLink is either a mutual-exclusivity group or a coupling pair.
type TechLink struct {
	Kind LinkKind

	// Techs lists the member technology IDs of a mutual-exclusivity group.
	// Unused for coupling links.
	Techs []string

	// Primary and Secondary identify the coupling pair: share(Secondary, t)
	// must be >= share(Primary, t) for every year. Unused for exclusivity.
	Primary   string
	Secondary string
}

// Validate checks the link against the set of known technology IDs.
func (l TechLink) Validate(known map[string]*Technology) error {
	switch l.Kind {
	case LinkMutuallyExclusive:
		if len(l.Techs) < 2 {
			return Validationf("link.techs", "exclusivity group needs at least 2 technologies, got %d", len(l.Techs))
		}
		seen := make(map[string]bool, len(l.Techs))
		for _, id := range l.Techs {
			if _, ok := known[id]; !ok {
				return Validationf("link.techs", "unknown technology %q", id)
			}
			if seen[id] {
				return Validationf("link.techs", "technology %q listed twice", id)
			}
			seen[id] = true
		}
	case LinkCoupling:
		if l.Primary == "" || l.Secondary == "" {
			return Validationf("link", "coupling needs both primary and secondary")
		}
		if l.Primary == l.Secondary {
			return Validationf("link", "coupling primary and secondary must differ, got %q", l.Primary)
		}
		if _, ok := known[l.Primary]; !ok {
			return Validationf("link.primary", "unknown technology %q", l.Primary)
		}
		if _, ok := known[l.Secondary]; !ok {
			return Validationf("link.secondary", "unknown technology %q", l.Secondary)
		}
	default:
		return Validationf("link.kind", "unknown kind %q", string(l.Kind))
	}
	return nil
}
