/*
Copyright 2025.

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

// Package core provides the feedstock domain model of the HTC scenario model.
//
// This package contains the entities that every other stage reads or mutates:
//
//   - Feedstock: a named elementary, standardized or composite feedstock under a
//     specific reaction condition (temperature, residence time)
//   - Registry: the owning collection of feedstocks, keyed by (name, temp, time)
//   - CompositeResolver: weighted resolution of blend properties from registered
//     constituents, with independent-uncertainty propagation
//   - Charge: an immutable snapshot of a hydrated feedstock as loaded into the reactor
//
// Example usage:
//
//	reg := core.NewRegistry()
//	_ = reg.Add(core.NewFeedstock("rawSRU", 220, 1, core.Properties{HHV: 18.2, Moisture: 0.62, Density: 950}))
//	_ = reg.Add(core.NewFeedstock("rawDCW", 220, 1, core.Properties{HHV: 16.9, Moisture: 0.88, Density: 1010}))
//
//	blend := core.NewFeedstock("rawSRU50_rawDCW50", 220, 1, core.Properties{})
//	_ = reg.Add(blend)
//	if err := core.NewCompositeResolver(reg).Resolve(blend); err != nil {
//	    return err
//	}
//
// Composites must be resolved in dependency order: every constituent has to be
// registered (and resolved, when itself a composite) for the same condition first.
// Lookups that miss return errors wrapping ErrNotFound.
package core
