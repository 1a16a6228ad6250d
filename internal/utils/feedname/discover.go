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

package feedname

import (
	"context"
	"fmt"

	"github.com/hydrochar-lab/htc-model/internal/logging"
	"github.com/hydrochar-lab/htc-model/pkg/core"
)

// MoistureTargetFunc returns the moisture target of a feed.
type MoistureTargetFunc func(feed string) float64

// DiscoverStandardVariants registers a standardized copy of every raw feed
// whose moisture is below its target, at each condition the raw feed is
// registered for. Feeds already at or above their target have no standardized
// variant. Hydrated feeds and existing variants are left untouched.
//
// Returns the variants created, in registry order.
func DiscoverStandardVariants(
	ctx context.Context,
	registry *core.Registry,
	targetFor MoistureTargetFunc,
	config NamingConfig,
) ([]StandardVariant, error) {
	logger := logging.FromContext(ctx)

	if registry == nil {
		return nil, fmt.Errorf("registry cannot be nil: %w", core.ErrInvalidParameter)
	}
	if targetFor == nil {
		targetFor = func(string) float64 { return core.DefaultMoistureTarget }
	}

	var created []StandardVariant
	for _, f := range registry.List() {
		if f.Hydrated || DetectKind(f.Name, config) != KindRaw {
			continue
		}
		target := targetFor(f.Name)
		if f.Moisture >= target {
			logger.V(logging.TRACE).Info("Skipping standard variant, feed already at target moisture",
				"feed", f.Name,
				"moisture", f.Moisture,
				"target", target)
			continue
		}

		name := StandardName(BaseName(f.Name, config), config)
		if registry.Has(name, f.Temp, f.Time) {
			continue
		}
		dup, err := registry.Duplicate(f.Name, name, f.Temp, f.Time)
		if err != nil {
			return created, fmt.Errorf("creating standard variant of %s: %w", f.Key(), err)
		}
		core.ApplyMoistureTarget(dup, target)
		created = append(created, StandardVariant{Source: f.Name, Name: name, Temp: f.Temp, Time: f.Time})
	}

	logger.V(logging.DEBUG).Info("Discovered standard variants", "count", len(created))
	return created, nil
}
