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

package config

import (
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/hydrochar-lab/htc-model/internal/logging"
)

// GlobalDefaultsKey is the overrides entry applied to every feedstock.
const GlobalDefaultsKey = "default"

// FeedstockConfig is the per-feedstock process configuration. Unset pointer
// fields inherit from the "default" entry and then from the model spec.
type FeedstockConfig struct {
	// Feed is the feedstock name this override applies to (only used in override entries).
	Feed string `yaml:"feed,omitempty" json:"feed,omitempty"`

	// MoistureTarget overrides the moisture the feed is hydrated to (0.0-1.0).
	// The native moisture still wins when it is higher.
	MoistureTarget *float64 `yaml:"moistureTarget,omitempty" json:"moistureTarget,omitempty"`

	// HeatingRateW overrides the heater power used for the ramp time.
	HeatingRateW *float64 `yaml:"heatingRateW,omitempty" json:"heatingRateW,omitempty"`

	// Density overrides the tabulated bulk density in kg/m³.
	Density *float64 `yaml:"density,omitempty" json:"density,omitempty"`

	// Exclude drops every scenario of the feed from a run.
	Exclude *bool `yaml:"exclude,omitempty" json:"exclude,omitempty"`
}

// FeedstockConfigData maps feedstock names to their configuration.
type FeedstockConfigData map[string]FeedstockConfig

// Validate checks for invalid configuration values.
func (c *FeedstockConfig) Validate() error {
	if c.MoistureTarget != nil && (*c.MoistureTarget < 0 || *c.MoistureTarget >= 1) {
		return fmt.Errorf("moistureTarget must be in [0, 1), got %.2f", *c.MoistureTarget)
	}
	if c.HeatingRateW != nil && *c.HeatingRateW <= 0 {
		return fmt.Errorf("heatingRateW must be > 0, got %.1f", *c.HeatingRateW)
	}
	if c.Density != nil && *c.Density <= 0 {
		return fmt.Errorf("density must be > 0, got %.1f", *c.Density)
	}
	return nil
}

// ParseFeedstockConfigMap parses per-feedstock configuration documents.
// The map format:
//   - "default": defaults for all feedstocks
//   - "<override-name>": per-feedstock configuration with a feed field
//
// Entries that fail to parse or validate are skipped.
func ParseFeedstockConfigMap(data map[string]string) FeedstockConfigData {
	out := make(FeedstockConfigData)
	if data == nil {
		return out
	}

	feedToKey := make(map[string]string)

	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		var cfg FeedstockConfig
		if err := yaml.Unmarshal([]byte(data[key]), &cfg); err != nil {
			logging.Log.Info("Failed to parse feedstock config entry, skipping",
				"key", key,
				"error", err)
			continue
		}

		if err := cfg.Validate(); err != nil {
			logging.Log.Info("Invalid feedstock config entry, skipping",
				"key", key,
				"error", err)
			continue
		}

		if key == GlobalDefaultsKey {
			out[GlobalDefaultsKey] = cfg
			continue
		}

		if cfg.Feed == "" {
			logging.Log.Info("Skipping feedstock config without feed field",
				"key", key)
			continue
		}

		if winner, exists := feedToKey[cfg.Feed]; exists {
			logging.Log.Info("Duplicate feed found in feedstock config - first key wins",
				"feed", cfg.Feed,
				"winningKey", winner,
				"duplicateKey", key)
			continue
		}
		feedToKey[cfg.Feed] = key
		out[cfg.Feed] = cfg
	}

	logging.Log.V(logging.DEBUG).Info("Parsed feedstock config",
		"feedCount", len(out))

	return out
}

// GetFeedstockConfig returns the effective configuration for a feedstock,
// merging its override onto the global defaults.
func (data FeedstockConfigData) GetFeedstockConfig(feed string) FeedstockConfig {
	defaults := data[GlobalDefaultsKey]
	override, ok := data[feed]
	if !ok {
		return defaults
	}

	result := defaults
	if override.Feed != "" {
		result.Feed = override.Feed
	}
	if override.MoistureTarget != nil {
		result.MoistureTarget = override.MoistureTarget
	}
	if override.HeatingRateW != nil {
		result.HeatingRateW = override.HeatingRateW
	}
	if override.Density != nil {
		result.Density = override.Density
	}
	if override.Exclude != nil {
		result.Exclude = override.Exclude
	}
	return result
}

// MoistureTargetFor returns the configured moisture target or fallback.
func (data FeedstockConfigData) MoistureTargetFor(feed string, fallback float64) float64 {
	if cfg := data.GetFeedstockConfig(feed); cfg.MoistureTarget != nil {
		return *cfg.MoistureTarget
	}
	return fallback
}

// HeatingRateFor returns the configured heater power or fallback.
func (data FeedstockConfigData) HeatingRateFor(feed string, fallback float64) float64 {
	if cfg := data.GetFeedstockConfig(feed); cfg.HeatingRateW != nil {
		return *cfg.HeatingRateW
	}
	return fallback
}

// DensityFor returns the configured density or fallback.
func (data FeedstockConfigData) DensityFor(feed string, fallback float64) float64 {
	if cfg := data.GetFeedstockConfig(feed); cfg.Density != nil {
		return *cfg.Density
	}
	return fallback
}

// IsExcluded reports whether the feed is excluded from runs.
func (data FeedstockConfigData) IsExcluded(feed string) bool {
	cfg := data.GetFeedstockConfig(feed)
	return cfg.Exclude != nil && *cfg.Exclude
}
