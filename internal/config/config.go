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

// Package config loads the runtime configuration of a model run: physical
// parameters, reaction conditions, data sources, objectives and per-feedstock
// overrides.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/hydrochar-lab/htc-model/internal/engines/ranker"
	"github.com/hydrochar-lab/htc-model/internal/logging"
	modelspec "github.com/hydrochar-lab/htc-model/pkg/config"
	"github.com/hydrochar-lab/htc-model/pkg/core"
)

// EnvPrefix prefixes environment overrides, e.g. HTC_LOGLEVEL or HTC_SOURCES_PROPERTIES.
const EnvPrefix = "HTC"

var (
	// DefaultTemps are the reaction temperatures in °C seeded for every feed.
	DefaultTemps = []float64{190, 220, 250}
	// DefaultTimes are the residence times in hours seeded for every feed.
	DefaultTimes = []float64{1, 3}
	// DefaultObjectives are the minimized objective columns of a run.
	DefaultObjectives = []string{"total_heat_kwh", "electricity_kwh", "co2"}
)

// FlagKeys maps command-line flag names to configuration keys.
var FlagKeys = map[string]string{
	"log-level":       "logLevel",
	"development":     "development",
	"moisture-target": "moistureTarget",
	"properties":      "sources.properties",
	"yields":          "sources.yields",
	"db":              "sources.sqlite",
	"out-db":          "output.sqlite",
	"metrics-out":     "output.metrics",
	"objectives":      "objectives",
	"strategy":        "strategy",
	"lcia-factors":    "lcia.factors",
}

// Conditions is the reaction condition grid.
type Conditions struct {
	Temps []float64 `mapstructure:"temps" yaml:"temps"`
	Times []float64 `mapstructure:"times" yaml:"times"`
}

// Sources locates the property and yield tables. A SQLite database takes
// precedence over the CSV files when set.
type Sources struct {
	Properties string `mapstructure:"properties" yaml:"properties"`
	Yields     string `mapstructure:"yields" yaml:"yields"`
	SQLite     string `mapstructure:"sqlite" yaml:"sqlite"`
}

// Output configures where results are written. An empty SQLite path keeps
// results in memory.
type Output struct {
	SQLite  string `mapstructure:"sqlite" yaml:"sqlite"`
	Metrics string `mapstructure:"metrics" yaml:"metrics"`
}

// LCIA locates the characterization factors applied to process flows. Without
// a factors file every impact score is zero.
type LCIA struct {
	Factors string `mapstructure:"factors" yaml:"factors"`

	// ExcludeTransportation drops the transportation bucket from impact totals.
	ExcludeTransportation bool `mapstructure:"excludeTransportation" yaml:"excludeTransportation"`
}

// Config is the runtime configuration.
type Config struct {
	LogLevel       string              `mapstructure:"logLevel" yaml:"logLevel"`
	Development    bool                `mapstructure:"development" yaml:"development"`
	MoistureTarget float64             `mapstructure:"moistureTarget" yaml:"moistureTarget"`
	Conditions     Conditions          `mapstructure:"conditions" yaml:"conditions"`
	Objectives     []string            `mapstructure:"objectives" yaml:"objectives"`
	Strategy       string              `mapstructure:"strategy" yaml:"strategy"`
	Sources        Sources             `mapstructure:"sources" yaml:"sources"`
	Output         Output              `mapstructure:"output" yaml:"output"`
	LCIA           LCIA                `mapstructure:"lcia" yaml:"lcia"`
	Model          modelspec.ModelSpec `mapstructure:"model" yaml:"model"`

	// Feedstocks holds raw per-feedstock YAML documents; see ParseFeedstockConfigMap.
	Feedstocks map[string]string `mapstructure:"feedstocks" yaml:"feedstocks"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		LogLevel:       "info",
		MoistureTarget: core.DefaultMoistureTarget,
		Conditions: Conditions{
			Temps: append([]float64(nil), DefaultTemps...),
			Times: append([]float64(nil), DefaultTimes...),
		},
		Objectives: append([]string(nil), DefaultObjectives...),
		Strategy:   "front",
		Model:      modelspec.DefaultModelSpec(),
	}
}

// Load reads the configuration from an optional YAML file, HTC_ environment
// variables and bound flags, in increasing precedence over the defaults.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v, Default())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		logging.Log.V(logging.DEBUG).Info("Loaded config file", "path", v.ConfigFileUsed())
	}

	if flags != nil {
		for name, key := range FlagKeys {
			f := flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("logLevel", d.LogLevel)
	v.SetDefault("development", d.Development)
	v.SetDefault("moistureTarget", d.MoistureTarget)
	v.SetDefault("conditions.temps", d.Conditions.Temps)
	v.SetDefault("conditions.times", d.Conditions.Times)
	v.SetDefault("objectives", d.Objectives)
	v.SetDefault("strategy", d.Strategy)
	v.SetDefault("lcia.factors", "")
	v.SetDefault("lcia.excludeTransportation", false)
	v.SetDefault("sources.properties", "")
	v.SetDefault("sources.yields", "")
	v.SetDefault("sources.sqlite", "")
	v.SetDefault("output.sqlite", "")
	v.SetDefault("output.metrics", "")

	m := d.Model
	v.SetDefault("model.reactor.innerRadius", m.Reactor.InnerRadius)
	v.SetDefault("model.reactor.steelRadius", m.Reactor.SteelRadius)
	v.SetDefault("model.reactor.outerRadius", m.Reactor.OuterRadius)
	v.SetDefault("model.reactor.height", m.Reactor.Height)
	v.SetDefault("model.reactor.insulationConductivity", m.Reactor.InsulationConductivity)
	v.SetDefault("model.reactor.steelConductivity", m.Reactor.SteelConductivity)
	v.SetDefault("model.heatTransfer.convectionCoefficient", m.HeatTransfer.ConvectionCoefficient)
	v.SetDefault("model.heatTransfer.emissivity", m.HeatTransfer.Emissivity)
	v.SetDefault("model.heatTransfer.ambientTempC", m.HeatTransfer.AmbientTempC)
	v.SetDefault("model.mixer.impellerSpeed", m.Mixer.ImpellerSpeed)
	v.SetDefault("model.mixer.impellerDiameter", m.Mixer.ImpellerDiameter)
	v.SetDefault("model.mixer.viscosity", m.Mixer.Viscosity)
	v.SetDefault("model.mixer.powerNumberCoefficient", m.Mixer.PowerNumberCoefficient)
	v.SetDefault("model.mixer.powerNumberExponent", m.Mixer.PowerNumberExponent)
	v.SetDefault("model.heating.waterSpecificHeat", m.Heating.WaterSpecificHeat)
	v.SetDefault("model.heating.heatingRateW", m.Heating.HeatingRateW)
	v.SetDefault("model.heating.startTempC", m.Heating.StartTempC)
	v.SetDefault("model.postProcessing.filtrationPowerW", m.PostProcessing.FiltrationPowerW)
	v.SetDefault("model.postProcessing.filtrationHours", m.PostProcessing.FiltrationHours)
	v.SetDefault("model.postProcessing.dryingPowerW", m.PostProcessing.DryingPowerW)
	v.SetDefault("model.postProcessing.dryingHours", m.PostProcessing.DryingHours)
}

// Validate checks the run configuration and the model spec.
func (c *Config) Validate() error {
	var errs []error
	if c.MoistureTarget < 0 || c.MoistureTarget >= 1 {
		errs = append(errs, fmt.Errorf("moistureTarget must be in [0, 1), got %.2f", c.MoistureTarget))
	}
	if len(c.Conditions.Temps) == 0 || len(c.Conditions.Times) == 0 {
		errs = append(errs, fmt.Errorf("conditions need at least one temperature and one time"))
	}
	for _, t := range c.Conditions.Times {
		if t <= 0 {
			errs = append(errs, fmt.Errorf("residence time must be > 0, got %.2f", t))
		}
	}
	if len(c.Objectives) == 0 {
		errs = append(errs, fmt.Errorf("at least one objective is required"))
	}
	if _, err := ranker.ParseStrategy(c.Strategy); err != nil {
		errs = append(errs, err)
	}
	if err := c.Model.Validate(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// FeedstockOverrides parses the per-feedstock documents.
func (c *Config) FeedstockOverrides() FeedstockConfigData {
	return ParseFeedstockConfigMap(c.Feedstocks)
}
