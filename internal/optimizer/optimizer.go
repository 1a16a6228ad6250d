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

package optimizer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hydrochar-lab/htc-model/api/v1alpha1"
	"github.com/hydrochar-lab/htc-model/internal/actuator"
	"github.com/hydrochar-lab/htc-model/internal/collector"
	"github.com/hydrochar-lab/htc-model/internal/config"
	"github.com/hydrochar-lab/htc-model/internal/engines/common"
	"github.com/hydrochar-lab/htc-model/internal/engines/process"
	"github.com/hydrochar-lab/htc-model/internal/engines/ranker"
	"github.com/hydrochar-lab/htc-model/internal/lcia"
	"github.com/hydrochar-lab/htc-model/internal/logging"
	"github.com/hydrochar-lab/htc-model/internal/utils/feedname"
	"github.com/hydrochar-lab/htc-model/internal/yieldtable"
	modelspec "github.com/hydrochar-lab/htc-model/pkg/config"
	"github.com/hydrochar-lab/htc-model/pkg/core"
	"github.com/hydrochar-lab/htc-model/pkg/solver"
)

// Failure reasons reported to the metrics.
const (
	ReasonNotFound         = "not_found"
	ReasonConvergence      = "convergence"
	ReasonInvalidParameter = "invalid_parameter"
	ReasonInvalidComposite = "invalid_composite"
	ReasonSink             = "sink"
	ReasonOther            = "other"
)

// ScenarioError identifies the scenario a run failed on.
type ScenarioError struct {
	Scenario core.Key
	Err      error
}

func (e *ScenarioError) Error() string {
	return fmt.Sprintf("scenario %s: %v", e.Scenario, e.Err)
}

func (e *ScenarioError) Unwrap() error { return e.Err }

// Reason classifies err for the failure metric.
func Reason(err error) string {
	switch {
	case errors.Is(err, core.ErrNotFound):
		return ReasonNotFound
	case errors.Is(err, core.ErrConvergenceFailure):
		return ReasonConvergence
	case errors.Is(err, core.ErrInvalidComposite):
		return ReasonInvalidComposite
	case errors.Is(err, core.ErrInvalidParameter):
		return ReasonInvalidParameter
	default:
		return ReasonOther
	}
}

// OptimizerConfig wires the optimizer's collaborators.
type OptimizerConfig struct {
	// Properties seeds the elementary feedstocks.
	Properties collector.PropertySource
	// Yields provides gas yield, hydrochar yield and hydrochar HHV per scenario.
	Yields yieldtable.Reader
	// Model computes the process balance.
	Model *process.Model
	// Settings holds objectives, moisture target and per-feedstock overrides.
	Settings *common.GlobalConfig
	// Conditions is the default reaction condition grid.
	Conditions config.Conditions
	// Strategy is the default ranking strategy.
	Strategy ranker.RankerStrategy
	// Factors characterizes process flows. Nil yields zero impact scores.
	Factors *lcia.Factors
	// ExcludeTransportation drops transportation from impact objectives.
	ExcludeTransportation bool
	// Naming configures raw and standardized prefixes.
	Naming *feedname.NamingConfig
	// Sink receives the results. Nil keeps them in memory.
	Sink actuator.Sink
	// Metrics receives run metrics. Nil creates a private emitter.
	Metrics *actuator.MetricsEmitter
}

// Optimizer runs scenario sets.
type Optimizer struct {
	properties collector.PropertySource
	yields     yieldtable.Reader
	model      *process.Model
	settings   *common.GlobalConfig
	conditions config.Conditions
	strategy   ranker.RankerStrategy
	factors    *lcia.Factors
	excludeTx  bool
	naming     feedname.NamingConfig
	sink       actuator.Sink
	metrics    *actuator.MetricsEmitter
}

// NewOptimizer creates an optimizer from cfg.
func NewOptimizer(cfg *OptimizerConfig) (*Optimizer, error) {
	if cfg == nil {
		return nil, fmt.Errorf("optimizer config cannot be nil")
	}
	if cfg.Properties == nil {
		return nil, fmt.Errorf("property source cannot be nil")
	}
	if cfg.Yields == nil {
		return nil, fmt.Errorf("yield reader cannot be nil")
	}
	if cfg.Model == nil {
		return nil, fmt.Errorf("process model cannot be nil")
	}
	if cfg.Settings == nil {
		return nil, fmt.Errorf("settings cannot be nil")
	}
	o := &Optimizer{
		properties: cfg.Properties,
		yields:     cfg.Yields,
		model:      cfg.Model,
		settings:   cfg.Settings,
		conditions: cfg.Conditions,
		strategy:   cfg.Strategy,
		factors:    cfg.Factors,
		excludeTx:  cfg.ExcludeTransportation,
		naming:     feedname.DefaultNamingConfig(),
		sink:       cfg.Sink,
		metrics:    cfg.Metrics,
	}
	if cfg.Naming != nil {
		o.naming = *cfg.Naming
	}
	if o.factors == nil {
		o.factors = lcia.NewFactors()
	}
	if o.sink == nil {
		o.sink = actuator.NewMemorySink()
	}
	if o.metrics == nil {
		o.metrics = actuator.NewMetricsEmitter()
	}
	return o, nil
}

// NewModel builds the process model over a cached thermal balance.
func NewModel(spec modelspec.ModelSpec) (*process.Model, *common.WallSolutionCache, error) {
	thermal, err := solver.NewThermalBalance(spec.Reactor, spec.HeatTransfer)
	if err != nil {
		return nil, nil, err
	}
	cache := common.NewWallSolutionCache(thermal)
	model, err := process.NewModel(cache, spec)
	if err != nil {
		return nil, nil, err
	}
	return model, cache, nil
}

// Result is the outcome of a run.
type Result struct {
	Registry   *core.Registry
	Variants   []feedname.StandardVariant
	Balances   []process.Balance
	Records    *lcia.Manager
	Objectives []Objective
	Rows       []solver.Row
	Ranking    *ranker.Ranking
	Finished   time.Time
}

// Status summarizes the result for the scenario-set document.
func (r *Result) Status() v1alpha1.ScenarioSetStatus {
	status := v1alpha1.ScenarioSetStatus{
		LastRunTime: r.Finished,
		Evaluated:   len(r.Balances),
	}
	if r.Ranking != nil {
		status.NonDominated = ranker.Names(r.Ranking.NonDominated)
		status.Dominated = ranker.Names(r.Ranking.Dominated)
	}
	return status
}

// Optimize runs set. A nil set evaluates every seeded feed under the default
// conditions.
func (o *Optimizer) Optimize(ctx context.Context, set *v1alpha1.ScenarioSet) (*Result, error) {
	logger := logging.FromContext(ctx)
	if set == nil {
		set = v1alpha1.NewScenarioSet("default")
	}

	objectiveNames := set.Spec.Objectives
	if len(objectiveNames) == 0 {
		objectiveNames = o.settings.GetObjectives()
	}
	objectives, err := ParseObjectives(objectiveNames)
	if err != nil {
		return nil, err
	}
	strategy := o.strategy
	if set.Spec.Strategy != "" {
		if strategy, err = ranker.ParseStrategy(set.Spec.Strategy); err != nil {
			return nil, err
		}
	}
	conditions := o.conditionGrid(set)

	logger.Info("Starting scenario run",
		"scenarioSet", set.Metadata.Name,
		"conditions", len(conditions),
		"blends", len(set.Spec.Blends),
		"objectives", objectiveNames,
		"strategy", strategy.String())

	result := &Result{
		Registry:   core.NewRegistry(),
		Records:    lcia.NewManager(),
		Objectives: objectives,
	}

	if err := o.seed(ctx, result.Registry, conditions); err != nil {
		return nil, err
	}
	result.Variants, err = feedname.DiscoverStandardVariants(ctx, result.Registry, o.moistureTargetFor, o.naming)
	if err != nil {
		return nil, err
	}

	selected := o.selection(set)
	constituents, err := constituentNames(set.Spec.Blends)
	if err != nil {
		return nil, err
	}

	// Elementary and standardized feeds come first so blends can resolve
	// against their hydrated state.
	for _, f := range result.Registry.List() {
		name := f.Name
		switch {
		case selected(name):
			if err := o.evaluate(ctx, f, objectives, result); err != nil {
				return nil, err
			}
		case constituents[name]:
			if err := o.prepare(f); err != nil {
				return nil, o.fail(f.Key(), err)
			}
		default:
			logger.V(logging.TRACE).Info("Skipping unselected feed", "scenario", f.Key().String())
		}
	}

	for _, blend := range set.Spec.Blends {
		if o.overrides().IsExcluded(blend) {
			logger.V(logging.DEBUG).Info("Skipping excluded blend", "blend", blend)
			continue
		}
		resolver := core.NewCompositeResolver(result.Registry, core.WithMoistureTarget(o.moistureTargetFor(blend)))
		for _, c := range conditions {
			f := core.NewFeedstock(blend, c.Temp, c.Time, core.Properties{})
			if err := result.Registry.Add(f); err != nil {
				return nil, o.fail(f.Key(), err)
			}
			if err := resolver.Resolve(f); err != nil {
				return nil, o.fail(f.Key(), err)
			}
			if err := o.evaluate(ctx, f, objectives, result); err != nil {
				return nil, err
			}
		}
	}

	if err := o.rank(ctx, strategy, result); err != nil {
		return nil, err
	}
	result.Finished = time.Now().UTC()

	logger.Info("Scenario run complete",
		"scenarioSet", set.Metadata.Name,
		"evaluated", len(result.Balances),
		"nonDominated", len(result.Ranking.NonDominated),
		"dominated", len(result.Ranking.Dominated))
	return result, nil
}

func (o *Optimizer) overrides() config.FeedstockConfigData {
	return o.settings.GetFeedstockConfig()
}

// overrideKey returns the override entry name of a feed: the full name when
// configured, otherwise its base name.
func (o *Optimizer) overrideKey(name string) string {
	if _, ok := o.overrides()[name]; ok {
		return name
	}
	return feedname.BaseName(name, o.naming)
}

func (o *Optimizer) moistureTargetFor(name string) float64 {
	return o.settings.MoistureTargetFor(o.overrideKey(name))
}

func (o *Optimizer) conditionGrid(set *v1alpha1.ScenarioSet) []v1alpha1.Condition {
	if len(set.Spec.Conditions) > 0 {
		return set.Spec.Conditions
	}
	grid := make([]v1alpha1.Condition, 0, len(o.conditions.Temps)*len(o.conditions.Times))
	for _, temp := range o.conditions.Temps {
		for _, t := range o.conditions.Times {
			grid = append(grid, v1alpha1.Condition{Temp: temp, Time: t})
		}
	}
	return grid
}

// seed registers raw<Feed> as received for every property row and condition.
func (o *Optimizer) seed(ctx context.Context, registry *core.Registry, conditions []v1alpha1.Condition) error {
	logger := logging.FromContext(ctx)

	rows, err := o.properties.Properties(ctx)
	if err != nil {
		return fmt.Errorf("failed to read properties from %s: %w", o.properties.Name(), err)
	}
	for _, row := range rows {
		name := feedname.RawName(row.Feed, o.naming)
		key := o.overrideKey(name)
		if o.overrides().IsExcluded(key) {
			logger.V(logging.DEBUG).Info("Skipping excluded feed", "feed", name)
			continue
		}
		props := row.Properties
		props.Density = o.overrides().DensityFor(key, props.Density)
		for _, c := range conditions {
			f := core.NewFeedstock(name, c.Temp, c.Time, props)
			f.MoistureTarget = f.Moisture
			if err := registry.Add(f); err != nil {
				return err
			}
		}
	}
	logger.V(logging.DEBUG).Info("Seeded registry", "feeds", len(rows), "entries", registry.Len())
	return nil
}

// selection returns whether an elementary or standardized feed is evaluated.
func (o *Optimizer) selection(set *v1alpha1.ScenarioSet) func(string) bool {
	if len(set.Spec.Feeds) == 0 {
		return func(name string) bool { return !core.IsComposite(name) }
	}
	feeds := make(map[string]bool, len(set.Spec.Feeds))
	for _, f := range set.Spec.Feeds {
		feeds[f] = true
	}
	return func(name string) bool { return feeds[name] }
}

func constituentNames(blends []string) (map[string]bool, error) {
	out := make(map[string]bool)
	for _, blend := range blends {
		components, err := core.ParseComposite(blend)
		if err != nil {
			return nil, err
		}
		for _, c := range components {
			out[c.Name] = true
		}
	}
	return out, nil
}

func (o *Optimizer) evaluateOptions(name string) []process.EvaluateOption {
	if rate := o.overrides().HeatingRateFor(o.overrideKey(name), 0); rate > 0 {
		return []process.EvaluateOption{process.WithHeatingRate(rate)}
	}
	return nil
}

// prepare hydrates a constituent that is not itself evaluated.
func (o *Optimizer) prepare(f *core.Feedstock) error {
	yields, err := o.yields.ForScenario(f.Name, f.Temp, f.Time)
	if err != nil {
		return err
	}
	if err := yields.Validate(); err != nil {
		return err
	}
	_, err = o.model.Prepare(f, yields)
	return err
}

func (o *Optimizer) evaluate(ctx context.Context, f *core.Feedstock, objectives []Objective, result *Result) error {
	key := f.Key()
	yields, err := o.yields.ForScenario(f.Name, f.Temp, f.Time)
	if err != nil {
		return o.fail(key, err)
	}
	b, err := o.model.Evaluate(ctx, f, yields, o.evaluateOptions(f.Name)...)
	if err != nil {
		return o.fail(key, err)
	}

	record := o.factors.Characterize(key.String(), lcia.FlowsFromBalance(b))
	if err := result.Records.Add(record); err != nil {
		return o.fail(key, err)
	}

	values := make([]float64, len(objectives))
	for i, obj := range objectives {
		if values[i], err = obj.Value(b, record, o.excludeTx); err != nil {
			return o.fail(key, err)
		}
		o.metrics.EmitObjective(key.String(), obj.Name, values[i])
	}

	if err := o.sink.WriteBalance(ctx, b); err != nil {
		o.metrics.EmitFailure(ReasonSink)
		return &ScenarioError{Scenario: key, Err: err}
	}
	if err := o.sink.WriteRecord(ctx, record); err != nil {
		o.metrics.EmitFailure(ReasonSink)
		return &ScenarioError{Scenario: key, Err: err}
	}

	o.metrics.EmitScenario(b)
	result.Balances = append(result.Balances, b)
	result.Rows = append(result.Rows, solver.NewRow(key.String(), values...))
	return nil
}

func (o *Optimizer) fail(key core.Key, err error) error {
	o.metrics.EmitFailure(Reason(err))
	return &ScenarioError{Scenario: key, Err: err}
}

func (o *Optimizer) rank(ctx context.Context, strategy ranker.RankerStrategy, result *Result) error {
	r, err := ranker.NewRanker(strategy, &ranker.RankerConfig{Maximize: MaximizeFlags(result.Objectives)})
	if err != nil {
		return err
	}
	ranking, err := r.Rank(ctx, result.Rows)
	if err != nil {
		return fmt.Errorf("failed to rank %d scenarios: %w", len(result.Rows), err)
	}
	result.Ranking = ranking
	o.metrics.EmitFrontSize(len(ranking.NonDominated))
	if err := o.sink.WriteRanking(ctx, ranking); err != nil {
		o.metrics.EmitFailure(ReasonSink)
		return fmt.Errorf("failed to write ranking: %w", err)
	}
	return nil
}
