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

// Package optimizer implements the scenario pipeline of an HTC model run.
//
// The optimizer seeds a feedstock registry from a property source, derives the
// standardized variants, resolves the blends of a scenario set, evaluates the
// process balance of every scenario and ranks the scenarios by their
// objectives.
//
// Architecture:
//
// The optimizer follows a pipeline pattern:
//
//	Property/Yield Sources → Registry Seeding → Process Model → LCIA → Ranker → Actuator
//	     (Collector)           (feedname)         (process)     (lcia) (ranker) (Sink, Metrics)
//
// Example usage:
//
//	opt, err := optimizer.NewOptimizer(&optimizer.OptimizerConfig{
//	    Properties: props,
//	    Yields:     table,
//	    Model:      model,
//	    Settings:   settings,
//	    Conditions: cfg.Conditions,
//	    Sink:       sink,
//	    Metrics:    metrics,
//	})
//	if err != nil {
//	    return err
//	}
//
//	result, err := opt.Optimize(ctx, scenarioSet)
//	if err != nil {
//	    var scenarioErr *optimizer.ScenarioError
//	    if errors.As(err, &scenarioErr) {
//	        log.Error(err, "scenario failed", "scenario", scenarioErr.Scenario)
//	    }
//	    return err
//	}
//
// Optimization Flow:
//
//  1. Seed Registry
//     - Register raw<Feed> for every property row and reaction condition
//     - Apply per-feedstock density overrides and exclusions
//
//  2. Discover Standard Variants
//     - Duplicate raw feeds below their moisture target as std<Feed>
//
//  3. Evaluate Elementary Feeds
//     - Look up gas yield, hydrochar yield and hydrochar HHV
//     - Hydrate, solve the wall balance and compute the process balance
//
//  4. Resolve and Evaluate Blends
//     - Aggregate constituent properties registered for the same condition
//
//  5. Characterize and Rank
//     - Derive LCIA scores from process flows
//     - Build objective rows and split them into dominated and non-dominated
//
//  6. Actuate
//     - Emit metrics and write balances, scores and the ranking to the sink
//
// Error Handling:
//
// The run is single pass and has no partial results. The first failing
// scenario stops the run with a *ScenarioError naming it; the failure is
// counted in the metrics before returning.
package optimizer
