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

// Package actuator emits the results of a model run: Prometheus metrics
// describing the run and per-scenario results written to a sink.
//
// # Metric Emission
//
// The MetricsEmitter owns a private Prometheus registry. A CLI run has no
// scrape endpoint, so the registry is dumped in the text exposition format
// when the run ends:
//
//	htc_scenarios_evaluated_total{temp="220",time="1"} 4
//	htc_scenarios_failed_total{reason="not_found"} 1
//	htc_wall_solver_iterations_bucket{le="4"} 6
//	htc_scenario_objective{objective="total_heat_kwh",scenario="rawSRU_220C_1hr"} 2.13
//	htc_front_size 3
//
// # Sinks
//
// A Sink receives every scenario balance, LCIA record and the final ranking:
//   - MemorySink keeps them in memory (tests, the rank command)
//   - SQLiteSink writes them to tables runs, scenario_results and
//     lcia_scores, tagged with a random run id
//
// # Usage Example
//
//	emitter := actuator.NewMetricsEmitter()
//	sink, err := actuator.NewSQLiteSink(ctx, "results.db", objectives)
//	if err != nil {
//		return err
//	}
//	defer sink.Close()
//
//	emitter.EmitScenario(balance)
//	err = sink.WriteBalance(ctx, balance)
package actuator
