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

// Package solver implements the numeric kernels of the HTC scenario model.
//
// Key Components:
//
//   - ThermalBalance: root solve of the steady-state heat balance for the
//     reactor outer-wall temperature, and the heat flux and reaction heat
//     derived from it
//   - Dominates / Front / Partition: Pareto dominance over scenario objective
//     vectors, minimization convention for every objective
//
// Example usage:
//
//	tb, err := solver.NewThermalBalance(config.DefaultReactorSpec(), config.DefaultHeatTransferSpec())
//	if err != nil {
//	    return err
//	}
//	sol, err := tb.Solve(220)
//	if err != nil {
//	    // errors.Is(err, core.ErrConvergenceFailure)
//	    return err
//	}
//	heat, _ := tb.ReactionHeat(220, 1)
//
//	front, err := solver.Front(rows)
//
// The solver is designed to be:
//   - Deterministic: same inputs produce same outputs
//   - Strict: a failed root solve is an error, there is no fallback estimate
package solver
