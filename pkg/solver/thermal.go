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

package solver

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/diff/fd"

	"github.com/hydrochar-lab/htc-model/pkg/config"
	"github.com/hydrochar-lab/htc-model/pkg/core"
)

const (
	// DefaultTolerance is the relative step size at which the Newton iteration stops.
	DefaultTolerance = 1e-9
	// DefaultMaxIterations bounds the Newton iteration.
	DefaultMaxIterations = 100

	// derivativeStep is the central-difference step in K.
	derivativeStep = 1e-3
)

// WallSolution is the solved outer-wall state for one reaction temperature.
type WallSolution struct {
	// ReactionTempC is the reaction temperature T_R in °C.
	ReactionTempC float64
	// WallTempK is the outer-wall temperature T_O in K.
	WallTempK float64
	// HeatFlux is the heat loss through the wall in W·m^-2.
	HeatFlux float64
	// Residual is the heat balance evaluated at WallTempK.
	Residual float64
	// Iterations is the number of Newton steps taken.
	Iterations int
}

// ThermalBalance solves C·T_R − T_O·(C + h) + h·T_A + ε·σ·(T_O⁴ − T_A⁴) = 0 for T_O.
type ThermalBalance struct {
	reactor       config.ReactorSpec
	heat          config.HeatTransferSpec
	conductance   float64
	tolerance     float64
	maxIterations int
}

// ThermalOption configures a ThermalBalance.
type ThermalOption func(*ThermalBalance)

// WithTolerance sets the relative Newton step tolerance.
func WithTolerance(tol float64) ThermalOption {
	return func(t *ThermalBalance) {
		t.tolerance = tol
	}
}

// WithMaxIterations sets the Newton iteration limit.
func WithMaxIterations(n int) ThermalOption {
	return func(t *ThermalBalance) {
		t.maxIterations = n
	}
}

// NewThermalBalance creates a solver for the given reactor and heat loss parameters.
func NewThermalBalance(reactor config.ReactorSpec, heat config.HeatTransferSpec, opts ...ThermalOption) (*ThermalBalance, error) {
	if err := reactor.Validate(); err != nil {
		return nil, fmt.Errorf("invalid reactor spec: %w", err)
	}
	if err := heat.Validate(); err != nil {
		return nil, fmt.Errorf("invalid heat transfer spec: %w", err)
	}
	t := &ThermalBalance{
		reactor:       reactor,
		heat:          heat,
		conductance:   Conductance(reactor),
		tolerance:     DefaultTolerance,
		maxIterations: DefaultMaxIterations,
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.tolerance <= 0 || t.maxIterations <= 0 {
		return nil, fmt.Errorf("tolerance and max iterations must be > 0, got %g and %d", t.tolerance, t.maxIterations)
	}
	return t, nil
}

// Conductance returns the geometric/conductive constant
// C = 1 / (r_i · ln(r_o/r_s)/k_ins · ln(r_s/r_i)/k_steel).
func Conductance(r config.ReactorSpec) float64 {
	insulation := math.Log(r.OuterRadius/r.SteelRadius) / r.InsulationConductivity
	steel := math.Log(r.SteelRadius/r.InnerRadius) / r.SteelConductivity
	return 1 / (r.InnerRadius * insulation * steel)
}

// Conductance returns C for this solver's reactor.
func (t *ThermalBalance) Conductance() float64 {
	return t.conductance
}

// Residual evaluates the heat balance for a reaction temperature in °C and a
// wall temperature in K.
func (t *ThermalBalance) Residual(reactionTempC, wallTempK float64) float64 {
	tR := reactionTempC + config.KelvinOffset
	tA := t.heat.AmbientTempK()
	h := t.heat.ConvectionCoefficient
	c := t.conductance
	return c*tR - wallTempK*(c+h) + h*tA + t.radiation(wallTempK)
}

func (t *ThermalBalance) radiation(wallTempK float64) float64 {
	tA := t.heat.AmbientTempK()
	return t.heat.Emissivity * config.StefanBoltzmann * (math.Pow(wallTempK, 4) - math.Pow(tA, 4))
}

// Solve finds the outer-wall temperature by Newton iteration started at the
// midpoint of T_R and T_A. Failure to converge wraps core.ErrConvergenceFailure.
func (t *ThermalBalance) Solve(reactionTempC float64) (WallSolution, error) {
	f := func(x float64) float64 {
		return t.Residual(reactionTempC, x)
	}
	settings := &fd.Settings{Formula: fd.Central, Step: derivativeStep}

	x := (reactionTempC + config.KelvinOffset + t.heat.AmbientTempK()) / 2
	for i := 1; i <= t.maxIterations; i++ {
		fx := f(x)
		slope := fd.Derivative(f, x, settings)
		if slope == 0 || math.IsNaN(slope) || math.IsInf(slope, 0) {
			return WallSolution{}, fmt.Errorf("reaction temperature %g°C: zero or non-finite slope at T_O=%g K: %w",
				reactionTempC, x, core.ErrConvergenceFailure)
		}
		next := x - fx/slope
		if math.IsNaN(next) || math.IsInf(next, 0) || next <= 0 {
			return WallSolution{}, fmt.Errorf("reaction temperature %g°C: iterate diverged to %g: %w",
				reactionTempC, next, core.ErrConvergenceFailure)
		}
		if math.Abs(next-x) <= t.tolerance*math.Max(1, math.Abs(x)) {
			return WallSolution{
				ReactionTempC: reactionTempC,
				WallTempK:     next,
				HeatFlux:      t.HeatFluxAt(next),
				Residual:      f(next),
				Iterations:    i,
			}, nil
		}
		x = next
	}
	return WallSolution{}, fmt.Errorf("reaction temperature %g°C: no root after %d iterations: %w",
		reactionTempC, t.maxIterations, core.ErrConvergenceFailure)
}

// WallTemperature returns the solved outer-wall temperature in K.
func (t *ThermalBalance) WallTemperature(reactionTempC float64) (float64, error) {
	sol, err := t.Solve(reactionTempC)
	if err != nil {
		return 0, err
	}
	return sol.WallTempK, nil
}

// HeatFluxAt returns h·(T_O − T_A) + ε·σ·(T_O⁴ − T_A⁴) in W·m^-2.
func (t *ThermalBalance) HeatFluxAt(wallTempK float64) float64 {
	return t.heat.ConvectionCoefficient*(wallTempK-t.heat.AmbientTempK()) + t.radiation(wallTempK)
}

// HeatFlux solves the wall temperature and returns the heat flux in W·m^-2.
func (t *ThermalBalance) HeatFlux(reactionTempC float64) (float64, error) {
	sol, err := t.Solve(reactionTempC)
	if err != nil {
		return 0, err
	}
	return sol.HeatFlux, nil
}

// SurfaceArea returns the area of the closed cylinder of radius r_o and the
// vessel height, in m^2.
func (t *ThermalBalance) SurfaceArea() float64 {
	r := t.reactor.OuterRadius
	return 2*math.Pi*r*t.reactor.Height + 2*math.Pi*r*r
}

// ReactionHeatFromFlux converts a heat flux held for residenceHours into MJ.
func (t *ThermalBalance) ReactionHeatFromFlux(heatFlux, residenceHours float64) float64 {
	// W·h -> kWh -> MJ
	return t.SurfaceArea() * heatFlux * residenceHours * 0.001 * 3.6
}

// ReactionHeat returns the heat in MJ lost through the wall while holding
// the reaction temperature for residenceHours.
func (t *ThermalBalance) ReactionHeat(reactionTempC, residenceHours float64) (float64, error) {
	flux, err := t.HeatFlux(reactionTempC)
	if err != nil {
		return 0, err
	}
	return t.ReactionHeatFromFlux(flux, residenceHours), nil
}
