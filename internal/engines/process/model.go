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

// Package process computes the energy, water and emission balance of one HTC
// reaction for a resolved feedstock and its empirical yields.
package process

import (
	"context"
	"fmt"
	"math"

	"github.com/hydrochar-lab/htc-model/internal/logging"
	"github.com/hydrochar-lab/htc-model/pkg/config"
	"github.com/hydrochar-lab/htc-model/pkg/core"
	"github.com/hydrochar-lab/htc-model/pkg/solver"
)

// WallSolver provides the reactor wall solution for a reaction temperature.
// It is satisfied by *solver.ThermalBalance and the solution cache in engines/common.
type WallSolver interface {
	Solve(reactionTempC float64) (solver.WallSolution, error)
	ReactionHeatFromFlux(heatFlux, residenceHours float64) float64
}

// Balance is the full process balance of one scenario. Energies are in MJ
// or kWh as suffixed, masses in kg per unit of hydrochar.
type Balance struct {
	Scenario core.Key `json:"scenario"`

	Quantity    float64 `json:"quantity"`
	WaterAdded  float64 `json:"water_added"`
	TotalWeight float64 `json:"total_weight"`

	WallTempK      float64 `json:"wall_temp_k"`
	WallIterations int     `json:"wall_iterations"`
	HeatFlux       float64 `json:"heat_flux"`
	ReactionHeatMJ float64 `json:"reaction_heat_mj"`
	RampHeatMJ     float64 `json:"ramp_heat_mj"`
	RampTimeHr     float64 `json:"ramp_time_hr"`
	TotalHeatKWh   float64 `json:"total_heat_kwh"`

	MixtureDensity  float64 `json:"mixture_density"`
	Reynolds        float64 `json:"reynolds"`
	PowerNumber     float64 `json:"power_number"`
	ElectricityRate float64 `json:"electricity_rate"`
	ElectricityKWh  float64 `json:"electricity_kwh"`

	HydrocharMass     float64 `json:"hydrochar_mass"`
	HydrocharHHV      float64 `json:"hydrochar_hhv"`
	CO2               float64 `json:"co2"`
	ProcessWater      float64 `json:"process_water"`
	PostProcessingKWh float64 `json:"post_processing_kwh"`

	FeedEnergyMJ float64 `json:"feed_energy_mj"`
}

// Model is the process energy model.
type Model struct {
	wall WallSolver
	spec config.ModelSpec
}

// NewModel creates a model over a wall solver and the physical parameter sets.
func NewModel(wall WallSolver, spec config.ModelSpec) (*Model, error) {
	if wall == nil {
		return nil, fmt.Errorf("wall solver cannot be nil")
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("invalid model spec: %w", err)
	}
	return &Model{wall: wall, spec: spec}, nil
}

// EvaluateOption adjusts a single evaluation.
type EvaluateOption func(*evaluateOptions)

type evaluateOptions struct {
	heatingRateW float64
}

// WithHeatingRate overrides the heater power in W for one evaluation.
func WithHeatingRate(watts float64) EvaluateOption {
	return func(o *evaluateOptions) {
		if watts > 0 {
			o.heatingRateW = watts
		}
	}
}

// Prepare runs the water-addition step on a feedstock that has not been
// hydrated yet and returns the resulting charge. Quantity is re-derived from
// the hydrochar yield only while it is unset or the moisture is still below
// target; a resolved composite already at target keeps its weighted quantity.
func (m *Model) Prepare(f *core.Feedstock, yields core.Yields) (core.Charge, error) {
	if !f.Hydrated {
		if f.Quantity == 0 || f.Moisture < f.MoistureTarget {
			if err := f.QuantityForYield(yields.HCYield); err != nil {
				return core.Charge{}, err
			}
		}
		f.AddWater()
	}
	return f.Charge()
}

// Evaluate computes the full balance of f under its own reaction condition.
// f is hydrated in place when needed; a failed wall solve is returned as is.
func (m *Model) Evaluate(ctx context.Context, f *core.Feedstock, yields core.Yields, opts ...EvaluateOption) (Balance, error) {
	logger := logging.FromContext(ctx)

	o := evaluateOptions{heatingRateW: m.spec.Heating.HeatingRateW}
	for _, opt := range opts {
		opt(&o)
	}

	if err := yields.Validate(); err != nil {
		return Balance{}, fmt.Errorf("%s: %w", f.Key(), err)
	}
	charge, err := m.Prepare(f, yields)
	if err != nil {
		return Balance{}, err
	}

	wall, err := m.wall.Solve(charge.Temp())
	if err != nil {
		return Balance{}, fmt.Errorf("%s: %w", f.Key(), err)
	}
	reactionHeat := m.wall.ReactionHeatFromFlux(wall.HeatFlux, charge.Time())
	rampHeat := m.RampHeat(charge)
	rampTime := RampTime(rampHeat, o.heatingRateW)

	density := charge.MixtureDensity()
	re := m.Reynolds(density)
	np := m.PowerNumber(re)
	rate := m.ElectricityRate(charge)

	hydrochar := HydrocharMass(charge, yields.HCYield)
	co2 := CO2Emissions(charge, yields.GasYield)

	b := Balance{
		Scenario:          charge.Key(),
		Quantity:          charge.Quantity(),
		WaterAdded:        charge.WaterAdded(),
		TotalWeight:       charge.TotalWeight(),
		WallTempK:         wall.WallTempK,
		WallIterations:    wall.Iterations,
		HeatFlux:          wall.HeatFlux,
		ReactionHeatMJ:    reactionHeat,
		RampHeatMJ:        rampHeat,
		RampTimeHr:        rampTime,
		TotalHeatKWh:      TotalHeat(reactionHeat, rampHeat),
		MixtureDensity:    density,
		Reynolds:          re,
		PowerNumber:       np,
		ElectricityRate:   rate,
		ElectricityKWh:    ElectricityNeeded(rate, rampTime, charge.Time()),
		HydrocharMass:     hydrochar,
		HydrocharHHV:      yields.HHVHC,
		CO2:               co2,
		ProcessWater:      ProcessWater(charge, hydrochar, co2),
		PostProcessingKWh: m.PostProcessingEnergy(hydrochar),
		FeedEnergyMJ:      f.TotalEnergyContent(),
	}

	logger.V(logging.DEBUG).Info("Evaluated scenario",
		"scenario", b.Scenario.String(),
		"wallTempK", b.WallTempK,
		"totalHeatKWh", b.TotalHeatKWh,
		"electricityKWh", b.ElectricityKWh,
		"co2", b.CO2)

	return b, nil
}

// BiomassSpecificHeat returns the specific heat of the wet biomass in
// MJ·kg^-1·°C^-1 at the reaction temperature.
func (m *Model) BiomassSpecificHeat(reactionTempC, moistureTarget float64) float64 {
	cWater := m.spec.Heating.WaterSpecificHeat
	dry := 1e-6 * (5.340*(reactionTempC+config.KelvinOffset) - 299)
	return dry*(1-moistureTarget) + cWater*moistureTarget
}

// RampHeat returns the heat in MJ needed to bring the charge from the start
// temperature to the reaction temperature. Each contribution is weighted by
// its mass fraction of the charge.
func (m *Model) RampHeat(c core.Charge) float64 {
	deltaT := c.Temp() - m.spec.Heating.StartTempC
	waterHeat := c.WaterAdded() * m.spec.Heating.WaterSpecificHeat * deltaT * c.WaterFraction()
	feedHeat := c.Quantity() * m.BiomassSpecificHeat(c.Temp(), c.MoistureTarget()) * deltaT * c.FeedstockFraction()
	return waterHeat + feedHeat
}

// RampTime returns the heating time in hours for rampHeat MJ at heatingRateW.
func RampTime(rampHeatMJ, heatingRateW float64) float64 {
	return rampHeatMJ / 3.6 / (heatingRateW / 1000)
}

// TotalHeat returns the heat demand in kWh.
func TotalHeat(reactionHeatMJ, rampHeatMJ float64) float64 {
	return (reactionHeatMJ + rampHeatMJ) / 3.6
}

// Reynolds returns the impeller Reynolds number N·D²·ρ/μ.
func (m *Model) Reynolds(density float64) float64 {
	mix := m.spec.Mixer
	return mix.ImpellerSpeed * mix.ImpellerDiameter * mix.ImpellerDiameter * density / mix.Viscosity
}

// PowerNumber returns N_p = a·Re^b.
func (m *Model) PowerNumber(reynolds float64) float64 {
	return m.spec.Mixer.PowerNumberCoefficient * math.Pow(reynolds, m.spec.Mixer.PowerNumberExponent)
}

// ElectricityRate returns the mixing power N_p·ρ·N³·D⁵ for the wet mixture.
func (m *Model) ElectricityRate(c core.Charge) float64 {
	mix := m.spec.Mixer
	rho := c.MixtureDensity()
	np := m.PowerNumber(m.Reynolds(rho))
	return np * rho * math.Pow(mix.ImpellerSpeed, 3) * math.Pow(mix.ImpellerDiameter, 5)
}

// ElectricityNeeded returns the mixing energy over ramp and residence time.
func ElectricityNeeded(rate, rampTimeHr, residenceHr float64) float64 {
	return rate * (rampTimeHr + residenceHr)
}

// CO2Emissions returns total_weight·(1 − moisture)·gas_yield, with the
// post-hydration moisture.
func CO2Emissions(c core.Charge, gasYield float64) float64 {
	return c.TotalWeight() * (1 - c.Moisture()) * gasYield
}

// HydrocharMass returns the dry feed mass times the hydrochar yield.
func HydrocharMass(c core.Charge, hcYield float64) float64 {
	return c.Quantity() * (1 - c.PreHydrationMoisture()) * hcYield
}

// ProcessWater returns the charge mass not leaving as hydrochar or CO2.
func ProcessWater(c core.Charge, hydrocharMass, co2 float64) float64 {
	return c.TotalWeight() - (hydrocharMass + co2)
}

// PostProcessingEnergy returns filtration plus drying energy in kWh.
func (m *Model) PostProcessingEnergy(hydrocharMass float64) float64 {
	pp := m.spec.PostProcessing
	filtration := pp.FiltrationPowerW * pp.FiltrationHours
	drying := pp.DryingPowerW * pp.DryingHours * hydrocharMass
	return (filtration + drying) / 1000
}
