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
	"errors"
	"fmt"
)

const (
	// StefanBoltzmann is the Stefan-Boltzmann constant in W·m^-2·K^-4.
	StefanBoltzmann = 5.67e-8

	// KelvinOffset converts °C to K.
	KelvinOffset = 273.15
)

// ReactorSpec describes the vessel geometry and insulation, in meters and W·m^-1·K^-1.
type ReactorSpec struct {
	// InnerRadius is the inner tank radius r_i.
	InnerRadius float64 `yaml:"innerRadius" mapstructure:"innerRadius"`
	// SteelRadius is the non-insulated tank radius r_s.
	SteelRadius float64 `yaml:"steelRadius" mapstructure:"steelRadius"`
	// OuterRadius is the outer (insulated) radius r_o.
	OuterRadius float64 `yaml:"outerRadius" mapstructure:"outerRadius"`
	// Height is the vessel height.
	Height float64 `yaml:"height" mapstructure:"height"`
	// InsulationConductivity is k_ins.
	InsulationConductivity float64 `yaml:"insulationConductivity" mapstructure:"insulationConductivity"`
	// SteelConductivity is k_steel.
	SteelConductivity float64 `yaml:"steelConductivity" mapstructure:"steelConductivity"`
}

// HeatTransferSpec holds the outer-wall heat loss parameters.
type HeatTransferSpec struct {
	// ConvectionCoefficient is h in W·m^-2·K^-1.
	ConvectionCoefficient float64 `yaml:"convectionCoefficient" mapstructure:"convectionCoefficient"`
	// Emissivity of the insulation surface.
	Emissivity float64 `yaml:"emissivity" mapstructure:"emissivity"`
	// AmbientTempC is the room temperature in °C.
	AmbientTempC float64 `yaml:"ambientTempC" mapstructure:"ambientTempC"`
}

// MixerSpec holds the stirring parameters of the mixing-power correlation.
type MixerSpec struct {
	// ImpellerSpeed in revolutions per second.
	ImpellerSpeed float64 `yaml:"impellerSpeed" mapstructure:"impellerSpeed"`
	// ImpellerDiameter in meters.
	ImpellerDiameter float64 `yaml:"impellerDiameter" mapstructure:"impellerDiameter"`
	// Viscosity of the slurry in kg·m^-1·s^-1, taken as water.
	Viscosity float64 `yaml:"viscosity" mapstructure:"viscosity"`
	// PowerNumberCoefficient and PowerNumberExponent define N_p = a·Re^b.
	PowerNumberCoefficient float64 `yaml:"powerNumberCoefficient" mapstructure:"powerNumberCoefficient"`
	PowerNumberExponent    float64 `yaml:"powerNumberExponent" mapstructure:"powerNumberExponent"`
}

// HeatingSpec holds the ramp heating parameters.
type HeatingSpec struct {
	// WaterSpecificHeat in MJ·kg^-1·°C^-1.
	WaterSpecificHeat float64 `yaml:"waterSpecificHeat" mapstructure:"waterSpecificHeat"`
	// HeatingRateW is the heater power in W.
	HeatingRateW float64 `yaml:"heatingRateW" mapstructure:"heatingRateW"`
	// StartTempC is the temperature the charge is heated from, in °C.
	StartTempC float64 `yaml:"startTempC" mapstructure:"startTempC"`
}

// PostProcessingSpec holds the hydrochar separation and drying loads.
type PostProcessingSpec struct {
	FiltrationPowerW float64 `yaml:"filtrationPowerW" mapstructure:"filtrationPowerW"`
	FiltrationHours  float64 `yaml:"filtrationHours" mapstructure:"filtrationHours"`
	DryingPowerW     float64 `yaml:"dryingPowerW" mapstructure:"dryingPowerW"`
	DryingHours      float64 `yaml:"dryingHours" mapstructure:"dryingHours"`
}

// ModelSpec groups every physical parameter set.
type ModelSpec struct {
	Reactor        ReactorSpec        `yaml:"reactor" mapstructure:"reactor"`
	HeatTransfer   HeatTransferSpec   `yaml:"heatTransfer" mapstructure:"heatTransfer"`
	Mixer          MixerSpec          `yaml:"mixer" mapstructure:"mixer"`
	Heating        HeatingSpec        `yaml:"heating" mapstructure:"heating"`
	PostProcessing PostProcessingSpec `yaml:"postProcessing" mapstructure:"postProcessing"`
}

// DefaultReactorSpec returns the Parr 4523 reference geometry.
func DefaultReactorSpec() ReactorSpec {
	return ReactorSpec{
		InnerRadius:            4.76e-2,
		SteelRadius:            5.08e-2,
		OuterRadius:            7.62e-2,
		Height:                 0.6096,
		InsulationConductivity: 0.058,
		SteelConductivity:      16.25,
	}
}

// DefaultHeatTransferSpec returns the reference heat loss parameters.
func DefaultHeatTransferSpec() HeatTransferSpec {
	return HeatTransferSpec{
		ConvectionCoefficient: 20,
		Emissivity:            0.050,
		AmbientTempC:          20,
	}
}

// DefaultMixerSpec returns the reference stirring parameters.
func DefaultMixerSpec() MixerSpec {
	return MixerSpec{
		ImpellerSpeed:          6.67,
		ImpellerDiameter:       0.057912,
		Viscosity:              1.002e-3,
		PowerNumberCoefficient: 94.043,
		PowerNumberExponent:    -0.599,
	}
}

// DefaultHeatingSpec returns the reference heating parameters.
func DefaultHeatingSpec() HeatingSpec {
	return HeatingSpec{
		WaterSpecificHeat: 4.184e-3,
		HeatingRateW:      1500,
		StartTempC:        20,
	}
}

// DefaultPostProcessingSpec returns the reference filtration and drying loads.
func DefaultPostProcessingSpec() PostProcessingSpec {
	return PostProcessingSpec{
		FiltrationPowerW: 60,
		FiltrationHours:  0.25,
		DryingPowerW:     1200,
		DryingHours:      24,
	}
}

// DefaultModelSpec returns all reference parameter sets.
func DefaultModelSpec() ModelSpec {
	return ModelSpec{
		Reactor:        DefaultReactorSpec(),
		HeatTransfer:   DefaultHeatTransferSpec(),
		Mixer:          DefaultMixerSpec(),
		Heating:        DefaultHeatingSpec(),
		PostProcessing: DefaultPostProcessingSpec(),
	}
}

// AmbientTempK returns the ambient temperature in K.
func (s HeatTransferSpec) AmbientTempK() float64 {
	return s.AmbientTempC + KelvinOffset
}

// Validate checks for non-physical geometry.
func (s ReactorSpec) Validate() error {
	if s.InnerRadius <= 0 || s.SteelRadius <= 0 || s.OuterRadius <= 0 || s.Height <= 0 {
		return fmt.Errorf("reactor dimensions must be > 0, got r_i=%g r_s=%g r_o=%g height=%g",
			s.InnerRadius, s.SteelRadius, s.OuterRadius, s.Height)
	}
	if !(s.InnerRadius < s.SteelRadius && s.SteelRadius < s.OuterRadius) {
		return fmt.Errorf("reactor radii must satisfy r_i < r_s < r_o, got %g, %g, %g",
			s.InnerRadius, s.SteelRadius, s.OuterRadius)
	}
	if s.InsulationConductivity <= 0 || s.SteelConductivity <= 0 {
		return fmt.Errorf("conductivities must be > 0, got k_ins=%g k_steel=%g",
			s.InsulationConductivity, s.SteelConductivity)
	}
	return nil
}

// Validate checks heat transfer parameters.
func (s HeatTransferSpec) Validate() error {
	if s.ConvectionCoefficient <= 0 {
		return fmt.Errorf("convectionCoefficient must be > 0, got %g", s.ConvectionCoefficient)
	}
	if s.Emissivity < 0 || s.Emissivity > 1 {
		return fmt.Errorf("emissivity must be between 0 and 1, got %.3f", s.Emissivity)
	}
	if s.AmbientTempK() <= 0 {
		return fmt.Errorf("ambientTempC must be above absolute zero, got %g", s.AmbientTempC)
	}
	return nil
}

// Validate checks mixer parameters.
func (s MixerSpec) Validate() error {
	if s.ImpellerSpeed <= 0 || s.ImpellerDiameter <= 0 || s.Viscosity <= 0 {
		return fmt.Errorf("mixer speed, diameter and viscosity must be > 0, got %g, %g, %g",
			s.ImpellerSpeed, s.ImpellerDiameter, s.Viscosity)
	}
	if s.PowerNumberCoefficient <= 0 {
		return fmt.Errorf("powerNumberCoefficient must be > 0, got %g", s.PowerNumberCoefficient)
	}
	return nil
}

// Validate checks heating parameters.
func (s HeatingSpec) Validate() error {
	if s.WaterSpecificHeat <= 0 {
		return fmt.Errorf("waterSpecificHeat must be > 0, got %g", s.WaterSpecificHeat)
	}
	if s.HeatingRateW <= 0 {
		return fmt.Errorf("heatingRateW must be > 0, got %g", s.HeatingRateW)
	}
	return nil
}

// Validate checks post-processing loads.
func (s PostProcessingSpec) Validate() error {
	if s.FiltrationPowerW < 0 || s.FiltrationHours < 0 || s.DryingPowerW < 0 || s.DryingHours < 0 {
		return fmt.Errorf("post-processing loads must be >= 0, got %+v", s)
	}
	return nil
}

// Validate checks every parameter set.
func (s ModelSpec) Validate() error {
	return errors.Join(
		s.Reactor.Validate(),
		s.HeatTransfer.Validate(),
		s.Mixer.Validate(),
		s.Heating.Validate(),
		s.PostProcessing.Validate(),
	)
}
