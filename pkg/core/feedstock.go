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

package core

import (
	"fmt"
	"math"
)

const (
	// DefaultMoistureTarget is the moisture fraction feedstocks are hydrated toward
	// before reaction, unless their native moisture is already higher.
	DefaultMoistureTarget = 0.85

	// WaterDensity is the density of process water in kg/m^3.
	WaterDensity = 1000.0
)

// Properties holds the measured physical properties of a feedstock.
type Properties struct {
	HHV         float64 `json:"hhv" yaml:"hhv"`
	HHVStd      float64 `json:"hhv_std" yaml:"hhv_std"`
	Moisture    float64 `json:"moisture" yaml:"moisture"`
	MoistureStd float64 `json:"moisture_std" yaml:"moisture_std"`
	Density     float64 `json:"density" yaml:"density"`
}

// Key identifies a feedstock within a registry.
type Key struct {
	Name string
	Temp float64
	Time float64
}

func (k Key) String() string {
	return fmt.Sprintf("%s_%gC_%ghr", k.Name, k.Temp, k.Time)
}

// Feedstock is the identity and physical state of a named feedstock or blend
// under one reaction condition. It is owned by the Registry that holds it;
// resolvers and models mutate it in place and must be sequenced by the caller.
type Feedstock struct {
	// Name encodes an elementary (rawX), standardized (stdX) or composite
	// (e.g. stdBSG50_rawSRU50) feedstock.
	Name string `json:"name"`

	HHV         float64 `json:"hhv"`
	HHVStd      float64 `json:"hhv_std"`
	Moisture    float64 `json:"moisture"`
	MoistureStd float64 `json:"moisture_std"`

	// MoistureTarget is the moisture fraction the feedstock is hydrated toward.
	MoistureTarget float64 `json:"moisture_target"`

	// Density is the bulk density of the as-received (water-exclusive) material in kg/m^3.
	Density float64 `json:"density"`

	// Quantity is the water-exclusive mass entering the reaction, in kg.
	Quantity float64 `json:"quantity"`

	// WaterAdded is the mass of water blended in to reach MoistureTarget, in kg.
	WaterAdded float64 `json:"water_added"`

	// Temp is the reaction temperature in °C.
	Temp float64 `json:"temp"`
	// Time is the residence time in hours.
	Time float64 `json:"time"`

	// PreHydrationMoisture records Moisture as it was before AddWater overwrote it.
	PreHydrationMoisture float64 `json:"pre_hydration_moisture"`
	// Hydrated is set once the water-addition step has run.
	Hydrated bool `json:"hydrated"`
}

// NewFeedstock creates a feedstock for a reaction condition and applies the
// default moisture-target rule to its properties.
func NewFeedstock(name string, temp, time float64, props Properties) *Feedstock {
	f := &Feedstock{
		Name:        name,
		HHV:         props.HHV,
		HHVStd:      props.HHVStd,
		Moisture:    props.Moisture,
		MoistureStd: props.MoistureStd,
		Density:     props.Density,
		Temp:        temp,
		Time:        time,
	}
	ApplyMoistureTarget(f, DefaultMoistureTarget)
	return f
}

// ApplyMoistureTarget sets the moisture target to target, or to the feedstock's
// own moisture when that is already higher.
func ApplyMoistureTarget(f *Feedstock, target float64) {
	f.MoistureTarget = math.Max(target, f.Moisture)
}

// Key returns the registry key of the feedstock.
func (f *Feedstock) Key() Key {
	return Key{Name: f.Name, Temp: f.Temp, Time: f.Time}
}

// Properties returns the measured properties of the feedstock.
func (f *Feedstock) Properties() Properties {
	return Properties{
		HHV:         f.HHV,
		HHVStd:      f.HHVStd,
		Moisture:    f.Moisture,
		MoistureStd: f.MoistureStd,
		Density:     f.Density,
	}
}

// TotalWeight returns the reactor load including added water.
func (f *Feedstock) TotalWeight() float64 {
	return f.Quantity + f.WaterAdded
}

// DryHHV returns the higher heating value corrected for the as-received
// moisture fraction. Once hydrated, the pre-hydration moisture is used.
func (f *Feedstock) DryHHV() float64 {
	moisture := f.Moisture
	if f.Hydrated {
		moisture = f.PreHydrationMoisture
	}
	return f.HHV * (1 - moisture)
}

// TotalEnergyContent returns DryHHV times the water-exclusive quantity.
func (f *Feedstock) TotalEnergyContent() float64 {
	return f.DryHHV() * f.Quantity
}

// QuantityForYield sets Quantity to the wet mass yielding one unit of hydrochar
// at the given hydrochar yield, using the pre-hydration moisture.
func (f *Feedstock) QuantityForYield(hcYield float64) error {
	if f.Hydrated {
		return fmt.Errorf("%s: quantity must be resolved before hydration", f.Key())
	}
	denom := hcYield * (1 - f.Moisture)
	if denom <= 0 || math.IsNaN(denom) {
		return fmt.Errorf("%s: hydrochar yield %g with moisture %g: %w", f.Key(), hcYield, f.Moisture, ErrInvalidParameter)
	}
	f.Quantity = 1 / denom
	return nil
}

// AddWater blends in the water needed to reach MoistureTarget and overwrites
// Moisture with the target. When the target does not exceed the current
// moisture nothing is recomputed and the existing WaterAdded is returned.
// The pre-hydration moisture is kept in PreHydrationMoisture.
func (f *Feedstock) AddWater() float64 {
	if !f.Hydrated {
		f.PreHydrationMoisture = f.Moisture
	}
	f.Hydrated = true
	if f.MoistureTarget <= f.Moisture {
		return f.WaterAdded
	}
	waterNeeded := f.Quantity * (1 - f.MoistureTarget) / (1 - f.Moisture)
	f.WaterAdded = waterNeeded
	f.Moisture = f.MoistureTarget
	return waterNeeded
}

// Charge returns the immutable reactor charge of a hydrated feedstock.
func (f *Feedstock) Charge() (Charge, error) {
	if !f.Hydrated {
		return Charge{}, fmt.Errorf("%s: %w", f.Key(), ErrNotHydrated)
	}
	return Charge{
		key:                  f.Key(),
		hhv:                  f.HHV,
		quantity:             f.Quantity,
		waterAdded:           f.WaterAdded,
		moisture:             f.Moisture,
		preHydrationMoisture: f.PreHydrationMoisture,
		moistureTarget:       f.MoistureTarget,
		density:              f.Density,
	}, nil
}

// Charge is a hydrated feedstock as loaded into the reactor.
type Charge struct {
	key                  Key
	hhv                  float64
	quantity             float64
	waterAdded           float64
	moisture             float64
	preHydrationMoisture float64
	moistureTarget       float64
	density              float64
}

func (c Charge) Key() Key                      { return c.key }
func (c Charge) Temp() float64                 { return c.key.Temp }
func (c Charge) Time() float64                 { return c.key.Time }
func (c Charge) HHV() float64                  { return c.hhv }
func (c Charge) Quantity() float64             { return c.quantity }
func (c Charge) WaterAdded() float64           { return c.waterAdded }
func (c Charge) Moisture() float64             { return c.moisture }
func (c Charge) PreHydrationMoisture() float64 { return c.preHydrationMoisture }
func (c Charge) MoistureTarget() float64       { return c.moistureTarget }
func (c Charge) Density() float64              { return c.density }

// TotalWeight returns feedstock plus added water.
func (c Charge) TotalWeight() float64 {
	return c.quantity + c.waterAdded
}

// WaterFraction returns the mass fraction of added water in the charge.
func (c Charge) WaterFraction() float64 {
	total := c.TotalWeight()
	if total == 0 {
		return 0
	}
	return c.waterAdded / total
}

// FeedstockFraction returns the mass fraction of feedstock in the charge.
func (c Charge) FeedstockFraction() float64 {
	total := c.TotalWeight()
	if total == 0 {
		return 0
	}
	return c.quantity / total
}

// MixtureDensity returns the effective density of the wet mixture.
func (c Charge) MixtureDensity() float64 {
	if c.TotalWeight() == 0 {
		return c.density
	}
	return c.FeedstockFraction()*c.density + c.WaterFraction()*WaterDensity
}
