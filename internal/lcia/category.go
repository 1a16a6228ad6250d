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

// Package lcia stores life cycle impact assessment scores of hydrochar
// production per scenario, broken down by impact category and process step.
package lcia

import (
	"fmt"

	"github.com/hydrochar-lab/htc-model/pkg/core"
)

// ImpactCategory is a midpoint impact category.
type ImpactCategory int

const (
	WaterUse ImpactCategory = iota
	EnergyResources
	Acidification
	ClimateChange
	EcotoxicityFreshwater
	Eutrophication
	HumanToxicityCarcinogenic
	HumanToxicityNonCarcinogenic
	OzoneDepletion
	ParticulateMatterFormation
	PhotochemicalOxidantFormation

	// NumImpactCategories is the number of impact categories.
	NumImpactCategories = iota
)

var impactNames = [NumImpactCategories]string{
	"water_use",
	"energy_resources",
	"acidification",
	"climate_change",
	"ecotoxicity_freshwater",
	"eutrophication",
	"human_toxicity_carcinogenic",
	"human_toxicity_noncarcinogenic",
	"ozone_depletion",
	"particulate_matter_formation",
	"photochemical_oxidant_formation",
}

func (c ImpactCategory) String() string {
	if c < 0 || int(c) >= NumImpactCategories {
		return fmt.Sprintf("ImpactCategory(%d)", int(c))
	}
	return impactNames[c]
}

// ParseImpactCategory maps a category name such as "climate_change" to its value.
func ParseImpactCategory(name string) (ImpactCategory, error) {
	for i, n := range impactNames {
		if n == name {
			return ImpactCategory(i), nil
		}
	}
	return 0, fmt.Errorf("impact category %q: %w", name, core.ErrNotFound)
}

// ProcessCategory is a process step contributing to an impact.
type ProcessCategory int

const (
	ProcessWater ProcessCategory = iota
	ProcessElectricityHTC
	ProcessHeatHTC
	ProcessCO2HTC
	ProcessWastewater
	ProcessElectricityPostProcessing
	ProcessTransportation

	// NumProcessCategories is the number of process categories.
	NumProcessCategories = iota
)

var processNames = [NumProcessCategories]string{
	"Water",
	"Electricity - HTC",
	"Heat-HTC",
	"CO2 - HTC",
	"Wastewater",
	"Electricity - Post-Processing",
	"Transportation",
}

func (c ProcessCategory) String() string {
	if c < 0 || int(c) >= NumProcessCategories {
		return fmt.Sprintf("ProcessCategory(%d)", int(c))
	}
	return processNames[c]
}

// ParseProcessCategory maps a category name such as "Heat-HTC" to its value.
func ParseProcessCategory(name string) (ProcessCategory, error) {
	for i, n := range processNames {
		if n == name {
			return ProcessCategory(i), nil
		}
	}
	return 0, fmt.Errorf("process category %q: %w", name, core.ErrNotFound)
}

// ImpactCategories returns every impact category in declaration order.
func ImpactCategories() []ImpactCategory {
	out := make([]ImpactCategory, NumImpactCategories)
	for i := range out {
		out[i] = ImpactCategory(i)
	}
	return out
}

// ProcessCategories returns every process category in declaration order.
func ProcessCategories() []ProcessCategory {
	out := make([]ProcessCategory, NumProcessCategories)
	for i := range out {
		out[i] = ProcessCategory(i)
	}
	return out
}
