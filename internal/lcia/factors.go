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

package lcia

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hydrochar-lab/htc-model/internal/engines/process"
)

// Flows is the amount of each process flow of one scenario, in the unit its
// characterization factor is expressed per.
type Flows [NumProcessCategories]float64

// FlowsFromBalance maps a process balance onto process flows: kg of water
// added, kWh of HTC electricity, kWh of heat, kg of CO2, kg of process water,
// kWh of post-processing electricity and kg of feed transported.
func FlowsFromBalance(b process.Balance) Flows {
	var f Flows
	f[ProcessWater] = b.WaterAdded
	f[ProcessElectricityHTC] = b.ElectricityKWh
	f[ProcessHeatHTC] = b.TotalHeatKWh
	f[ProcessCO2HTC] = b.CO2
	f[ProcessWastewater] = b.ProcessWater
	f[ProcessElectricityPostProcessing] = b.PostProcessingKWh
	f[ProcessTransportation] = b.Quantity
	return f
}

// Factor is the impact per unit of process flow.
type Factor struct {
	Value float64 `yaml:"factor"`
	Unit  string  `yaml:"unit"`
}

// Factors holds characterization factors per impact and process category.
// Missing cells are zero.
type Factors struct {
	cells [NumImpactCategories][NumProcessCategories]Factor
}

// NewFactors creates an all-zero factor set.
func NewFactors() *Factors {
	return &Factors{}
}

// Set sets one factor.
func (f *Factors) Set(impact ImpactCategory, step ProcessCategory, value float64, unit string) error {
	if err := validCell(impact, step); err != nil {
		return err
	}
	f.cells[impact][step] = Factor{Value: value, Unit: unit}
	return nil
}

// LoadFactorsFile reads factors from a YAML file; see LoadFactors.
func LoadFactorsFile(path string) (*Factors, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open lcia factors: %w", err)
	}
	defer func() { _ = file.Close() }()
	return LoadFactors(file)
}

// LoadFactors reads factors keyed by impact and then process category name:
//
//	climate_change:
//	  "CO2 - HTC": {factor: 1.0, unit: kg CO2-eq}
//	  "Electricity - HTC": {factor: 0.43, unit: kg CO2-eq}
//
// Unknown category names fail with core.ErrNotFound.
func LoadFactors(r io.Reader) (*Factors, error) {
	var doc map[string]map[string]Factor
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode lcia factors: %w", err)
	}
	f := NewFactors()
	for impactName, processes := range doc {
		impact, err := ParseImpactCategory(impactName)
		if err != nil {
			return nil, err
		}
		for processName, factor := range processes {
			step, err := ParseProcessCategory(processName)
			if err != nil {
				return nil, err
			}
			f.cells[impact][step] = factor
		}
	}
	return f, nil
}

// Characterize multiplies flows by the factors into a record named name.
func (f *Factors) Characterize(name string, flows Flows) *Record {
	r := NewRecord(name)
	for i := range f.cells {
		for p, factor := range f.cells[i] {
			r.scores[i][p] = Score{Value: factor.Value * flows[p], Unit: factor.Unit}
		}
	}
	return r
}
