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
	"fmt"
	"sort"
	"strings"

	"github.com/hydrochar-lab/htc-model/internal/engines/process"
	"github.com/hydrochar-lab/htc-model/internal/lcia"
	"github.com/hydrochar-lab/htc-model/pkg/core"
)

// ImpactObjectivePrefix selects an LCIA impact total as objective, e.g.
// "impact:climate_change".
const ImpactObjectivePrefix = "impact:"

// Objective is one ranked column.
type Objective struct {
	Name     string
	Maximize bool

	balance func(b process.Balance) float64
	impact  lcia.ImpactCategory
}

var balanceObjectives = map[string]Objective{
	"total_heat_kwh":      {balance: func(b process.Balance) float64 { return b.TotalHeatKWh }},
	"electricity_kwh":     {balance: func(b process.Balance) float64 { return b.ElectricityKWh }},
	"post_processing_kwh": {balance: func(b process.Balance) float64 { return b.PostProcessingKWh }},
	"total_energy_kwh": {balance: func(b process.Balance) float64 {
		return b.TotalHeatKWh + b.ElectricityKWh + b.PostProcessingKWh
	}},
	"ramp_time_hr":  {balance: func(b process.Balance) float64 { return b.RampTimeHr }},
	"co2":           {balance: func(b process.Balance) float64 { return b.CO2 }},
	"process_water": {balance: func(b process.Balance) float64 { return b.ProcessWater }},
	"water_added":   {balance: func(b process.Balance) float64 { return b.WaterAdded }},
	"quantity":      {balance: func(b process.Balance) float64 { return b.Quantity }},
	"hydrochar_hhv": {Maximize: true, balance: func(b process.Balance) float64 { return b.HydrocharHHV }},
}

// ObjectiveNames lists the balance objectives in sorted order.
func ObjectiveNames() []string {
	names := make([]string, 0, len(balanceObjectives))
	for name := range balanceObjectives {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseObjective resolves a balance column or an impact total.
func ParseObjective(name string) (Objective, error) {
	if category, ok := strings.CutPrefix(name, ImpactObjectivePrefix); ok {
		impact, err := lcia.ParseImpactCategory(category)
		if err != nil {
			return Objective{}, fmt.Errorf("objective %q: %w", name, err)
		}
		return Objective{Name: name, impact: impact}, nil
	}
	o, ok := balanceObjectives[name]
	if !ok {
		return Objective{}, fmt.Errorf("unknown objective %q: %w", name, core.ErrInvalidParameter)
	}
	o.Name = name
	return o, nil
}

// ParseObjectives resolves every name, rejecting duplicates.
func ParseObjectives(names []string) ([]Objective, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("at least one objective is required: %w", core.ErrInvalidParameter)
	}
	seen := make(map[string]bool, len(names))
	out := make([]Objective, 0, len(names))
	for _, name := range names {
		if seen[name] {
			return nil, fmt.Errorf("objective %q listed twice: %w", name, core.ErrDuplicate)
		}
		seen[name] = true
		o, err := ParseObjective(name)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, nil
}

// Value returns the objective for one scenario. Impact objectives read the
// record's total across process categories.
func (o Objective) Value(b process.Balance, r *lcia.Record, excludeTransportation bool) (float64, error) {
	if o.balance != nil {
		return o.balance(b), nil
	}
	if r == nil {
		return 0, fmt.Errorf("objective %q needs an LCIA record: %w", o.Name, core.ErrNotFound)
	}
	return r.Total(o.impact, excludeTransportation)
}

// MaximizeFlags returns the per-column maximize flags of objectives.
func MaximizeFlags(objectives []Objective) []bool {
	flags := make([]bool, len(objectives))
	for i, o := range objectives {
		flags[i] = o.Maximize
	}
	return flags
}
