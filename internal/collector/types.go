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

package collector

import (
	"fmt"
	"sort"

	"github.com/hydrochar-lab/htc-model/pkg/core"
)

// YieldParameter names one empirical quantity of a scenario.
type YieldParameter string

const (
	// ParamGasYield is the gas (CO2) mass fraction of the dry feed.
	ParamGasYield YieldParameter = "gas_yield"
	// ParamHCYield is the hydrochar mass fraction of the dry feed.
	ParamHCYield YieldParameter = "HC_yield"
	// ParamHHVHC is the higher heating value of the hydrochar.
	ParamHHVHC YieldParameter = "HHV_HC"
)

// Parameters lists every supported yield parameter.
var Parameters = []YieldParameter{ParamGasYield, ParamHCYield, ParamHHVHC}

// ParseYieldParameter validates a parameter name.
func ParseYieldParameter(s string) (YieldParameter, error) {
	for _, p := range Parameters {
		if string(p) == s {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown yield parameter %q: %w", s, core.ErrInvalidParameter)
}

// PropertyRow is the measured properties of one elementary feed.
type PropertyRow struct {
	Feed       string
	Properties core.Properties
}

// Validate rejects rows a feedstock cannot be built from.
func (r PropertyRow) Validate() error {
	if r.Feed == "" {
		return fmt.Errorf("property row without feed name: %w", core.ErrInvalidParameter)
	}
	if r.Properties.Moisture < 0 || r.Properties.Moisture >= 1 {
		return fmt.Errorf("%s: moisture must be in [0, 1), got %.3f: %w", r.Feed, r.Properties.Moisture, core.ErrInvalidParameter)
	}
	if r.Properties.Density <= 0 {
		return fmt.Errorf("%s: density must be > 0, got %.1f: %w", r.Feed, r.Properties.Density, core.ErrInvalidParameter)
	}
	return nil
}

// YieldRow holds one parameter of one feed at one residence time, with a
// value per reaction temperature.
type YieldRow struct {
	Feed      string
	Time      float64
	Parameter YieldParameter

	// Values maps reaction temperature in °C to the parameter value.
	Values map[float64]float64
}

// Temps returns the temperatures present in the row, ascending.
func (r YieldRow) Temps() []float64 {
	temps := make([]float64, 0, len(r.Values))
	for t := range r.Values {
		temps = append(temps, t)
	}
	sort.Float64s(temps)
	return temps
}
