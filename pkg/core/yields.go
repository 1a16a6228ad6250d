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

import "fmt"

// Yields holds the empirical outcomes of one (feedstock, temp, time) scenario,
// supplied by the yield source rather than computed by the model.
type Yields struct {
	// GasYield is the gas (CO2) mass fraction of the dry feed.
	GasYield float64 `json:"gas_yield"`
	// HCYield is the hydrochar mass fraction of the dry feed.
	HCYield float64 `json:"hc_yield"`
	// HHVHC is the higher heating value of the hydrochar.
	HHVHC float64 `json:"hhv_hc"`
}

// Validate rejects yields outside [0, 1] or a zero hydrochar yield.
func (y Yields) Validate() error {
	if y.HCYield <= 0 || y.HCYield > 1 {
		return fmt.Errorf("hydrochar yield must be in (0, 1], got %g: %w", y.HCYield, ErrInvalidParameter)
	}
	if y.GasYield < 0 || y.GasYield > 1 {
		return fmt.Errorf("gas yield must be in [0, 1], got %g: %w", y.GasYield, ErrInvalidParameter)
	}
	return nil
}
