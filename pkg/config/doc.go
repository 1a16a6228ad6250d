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

// Package config provides the physical parameter sets of the HTC reactor model.
//
// Parameter Sets:
//
//   - ReactorSpec: vessel geometry and insulation (Parr 4523 bench-top reactor)
//   - HeatTransferSpec: convection, emissivity and ambient conditions
//   - MixerSpec: impeller speed/diameter and slurry viscosity
//   - HeatingSpec: specific heat of water and heater power
//   - PostProcessingSpec: vacuum filtration and drying loads
//
// Each set has a Default constructor carrying the reference values and a
// Validate method that rejects non-physical values. The runtime configuration
// layer (internal/config) overlays file and environment values on these defaults.
//
// Example usage:
//
//	spec := config.DefaultModelSpec()
//	spec.Heating.HeatingRateW = 2000
//	if err := spec.Validate(); err != nil {
//	    return err
//	}
package config
