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

// Package collector loads the tabulated inputs of a model run: feedstock
// properties and the empirical yields of each (feed, temperature, time)
// scenario.
//
// Two backends are provided:
//
//   - CSV files: one properties table and one wide yields table whose
//     temperature columns are named by the temperature in °C
//   - SQLite: tables feed_properties and yields in one database
//
// Feed names in both backends are bare (e.g. "SRU"); the optimizer adds the
// "raw" prefix when it seeds the registry.
//
// # Usage Example
//
//	props, yields, closer, err := collector.NewSources(ctx, collector.SourceConfig{
//		Type:           collector.SourceCSV,
//		PropertiesPath: "data/properties.csv",
//		YieldsPath:     "data/yields.csv",
//	})
//	if err != nil {
//		return err
//	}
//	defer closer.Close()
//
//	rows, err := props.Properties(ctx)
package collector
