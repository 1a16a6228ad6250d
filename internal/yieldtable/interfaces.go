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

// Package yieldtable indexes empirical yields by scenario and resolves
// scenario description strings of the form "<label>, <feed>_<temp>C_<time>hr".
package yieldtable

import (
	"github.com/hydrochar-lab/htc-model/internal/collector"
	"github.com/hydrochar-lab/htc-model/pkg/core"
)

// Reader provides read-only access to the yield table.
// This interface is used by the optimizer to fetch the inputs of a scenario.
type Reader interface {
	// Lookup returns one parameter for the scenario named in description.
	Lookup(description, parameter string) (float64, error)

	// ForScenario returns every yield of one scenario.
	ForScenario(feed string, temp, time float64) (core.Yields, error)

	// Len returns the number of stored values.
	Len() int
}

// Writer provides write access to the yield table.
type Writer interface {
	// UpdateRows stores every value of the given rows, replacing existing ones.
	UpdateRows(rows []collector.YieldRow)

	// Set stores a single value.
	Set(feed string, temp, time float64, parameter collector.YieldParameter, value float64)
}

// ReadWriter combines both read and write access to the table.
type ReadWriter interface {
	Reader
	Writer
}
