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

package ranker

import (
	"fmt"

	"github.com/hydrochar-lab/htc-model/pkg/core"
	"github.com/hydrochar-lab/htc-model/pkg/solver"
)

// orient returns a copy of rows with maximized columns negated, so that every
// column is minimized. It also rejects ragged rows.
func orient(rows []solver.Row, maximize []bool) ([]solver.Row, error) {
	if len(rows) == 0 {
		return nil, nil
	}
	width := len(rows[0].Objectives)
	if width == 0 {
		return nil, fmt.Errorf("rows have no objectives: %w", core.ErrInvalidParameter)
	}
	if len(maximize) > width {
		return nil, fmt.Errorf("%d maximize flags for %d objectives: %w", len(maximize), width, core.ErrInvalidParameter)
	}
	out := make([]solver.Row, len(rows))
	for i, row := range rows {
		if len(row.Objectives) != width {
			return nil, fmt.Errorf("row %q has %d objectives, want %d: %w", row.Name, len(row.Objectives), width, core.ErrInvalidParameter)
		}
		values := make([]float64, width)
		for k, v := range row.Objectives {
			if k < len(maximize) && maximize[k] {
				v = -v
			}
			values[k] = v
		}
		out[i] = solver.Row{Name: row.Name, Objectives: values}
	}
	return out, nil
}

func sameObjectives(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Names returns the row names in order.
func Names(rows []solver.Row) []string {
	names := make([]string, len(rows))
	for i, r := range rows {
		names[i] = r.Name
	}
	return names
}
