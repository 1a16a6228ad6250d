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

package solver

import (
	"fmt"

	"github.com/hydrochar-lab/htc-model/pkg/core"
)

// Row is a named scenario objective vector. Every objective is minimized.
type Row struct {
	Name       string
	Objectives []float64
}

// NewRow creates a row holding its own copy of objectives.
func NewRow(name string, objectives ...float64) Row {
	return Row{Name: name, Objectives: append([]float64(nil), objectives...)}
}

// Dominates reports whether a is no worse than b in every objective and
// strictly better in at least one. Vectors of different length never dominate.
func Dominates(a, b []float64) bool {
	if len(a) != len(b) || len(a) == 0 {
		return false
	}
	strictlyBetter := false
	for i := range a {
		if a[i] > b[i] {
			return false
		}
		if a[i] < b[i] {
			strictlyBetter = true
		}
	}
	return strictlyBetter
}

// IsDominated reports whether rows[i] is dominated by any other row.
func IsDominated(i int, rows []Row) bool {
	for j, other := range rows {
		if j == i {
			continue
		}
		if Dominates(other.Objectives, rows[i].Objectives) {
			return true
		}
	}
	return false
}

// Front returns the rows not dominated by any row of the set, in input order.
// Rows with identical vectors do not dominate each other and are all kept.
func Front(rows []Row) ([]Row, error) {
	if err := validateRows(rows); err != nil {
		return nil, err
	}
	front := make([]Row, 0, len(rows))
	for i, row := range rows {
		dominated := false
		for _, other := range rows {
			if Dominates(other.Objectives, row.Objectives) {
				dominated = true
				break
			}
		}
		if !dominated {
			front = append(front, rows[i])
		}
	}
	return front, nil
}

// Partition splits rows into those dominated by no other row and those
// dominated by at least one other row, each in input order.
func Partition(rows []Row) (nonDominated, dominated []Row, err error) {
	if err := validateRows(rows); err != nil {
		return nil, nil, err
	}
	nonDominated = make([]Row, 0, len(rows))
	dominated = make([]Row, 0)
	for i, row := range rows {
		if IsDominated(i, rows) {
			dominated = append(dominated, row)
		} else {
			nonDominated = append(nonDominated, row)
		}
	}
	return nonDominated, dominated, nil
}

// FrontValues returns only the objective vectors of the Pareto front.
func FrontValues(rows []Row) ([][]float64, error) {
	front, err := Front(rows)
	if err != nil {
		return nil, err
	}
	out := make([][]float64, len(front))
	for i, row := range front {
		out[i] = row.Objectives
	}
	return out, nil
}

func validateRows(rows []Row) error {
	if len(rows) == 0 {
		return nil
	}
	k := len(rows[0].Objectives)
	if k == 0 {
		return fmt.Errorf("row %q has no objectives: %w", rows[0].Name, core.ErrInvalidParameter)
	}
	for _, row := range rows[1:] {
		if len(row.Objectives) != k {
			return fmt.Errorf("row %q has %d objectives, want %d: %w",
				row.Name, len(row.Objectives), k, core.ErrInvalidParameter)
		}
	}
	return nil
}
