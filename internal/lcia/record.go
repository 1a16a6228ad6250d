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
	"fmt"

	"github.com/hydrochar-lab/htc-model/pkg/core"
)

// Score is one impact score with its unit.
type Score struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit,omitempty"`
}

// Record holds the scores of one scenario. Every (impact, process) cell
// exists and starts at zero.
type Record struct {
	Name   string
	scores [NumImpactCategories][NumProcessCategories]Score
}

// NewRecord creates an all-zero record.
func NewRecord(name string) *Record {
	return &Record{Name: name}
}

func validCell(impact ImpactCategory, process ProcessCategory) error {
	if impact < 0 || int(impact) >= NumImpactCategories {
		return fmt.Errorf("%v: %w", impact, core.ErrNotFound)
	}
	if process < 0 || int(process) >= NumProcessCategories {
		return fmt.Errorf("%v: %w", process, core.ErrNotFound)
	}
	return nil
}

// SetScore sets one cell.
func (r *Record) SetScore(impact ImpactCategory, process ProcessCategory, value float64, unit string) error {
	if err := validCell(impact, process); err != nil {
		return err
	}
	r.scores[impact][process] = Score{Value: value, Unit: unit}
	return nil
}

// SetScoreByName sets one cell addressed by category names.
func (r *Record) SetScoreByName(impact, process string, value float64, unit string) error {
	ic, err := ParseImpactCategory(impact)
	if err != nil {
		return err
	}
	pc, err := ParseProcessCategory(process)
	if err != nil {
		return err
	}
	return r.SetScore(ic, pc, value, unit)
}

// Score returns the value of one cell.
func (r *Record) Score(impact ImpactCategory, process ProcessCategory) (float64, error) {
	if err := validCell(impact, process); err != nil {
		return 0, err
	}
	return r.scores[impact][process].Value, nil
}

// Unit returns the unit of one cell.
func (r *Record) Unit(impact ImpactCategory, process ProcessCategory) (string, error) {
	if err := validCell(impact, process); err != nil {
		return "", err
	}
	return r.scores[impact][process].Unit, nil
}

// Total sums the scores of an impact category over every process, leaving out
// transportation when excludeTransportation is set.
func (r *Record) Total(impact ImpactCategory, excludeTransportation bool) (float64, error) {
	if err := validCell(impact, 0); err != nil {
		return 0, err
	}
	var sum float64
	for p, s := range r.scores[impact] {
		if excludeTransportation && ProcessCategory(p) == ProcessTransportation {
			continue
		}
		sum += s.Value
	}
	return sum, nil
}

// Cells calls fn for every cell in category order.
func (r *Record) Cells(fn func(impact ImpactCategory, process ProcessCategory, s Score)) {
	for i := range r.scores {
		for p := range r.scores[i] {
			fn(ImpactCategory(i), ProcessCategory(p), r.scores[i][p])
		}
	}
}
