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

package yieldtable

import (
	"context"
	"fmt"
	"sync"

	"github.com/hydrochar-lab/htc-model/internal/collector"
	"github.com/hydrochar-lab/htc-model/internal/logging"
	"github.com/hydrochar-lab/htc-model/internal/utils/feedname"
	"github.com/hydrochar-lab/htc-model/pkg/core"
)

type entryKey struct {
	feed      string
	temp      float64
	time      float64
	parameter collector.YieldParameter
}

// Table is an in-memory yield table, safe for concurrent use. Lookups try the
// feed name as given, then its base name without a raw or std prefix, so
// "rawSRU" and "stdSRU" share the yields measured for "SRU".
type Table struct {
	mu     sync.RWMutex
	values map[entryKey]float64
	naming feedname.NamingConfig
}

var _ ReadWriter = (*Table)(nil)

// NewTable creates an empty table with the default naming convention.
func NewTable() *Table {
	return &Table{
		values: make(map[entryKey]float64),
		naming: feedname.DefaultNamingConfig(),
	}
}

// Load builds a table from a yield source.
func Load(ctx context.Context, source collector.YieldSource) (*Table, error) {
	rows, err := source.Yields(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading yields from %s: %w", source.Name(), err)
	}
	t := NewTable()
	t.UpdateRows(rows)
	logging.FromContext(ctx).V(logging.DEBUG).Info("Loaded yield table",
		"source", source.Name(),
		"values", t.Len())
	return t, nil
}

// UpdateRows implements Writer.
func (t *Table) UpdateRows(rows []collector.YieldRow) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, r := range rows {
		for temp, v := range r.Values {
			t.values[entryKey{feed: r.Feed, temp: temp, time: r.Time, parameter: r.Parameter}] = v
		}
	}
}

// Set implements Writer.
func (t *Table) Set(feed string, temp, time float64, parameter collector.YieldParameter, value float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.values[entryKey{feed: feed, temp: temp, time: time, parameter: parameter}] = value
}

// Len implements Reader.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.values)
}

// Lookup implements Reader. An unrecognized parameter fails with
// core.ErrInvalidParameter, a missing value with core.ErrNotFound.
func (t *Table) Lookup(description, parameter string) (float64, error) {
	param, err := collector.ParseYieldParameter(parameter)
	if err != nil {
		return 0, err
	}
	d, err := ParseDescription(description)
	if err != nil {
		return 0, err
	}
	return t.get(d.Feed, d.Temp, d.Time, param)
}

// ForScenario implements Reader.
func (t *Table) ForScenario(feed string, temp, time float64) (core.Yields, error) {
	var y core.Yields
	var err error
	if y.GasYield, err = t.get(feed, temp, time, collector.ParamGasYield); err != nil {
		return core.Yields{}, err
	}
	if y.HCYield, err = t.get(feed, temp, time, collector.ParamHCYield); err != nil {
		return core.Yields{}, err
	}
	if y.HHVHC, err = t.get(feed, temp, time, collector.ParamHHVHC); err != nil {
		return core.Yields{}, err
	}
	return y, nil
}

func (t *Table) get(feed string, temp, time float64, param collector.YieldParameter) (float64, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for _, name := range []string{feed, feedname.BaseName(feed, t.naming)} {
		if v, ok := t.values[entryKey{feed: name, temp: temp, time: time, parameter: param}]; ok {
			return v, nil
		}
	}
	return 0, fmt.Errorf("%s of %s: %w", param, core.Key{Name: feed, Temp: temp, Time: time}, core.ErrNotFound)
}
