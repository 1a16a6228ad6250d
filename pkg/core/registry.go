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

import (
	"fmt"
)

// Registry owns the feedstocks of a model run, keyed by (name, temp, time).
// Registries are not safe for concurrent mutation.
type Registry struct {
	items map[Key]*Feedstock
	order []Key
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		items: make(map[Key]*Feedstock),
	}
}

// Add inserts a feedstock. The (name, temp, time) key must not be registered yet.
func (r *Registry) Add(f *Feedstock) error {
	if f == nil {
		return fmt.Errorf("feedstock cannot be nil: %w", ErrInvalidParameter)
	}
	key := f.Key()
	if _, exists := r.items[key]; exists {
		return fmt.Errorf("%s: %w", key, ErrDuplicate)
	}
	r.items[key] = f
	r.order = append(r.order, key)
	return nil
}

// Get returns the feedstock registered under the exact (name, temp, time) triple.
func (r *Registry) Get(name string, temp, time float64) (*Feedstock, error) {
	key := Key{Name: name, Temp: temp, Time: time}
	f, ok := r.items[key]
	if !ok {
		return nil, fmt.Errorf("feedstock %s: %w", key, ErrNotFound)
	}
	return f, nil
}

// Has reports whether the triple is registered.
func (r *Registry) Has(name string, temp, time float64) bool {
	_, ok := r.items[Key{Name: name, Temp: temp, Time: time}]
	return ok
}

// Duplicate copies the properties of sourceName registered at the given
// condition into a new feedstock named newName at the same condition, applies
// the moisture-target rule, and registers it. A source missing at that exact
// condition fails with ErrNotFound.
func (r *Registry) Duplicate(sourceName, newName string, temp, time float64) (*Feedstock, error) {
	src, err := r.Get(sourceName, temp, time)
	if err != nil {
		return nil, fmt.Errorf("duplicating %q as %q: %w", sourceName, newName, err)
	}
	dup := NewFeedstock(newName, temp, time, src.Properties())
	dup.WaterAdded = src.WaterAdded
	dup.Quantity = src.Quantity
	if err := r.Add(dup); err != nil {
		return nil, err
	}
	return dup, nil
}

// Delete removes every registration of name.
func (r *Registry) Delete(name string) error {
	kept := r.order[:0]
	removed := 0
	for _, key := range r.order {
		if key.Name == name {
			delete(r.items, key)
			removed++
			continue
		}
		kept = append(kept, key)
	}
	r.order = kept
	if removed == 0 {
		return fmt.Errorf("feedstock %q: %w", name, ErrNotFound)
	}
	return nil
}

// List returns the registered feedstocks in insertion order.
func (r *Registry) List() []*Feedstock {
	out := make([]*Feedstock, 0, len(r.order))
	for _, key := range r.order {
		out = append(out, r.items[key])
	}
	return out
}

// Len returns the number of registrations.
func (r *Registry) Len() int {
	return len(r.order)
}
