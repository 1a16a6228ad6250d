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
	"strconv"
	"unicode"

	"gonum.org/v1/gonum/floats"
)

// Component is one weighted constituent of a composite feedstock.
type Component struct {
	Name    string
	Percent int
}

// Weight returns the mass fraction of the component.
func (c Component) Weight() float64 {
	return float64(c.Percent) / 100
}

// IsComposite reports whether name encodes a blend, i.e. carries percent tokens.
func IsComposite(name string) bool {
	for _, r := range name {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

// ParseComposite splits a composite name such as "stdBSG50_rawSRU50" into its
// (identifier, percent) components. Identifiers are alphabetic and must be
// directly followed by an integer percent; underscores, dashes and spaces
// separate components. The percents must sum to 100.
func ParseComposite(name string) ([]Component, error) {
	runes := []rune(name)
	var components []Component
	total := 0
	for i := 0; i < len(runes); {
		r := runes[i]
		switch {
		case isSeparator(r):
			i++
		case unicode.IsLetter(r):
			start := i
			for i < len(runes) && unicode.IsLetter(runes[i]) {
				i++
			}
			ident := string(runes[start:i])
			digitsStart := i
			for i < len(runes) && unicode.IsDigit(runes[i]) {
				i++
			}
			if digitsStart == i {
				return nil, fmt.Errorf("%q: component %q has no percent: %w", name, ident, ErrInvalidComposite)
			}
			percent, err := strconv.Atoi(string(runes[digitsStart:i]))
			if err != nil {
				return nil, fmt.Errorf("%q: component %q: %v: %w", name, ident, err, ErrInvalidComposite)
			}
			if percent <= 0 {
				return nil, fmt.Errorf("%q: component %q has percent %d: %w", name, ident, percent, ErrInvalidComposite)
			}
			components = append(components, Component{Name: ident, Percent: percent})
			total += percent
		case unicode.IsDigit(r):
			return nil, fmt.Errorf("%q: percent at offset %d has no component: %w", name, i, ErrInvalidComposite)
		default:
			return nil, fmt.Errorf("%q: unexpected character %q: %w", name, r, ErrInvalidComposite)
		}
	}
	if len(components) == 0 {
		return nil, fmt.Errorf("%q: no components: %w", name, ErrInvalidComposite)
	}
	if total != 100 {
		return nil, fmt.Errorf("%q: percents sum to %d, want 100: %w", name, total, ErrInvalidComposite)
	}
	return components, nil
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == ' '
}

// CompositeResolver aggregates composite feedstock properties from the
// constituents registered for the same reaction condition.
type CompositeResolver struct {
	registry       *Registry
	moistureTarget float64
}

// ResolverOption configures a CompositeResolver.
type ResolverOption func(*CompositeResolver)

// WithMoistureTarget overrides the moisture target re-applied to resolved composites.
func WithMoistureTarget(target float64) ResolverOption {
	return func(c *CompositeResolver) {
		c.moistureTarget = target
	}
}

// NewCompositeResolver creates a resolver reading constituents from registry.
func NewCompositeResolver(registry *Registry, opts ...ResolverOption) *CompositeResolver {
	c := &CompositeResolver{
		registry:       registry,
		moistureTarget: DefaultMoistureTarget,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Resolve computes hhv, density, moisture and quantity of f as weighted sums
// of its constituents, and hhv_std and moisture_std assuming independent
// constituent uncertainties. Constituents must already be registered for
// f's condition.
func (c *CompositeResolver) Resolve(f *Feedstock) error {
	components, err := ParseComposite(f.Name)
	if err != nil {
		return err
	}

	n := len(components)
	weights := make([]float64, n)
	hhv := make([]float64, n)
	hhvStd := make([]float64, n)
	moisture := make([]float64, n)
	moistureStd := make([]float64, n)
	density := make([]float64, n)
	quantity := make([]float64, n)
	for i, comp := range components {
		constituent, err := c.registry.Get(comp.Name, f.Temp, f.Time)
		if err != nil {
			return fmt.Errorf("resolving %s: %w", f.Key(), err)
		}
		weights[i] = comp.Weight()
		hhv[i] = constituent.HHV
		hhvStd[i] = constituent.HHVStd
		moisture[i] = constituent.Moisture
		moistureStd[i] = constituent.MoistureStd
		density[i] = constituent.Density
		quantity[i] = constituent.Quantity
	}

	f.HHV = floats.Dot(weights, hhv)
	f.HHVStd = propagateStd(weights, hhvStd)
	f.Moisture = floats.Dot(weights, moisture)
	f.MoistureStd = propagateStd(weights, moistureStd)
	f.Density = floats.Dot(weights, density)
	f.Quantity = floats.Dot(weights, quantity)
	ApplyMoistureTarget(f, c.moistureTarget)
	return nil
}

// propagateStd returns sqrt(sum((w_i*s_i)^2)).
func propagateStd(weights, stds []float64) float64 {
	scaled := make([]float64, len(weights))
	floats.MulTo(scaled, weights, stds)
	return floats.Norm(scaled, 2)
}
