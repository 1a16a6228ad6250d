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

// Package v1alpha1 holds the versioned scenario-set document: which blends
// are evaluated under which reaction conditions and how they are ranked.
package v1alpha1

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/hydrochar-lab/htc-model/pkg/core"
)

const (
	// APIVersion is the apiVersion of documents this package decodes.
	APIVersion = "htc.hydrochar-lab.io/v1alpha1"
	// KindScenarioSet is the kind of a scenario-set document.
	KindScenarioSet = "ScenarioSet"
)

// ObjectMeta names a document.
type ObjectMeta struct {
	// Name identifies the scenario set in logs and result sinks.
	Name string `yaml:"name" json:"name"`

	// Labels are free-form annotations carried into the result status.
	// +optional
	Labels map[string]string `yaml:"labels,omitempty" json:"labels,omitempty"`
}

// Condition is one reaction condition.
type Condition struct {
	// Temp is the reaction temperature in °C.
	Temp float64 `yaml:"temp" json:"temp"`

	// Time is the residence time in hours.
	// Must be > 0.
	Time float64 `yaml:"time" json:"time"`
}

// ScenarioSetSpec defines which scenarios are evaluated.
type ScenarioSetSpec struct {
	// Conditions restricts the reaction condition grid. When empty, the
	// conditions of the runtime configuration are used.
	// +optional
	Conditions []Condition `yaml:"conditions,omitempty" json:"conditions,omitempty"`

	// Feeds restricts the elementary and standardized feedstocks that are
	// evaluated, e.g. "rawSRU" or "stdBSG". When empty, every seeded feed is
	// evaluated. Constituents of blends are always registered.
	// +optional
	Feeds []string `yaml:"feeds,omitempty" json:"feeds,omitempty"`

	// Blends lists composite feedstocks such as "stdBSG50_rawSRU50". Weights
	// must sum to 100.
	// +optional
	Blends []string `yaml:"blends,omitempty" json:"blends,omitempty"`

	// Objectives overrides the objective columns of the runtime configuration.
	// +optional
	Objectives []string `yaml:"objectives,omitempty" json:"objectives,omitempty"`

	// Strategy selects the ranking: "front" or "partition".
	// +optional
	Strategy string `yaml:"strategy,omitempty" json:"strategy,omitempty"`
}

// ScenarioSetStatus reports the outcome of the last run of a scenario set.
type ScenarioSetStatus struct {
	// RunID identifies the run in the result sink.
	RunID string `yaml:"runID,omitempty" json:"runID,omitempty"`

	// LastRunTime is when the run finished.
	LastRunTime time.Time `yaml:"lastRunTime,omitempty" json:"lastRunTime,omitempty"`

	// Evaluated is the number of scenarios whose balance was computed.
	Evaluated int `yaml:"evaluated" json:"evaluated"`

	// NonDominated lists the scenarios on the Pareto front, in evaluation order.
	NonDominated []string `yaml:"nonDominated,omitempty" json:"nonDominated,omitempty"`

	// Dominated lists the remaining scenarios, in evaluation order.
	Dominated []string `yaml:"dominated,omitempty" json:"dominated,omitempty"`
}

// ScenarioSet is a versioned document describing one model run.
type ScenarioSet struct {
	APIVersion string     `yaml:"apiVersion" json:"apiVersion"`
	Kind       string     `yaml:"kind" json:"kind"`
	Metadata   ObjectMeta `yaml:"metadata" json:"metadata"`

	// Spec defines the scenarios to evaluate.
	Spec ScenarioSetSpec `yaml:"spec" json:"spec"`

	// Status is filled in by a run.
	Status ScenarioSetStatus `yaml:"status,omitempty" json:"status,omitempty"`
}

// NewScenarioSet returns an empty scenario set with its type fields set.
func NewScenarioSet(name string) *ScenarioSet {
	return &ScenarioSet{
		APIVersion: APIVersion,
		Kind:       KindScenarioSet,
		Metadata:   ObjectMeta{Name: name},
	}
}

// Validate checks the document header and spec.
func (s *ScenarioSet) Validate() error {
	var errs []error
	if s.APIVersion != APIVersion {
		errs = append(errs, fmt.Errorf("unsupported apiVersion %q, expected %q", s.APIVersion, APIVersion))
	}
	if s.Kind != KindScenarioSet {
		errs = append(errs, fmt.Errorf("unsupported kind %q, expected %q", s.Kind, KindScenarioSet))
	}
	if s.Metadata.Name == "" {
		errs = append(errs, errors.New("metadata.name is required"))
	}
	for i, c := range s.Spec.Conditions {
		if c.Time <= 0 {
			errs = append(errs, fmt.Errorf("spec.conditions[%d]: residence time must be > 0, got %.2f", i, c.Time))
		}
	}
	for i, feed := range s.Spec.Feeds {
		if feed == "" || core.IsComposite(feed) {
			errs = append(errs, fmt.Errorf("spec.feeds[%d]: %q is not an elementary feed name", i, feed))
		}
	}
	seen := make(map[string]bool, len(s.Spec.Blends))
	for i, blend := range s.Spec.Blends {
		if _, err := core.ParseComposite(blend); err != nil {
			errs = append(errs, fmt.Errorf("spec.blends[%d]: %w", i, err))
		}
		if seen[blend] {
			errs = append(errs, fmt.Errorf("spec.blends[%d]: %q listed twice: %w", i, blend, core.ErrDuplicate))
		}
		seen[blend] = true
	}
	switch s.Spec.Strategy {
	case "", "front", "partition":
	default:
		errs = append(errs, fmt.Errorf("spec.strategy must be front or partition, got %q", s.Spec.Strategy))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("scenario set %q: %w", s.Metadata.Name, err)
	}
	return nil
}

// Decode reads and validates a scenario set. Unknown fields are rejected.
func Decode(r io.Reader) (*ScenarioSet, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	set := &ScenarioSet{}
	if err := dec.Decode(set); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty scenario set document")
		}
		return nil, fmt.Errorf("failed to decode scenario set: %w", err)
	}
	if err := set.Validate(); err != nil {
		return nil, err
	}
	return set, nil
}

// LoadFile reads a scenario set from path.
func LoadFile(path string) (*ScenarioSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario set %s: %w", path, err)
	}
	return Decode(bytes.NewReader(data))
}

// Encode writes the scenario set, status included, as YAML.
func (s *ScenarioSet) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return err
	}
	return enc.Close()
}

// DeepCopy returns an independent copy of the scenario set.
func (s *ScenarioSet) DeepCopy() *ScenarioSet {
	if s == nil {
		return nil
	}
	out := *s
	if s.Metadata.Labels != nil {
		out.Metadata.Labels = make(map[string]string, len(s.Metadata.Labels))
		for k, v := range s.Metadata.Labels {
			out.Metadata.Labels[k] = v
		}
	}
	out.Spec.Conditions = append([]Condition(nil), s.Spec.Conditions...)
	out.Spec.Feeds = append([]string(nil), s.Spec.Feeds...)
	out.Spec.Blends = append([]string(nil), s.Spec.Blends...)
	out.Spec.Objectives = append([]string(nil), s.Spec.Objectives...)
	out.Status.NonDominated = append([]string(nil), s.Status.NonDominated...)
	out.Status.Dominated = append([]string(nil), s.Status.Dominated...)
	return &out
}
