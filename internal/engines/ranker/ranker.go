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

// Package ranker separates evaluated scenarios into the non-dominated set and
// the dominated remainder over a chosen set of objectives.
package ranker

import (
	"context"
	"fmt"

	"github.com/hydrochar-lab/htc-model/pkg/solver"
)

// Ranker is an interface that defines the method for ranking scenario rows
type Ranker interface {
	// Rank splits rows into non-dominated and dominated rows, both in input order
	Rank(ctx context.Context, rows []solver.Row) (*Ranking, error)
}

// Ranking is the outcome of a Rank call.
type Ranking struct {
	NonDominated []solver.Row
	Dominated    []solver.Row
}

// RankerConfig holds settings common to all strategies.
type RankerConfig struct {
	// Maximize marks objective columns where larger is better. A nil or short
	// slice leaves the remaining columns minimized.
	Maximize []bool
}

// RankerStrategy is an enumeration of the different strategies that can be used by the Ranker
type RankerStrategy int

// enumeration of RankerStrategy
const (
	FrontStrategy RankerStrategy = iota
	PartitionStrategy
)

// String returns the strategy name used on the command line.
func (s RankerStrategy) String() string {
	switch s {
	case FrontStrategy:
		return "front"
	case PartitionStrategy:
		return "partition"
	default:
		return fmt.Sprintf("RankerStrategy(%d)", int(s))
	}
}

// ParseStrategy maps a command-line name to a strategy.
func ParseStrategy(name string) (RankerStrategy, error) {
	switch name {
	case "front", "":
		return FrontStrategy, nil
	case "partition":
		return PartitionStrategy, nil
	default:
		return 0, fmt.Errorf("unsupported ranker strategy: %q", name)
	}
}

// NewRanker is a factory that creates a new Ranker based on the provided strategy
func NewRanker(strategy RankerStrategy, config *RankerConfig) (Ranker, error) {
	if config == nil {
		config = &RankerConfig{}
	}
	switch strategy {
	case FrontStrategy:
		return NewFrontRanker(&FrontRankerConfig{RankerConfig: *config})
	case PartitionStrategy:
		return NewPartitionRanker(&PartitionRankerConfig{RankerConfig: *config})
	default:
		return nil, fmt.Errorf("unsupported ranker strategy: %v", strategy)
	}
}
