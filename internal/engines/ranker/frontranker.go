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
	"context"
	"fmt"

	"github.com/hydrochar-lab/htc-model/internal/logging"
	"github.com/hydrochar-lab/htc-model/pkg/solver"
)

// FrontRankerConfig holds configuration for the FrontRanker
type FrontRankerConfig struct {
	RankerConfig
}

// FrontRanker extracts the non-dominated front and reports every other row
// as dominated.
type FrontRanker struct {
	config *FrontRankerConfig
}

// NewFrontRanker creates a new FrontRanker instance.
func NewFrontRanker(config *FrontRankerConfig) (*FrontRanker, error) {
	if config == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	return &FrontRanker{config: config}, nil
}

// Rank implements Ranker.
func (r *FrontRanker) Rank(ctx context.Context, rows []solver.Row) (*Ranking, error) {
	logger := logging.FromContext(ctx)

	oriented, err := orient(rows, r.config.Maximize)
	if err != nil {
		return nil, err
	}
	front, err := solver.Front(oriented)
	if err != nil {
		return nil, err
	}

	onFront := make(map[int]bool, len(front))
	j := 0
	for i := range oriented {
		if j < len(front) && front[j].Name == oriented[i].Name && sameObjectives(front[j].Objectives, oriented[i].Objectives) {
			onFront[i] = true
			j++
		}
	}

	ranking := &Ranking{}
	for i, row := range rows {
		if onFront[i] {
			ranking.NonDominated = append(ranking.NonDominated, row)
		} else {
			ranking.Dominated = append(ranking.Dominated, row)
		}
	}

	logger.V(logging.DEBUG).Info("Ranked scenarios",
		"strategy", FrontStrategy.String(),
		"rows", len(rows),
		"nonDominated", len(ranking.NonDominated))

	return ranking, nil
}
