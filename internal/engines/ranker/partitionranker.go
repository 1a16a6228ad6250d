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

// PartitionRankerConfig holds the configuration for the PartitionRanker
type PartitionRankerConfig struct {
	RankerConfig
}

// PartitionRanker classifies every row with the partition predicate.
type PartitionRanker struct {
	config *PartitionRankerConfig
}

// NewPartitionRanker creates a new PartitionRanker instance.
func NewPartitionRanker(config *PartitionRankerConfig) (*PartitionRanker, error) {
	if config == nil {
		return nil, fmt.Errorf("partition ranker config cannot be nil")
	}
	return &PartitionRanker{config: config}, nil
}

// Rank implements Ranker.
func (r *PartitionRanker) Rank(ctx context.Context, rows []solver.Row) (*Ranking, error) {
	logger := logging.FromContext(ctx)

	oriented, err := orient(rows, r.config.Maximize)
	if err != nil {
		return nil, err
	}

	ranking := &Ranking{}
	for i, row := range rows {
		if solver.IsDominated(i, oriented) {
			ranking.Dominated = append(ranking.Dominated, row)
		} else {
			ranking.NonDominated = append(ranking.NonDominated, row)
		}
	}

	logger.V(logging.DEBUG).Info("Ranked scenarios",
		"strategy", PartitionStrategy.String(),
		"rows", len(rows),
		"nonDominated", len(ranking.NonDominated))

	return ranking, nil
}
