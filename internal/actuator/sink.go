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

package actuator

import (
	"context"
	"sync"

	"github.com/hydrochar-lab/htc-model/internal/engines/process"
	"github.com/hydrochar-lab/htc-model/internal/engines/ranker"
	"github.com/hydrochar-lab/htc-model/internal/lcia"
)

// Sink receives the results of a run.
type Sink interface {
	// WriteBalance stores the process balance of one scenario.
	WriteBalance(ctx context.Context, b process.Balance) error

	// WriteRecord stores the LCIA record of one scenario.
	WriteRecord(ctx context.Context, r *lcia.Record) error

	// WriteRanking stores the final ranking of the run.
	WriteRanking(ctx context.Context, r *ranker.Ranking) error

	// Close flushes and releases the sink.
	Close() error
}

// MemorySink keeps results in memory.
type MemorySink struct {
	mu       sync.Mutex
	balances []process.Balance
	records  []*lcia.Record
	ranking  *ranker.Ranking
}

var _ Sink = (*MemorySink)(nil)

// NewMemorySink creates an empty sink.
func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

// WriteBalance implements Sink.
func (s *MemorySink) WriteBalance(_ context.Context, b process.Balance) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.balances = append(s.balances, b)
	return nil
}

// WriteRecord implements Sink.
func (s *MemorySink) WriteRecord(_ context.Context, r *lcia.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, r)
	return nil
}

// WriteRanking implements Sink.
func (s *MemorySink) WriteRanking(_ context.Context, r *ranker.Ranking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ranking = r
	return nil
}

// Close implements Sink.
func (s *MemorySink) Close() error { return nil }

// Balances returns the stored balances in write order.
func (s *MemorySink) Balances() []process.Balance {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]process.Balance(nil), s.balances...)
}

// Records returns the stored LCIA records in write order.
func (s *MemorySink) Records() []*lcia.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*lcia.Record(nil), s.records...)
}

// Ranking returns the last stored ranking.
func (s *MemorySink) Ranking() *ranker.Ranking {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ranking
}
