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

// Package common holds state shared by the engines during a run.
package common

import (
	"sync"

	"github.com/hydrochar-lab/htc-model/internal/config"
	"github.com/hydrochar-lab/htc-model/pkg/solver"
)

// WallSolver solves the reactor wall balance at a reaction temperature.
type WallSolver interface {
	Solve(reactionTempC float64) (solver.WallSolution, error)
	ReactionHeatFromFlux(heatFlux, residenceHours float64) float64
}

// WallSolutionCache memoizes wall solutions per reaction temperature. The
// wall balance depends only on the temperature, so every feed and residence
// time at that temperature shares one solve. Failed solves are not cached.
type WallSolutionCache struct {
	solver WallSolver
	mu     sync.RWMutex
	items  map[float64]solver.WallSolution
	misses int
}

// NewWallSolutionCache wraps s.
func NewWallSolutionCache(s WallSolver) *WallSolutionCache {
	return &WallSolutionCache{
		solver: s,
		items:  make(map[float64]solver.WallSolution),
	}
}

// Get returns a cached solution.
func (c *WallSolutionCache) Get(reactionTempC float64) (solver.WallSolution, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	sol, ok := c.items[reactionTempC]
	return sol, ok
}

// Set stores a solution.
func (c *WallSolutionCache) Set(reactionTempC float64, sol solver.WallSolution) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[reactionTempC] = sol
}

// Solve returns the cached solution or solves and caches it.
func (c *WallSolutionCache) Solve(reactionTempC float64) (solver.WallSolution, error) {
	if sol, ok := c.Get(reactionTempC); ok {
		return sol, nil
	}
	sol, err := c.solver.Solve(reactionTempC)
	if err != nil {
		return solver.WallSolution{}, err
	}
	c.mu.Lock()
	c.misses++
	c.items[reactionTempC] = sol
	c.mu.Unlock()
	return sol, nil
}

// ReactionHeatFromFlux delegates to the wrapped solver.
func (c *WallSolutionCache) ReactionHeatFromFlux(heatFlux, residenceHours float64) float64 {
	return c.solver.ReactionHeatFromFlux(heatFlux, residenceHours)
}

// Len returns the number of cached temperatures.
func (c *WallSolutionCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Misses returns how many solves went to the wrapped solver.
func (c *WallSolutionCache) Misses() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.misses
}

// GlobalConfig holds the run configuration shared across engines.
type GlobalConfig struct {
	mu             sync.RWMutex
	objectives     []string
	feedstockCfg   config.FeedstockConfigData
	moistureTarget float64
}

// UpdateObjectives replaces the objective columns.
func (c *GlobalConfig) UpdateObjectives(objectives []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.objectives = append([]string(nil), objectives...)
}

// GetObjectives returns a copy of the objective columns.
func (c *GlobalConfig) GetObjectives() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]string(nil), c.objectives...)
}

// UpdateFeedstockConfig replaces the per-feedstock overrides.
func (c *GlobalConfig) UpdateFeedstockConfig(data config.FeedstockConfigData) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.feedstockCfg = data
}

// GetFeedstockConfig returns the per-feedstock overrides.
func (c *GlobalConfig) GetFeedstockConfig() config.FeedstockConfigData {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.feedstockCfg
}

// UpdateMoistureTarget sets the run-wide moisture target.
func (c *GlobalConfig) UpdateMoistureTarget(target float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.moistureTarget = target
}

// GetMoistureTarget returns the run-wide moisture target.
func (c *GlobalConfig) GetMoistureTarget() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.moistureTarget
}

// MoistureTargetFor returns the effective moisture target of a feed.
func (c *GlobalConfig) MoistureTargetFor(feed string) float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.feedstockCfg.MoistureTargetFor(feed, c.moistureTarget)
}
