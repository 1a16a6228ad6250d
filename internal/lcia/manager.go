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
	"sync"

	"github.com/hydrochar-lab/htc-model/pkg/core"
)

// Manager stores records by name, in insertion order.
type Manager struct {
	mu      sync.RWMutex
	records []*Record
}

// NewManager creates an empty manager.
func NewManager() *Manager {
	return &Manager{}
}

// Add stores r. Names are unique.
func (m *Manager) Add(r *Record) error {
	if r == nil {
		return fmt.Errorf("nil record: %w", core.ErrInvalidParameter)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.records {
		if existing.Name == r.Name {
			return fmt.Errorf("lcia record %q: %w", r.Name, core.ErrDuplicate)
		}
	}
	m.records = append(m.records, r)
	return nil
}

// Delete removes the record named name.
func (m *Manager) Delete(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, r := range m.records {
		if r.Name == name {
			m.records = append(m.records[:i], m.records[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("lcia record %q: %w", name, core.ErrNotFound)
}

// Get returns the record named name.
func (m *Manager) Get(name string) (*Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, r := range m.records {
		if r.Name == name {
			return r, nil
		}
	}
	return nil, fmt.Errorf("lcia record %q: %w", name, core.ErrNotFound)
}

// List returns the records in insertion order.
func (m *Manager) List() []*Record {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]*Record(nil), m.records...)
}
