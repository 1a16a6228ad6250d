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

package collector

import (
	"context"
	"fmt"
	"io"
)

// SourceType selects the backend of the input tables.
type SourceType string

const (
	SourceCSV    SourceType = "csv"
	SourceSQLite SourceType = "sqlite"
)

// SourceConfig locates the input tables.
type SourceConfig struct {
	Type           SourceType
	PropertiesPath string
	YieldsPath     string
	SQLitePath     string
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// NewSources is a factory that opens the property and yield sources of the
// configured backend. The returned closer releases backend resources.
func NewSources(ctx context.Context, cfg SourceConfig) (PropertySource, YieldSource, io.Closer, error) {
	switch cfg.Type {
	case SourceCSV:
		if cfg.PropertiesPath == "" || cfg.YieldsPath == "" {
			return nil, nil, nil, fmt.Errorf("csv sources need both a properties and a yields path")
		}
		return NewCSVPropertySource(cfg.PropertiesPath), NewCSVYieldSource(cfg.YieldsPath), nopCloser{}, nil
	case SourceSQLite:
		store, err := OpenSQLiteStore(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, nil, err
		}
		return store, store, store, nil
	default:
		return nil, nil, nil, fmt.Errorf("unsupported source type: %q", cfg.Type)
	}
}
