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
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // pure go sqlite driver

	"github.com/hydrochar-lab/htc-model/internal/logging"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS feed_properties (
	feed TEXT PRIMARY KEY,
	hhv REAL NOT NULL,
	hhv_std REAL NOT NULL DEFAULT 0,
	moisture REAL NOT NULL,
	moisture_std REAL NOT NULL DEFAULT 0,
	density REAL NOT NULL,
	position INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS yields (
	feed TEXT NOT NULL,
	time REAL NOT NULL,
	parameter TEXT NOT NULL,
	temp REAL NOT NULL,
	value REAL NOT NULL,
	PRIMARY KEY (feed, time, parameter, temp)
);`

// SQLiteStore serves properties and yields from a SQLite database. Yields are
// stored long, one value per (feed, time, parameter, temp).
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// OpenSQLiteStore opens or creates the database at path and ensures the schema.
func OpenSQLiteStore(ctx context.Context, path string) (*SQLiteStore, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite path cannot be empty")
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("create dirs: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// :memory: databases are per connection
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create input tables: %w", err)
	}
	return &SQLiteStore{db: db, path: path}, nil
}

// Name implements PropertySource and YieldSource.
func (s *SQLiteStore) Name() string { return string(SourceSQLite) }

// Close closes the database.
func (s *SQLiteStore) Close() error { return s.db.Close() }

// DB exposes the underlying sql.DB.
func (s *SQLiteStore) DB() *sql.DB { return s.db }

// Properties implements PropertySource.
func (s *SQLiteStore) Properties(ctx context.Context) ([]PropertyRow, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT feed, hhv, hhv_std, moisture, moisture_std, density FROM feed_properties ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("select feed_properties: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []PropertyRow
	for rows.Next() {
		var r PropertyRow
		p := &r.Properties
		if err := rows.Scan(&r.Feed, &p.HHV, &p.HHVStd, &p.Moisture, &p.MoistureStd, &p.Density); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		if err := r.Validate(); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	logging.FromContext(ctx).V(logging.DEBUG).Info("Read feed properties", "source", s.Name(), "rows", len(out))
	return out, nil
}

// Yields implements YieldSource. Rows come back ordered by feed, time and
// parameter.
func (s *SQLiteStore) Yields(ctx context.Context) ([]YieldRow, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT feed, time, parameter, temp, value FROM yields ORDER BY feed, time, parameter, temp`)
	if err != nil {
		return nil, fmt.Errorf("select yields: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []YieldRow
	for rows.Next() {
		var (
			feed, param       string
			time, temp, value float64
		)
		if err := rows.Scan(&feed, &time, &param, &temp, &value); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		p, err := ParseYieldParameter(param)
		if err != nil {
			return nil, err
		}
		n := len(out)
		if n == 0 || out[n-1].Feed != feed || out[n-1].Time != time || out[n-1].Parameter != p {
			out = append(out, YieldRow{Feed: feed, Time: time, Parameter: p, Values: make(map[float64]float64)})
			n++
		}
		out[n-1].Values[temp] = value
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	logging.FromContext(ctx).V(logging.DEBUG).Info("Read yields", "source", s.Name(), "rows", len(out))
	return out, nil
}

// Import replaces the stored tables with the given rows in one transaction.
func (s *SQLiteStore) Import(ctx context.Context, props []PropertyRow, yields []YieldRow) (retErr error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM feed_properties`); err != nil {
		return fmt.Errorf("clear feed_properties: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM yields`); err != nil {
		return fmt.Errorf("clear yields: %w", err)
	}
	for i, r := range props {
		if err := r.Validate(); err != nil {
			return err
		}
		p := r.Properties
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO feed_properties(feed,hhv,hhv_std,moisture,moisture_std,density,position) VALUES(?,?,?,?,?,?,?)`,
			r.Feed, p.HHV, p.HHVStd, p.Moisture, p.MoistureStd, p.Density, i); err != nil {
			return fmt.Errorf("insert %s: %w", r.Feed, err)
		}
	}
	for _, r := range yields {
		for _, temp := range r.Temps() {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO yields(feed,time,parameter,temp,value) VALUES(?,?,?,?,?)
				 ON CONFLICT(feed,time,parameter,temp) DO UPDATE SET value=excluded.value`,
				r.Feed, r.Time, string(r.Parameter), temp, r.Values[temp]); err != nil {
				return fmt.Errorf("insert yield %s/%g/%s: %w", r.Feed, r.Time, r.Parameter, err)
			}
		}
	}
	return tx.Commit()
}
