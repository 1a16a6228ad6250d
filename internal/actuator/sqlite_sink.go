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
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // pure go sqlite driver

	"github.com/hydrochar-lab/htc-model/internal/engines/process"
	"github.com/hydrochar-lab/htc-model/internal/engines/ranker"
	"github.com/hydrochar-lab/htc-model/internal/lcia"
	"github.com/hydrochar-lab/htc-model/internal/logging"
	"github.com/hydrochar-lab/htc-model/pkg/solver"
)

const resultsSchema = `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	started_at TEXT NOT NULL,
	objectives TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS scenario_results (
	run_id TEXT NOT NULL,
	scenario TEXT NOT NULL,
	feed TEXT NOT NULL,
	temp REAL NOT NULL,
	time REAL NOT NULL,
	payload TEXT NOT NULL,
	PRIMARY KEY (run_id, scenario)
);
CREATE TABLE IF NOT EXISTS lcia_scores (
	run_id TEXT NOT NULL,
	scenario TEXT NOT NULL,
	impact TEXT NOT NULL,
	process TEXT NOT NULL,
	value REAL NOT NULL,
	unit TEXT NOT NULL,
	PRIMARY KEY (run_id, scenario, impact, process)
);
CREATE TABLE IF NOT EXISTS rankings (
	run_id TEXT NOT NULL,
	scenario TEXT NOT NULL,
	position INTEGER NOT NULL,
	dominated INTEGER NOT NULL,
	objectives TEXT NOT NULL,
	PRIMARY KEY (run_id, position)
);`

// SQLiteSink writes results of one run to a SQLite database.
type SQLiteSink struct {
	db    *sql.DB
	runID string
}

var _ Sink = (*SQLiteSink)(nil)

// NewSQLiteSink opens or creates the database at path and registers a new run.
func NewSQLiteSink(ctx context.Context, path string, objectives []string) (*SQLiteSink, error) {
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
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, resultsSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create result tables: %w", err)
	}

	objectivesJSON, err := json.Marshal(objectives)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	s := &SQLiteSink{db: db, runID: uuid.NewString()}
	if _, err := db.ExecContext(ctx, `INSERT INTO runs(id, started_at, objectives) VALUES(?,?,?)`,
		s.runID, time.Now().UTC().Format(time.RFC3339), string(objectivesJSON)); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("insert run: %w", err)
	}
	logging.FromContext(ctx).V(logging.DEBUG).Info("Opened result sink", "path", path, "runID", s.runID)
	return s, nil
}

// RunID returns the identifier of the run being written.
func (s *SQLiteSink) RunID() string { return s.runID }

// DB exposes the underlying sql.DB.
func (s *SQLiteSink) DB() *sql.DB { return s.db }

// WriteBalance implements Sink.
func (s *SQLiteSink) WriteBalance(ctx context.Context, b process.Balance) error {
	payload, err := json.Marshal(b)
	if err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO scenario_results(run_id, scenario, feed, temp, time, payload) VALUES(?,?,?,?,?,?)
		 ON CONFLICT(run_id, scenario) DO UPDATE SET payload=excluded.payload`,
		s.runID, b.Scenario.String(), b.Scenario.Name, b.Scenario.Temp, b.Scenario.Time, string(payload)); err != nil {
		return fmt.Errorf("insert scenario %s: %w", b.Scenario, err)
	}
	return nil
}

// WriteRecord implements Sink. Zero cells without a unit are skipped.
func (s *SQLiteSink) WriteRecord(ctx context.Context, r *lcia.Record) (retErr error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()

	var execErr error
	r.Cells(func(impact lcia.ImpactCategory, step lcia.ProcessCategory, score lcia.Score) {
		if execErr != nil || (score.Value == 0 && score.Unit == "") {
			return
		}
		_, execErr = tx.ExecContext(ctx,
			`INSERT INTO lcia_scores(run_id, scenario, impact, process, value, unit) VALUES(?,?,?,?,?,?)
			 ON CONFLICT(run_id, scenario, impact, process) DO UPDATE SET value=excluded.value, unit=excluded.unit`,
			s.runID, r.Name, impact.String(), step.String(), score.Value, score.Unit)
	})
	if execErr != nil {
		return fmt.Errorf("insert lcia scores of %s: %w", r.Name, execErr)
	}
	return tx.Commit()
}

// WriteRanking implements Sink. Positions follow the non-dominated rows and
// then the dominated rows.
func (s *SQLiteSink) WriteRanking(ctx context.Context, r *ranker.Ranking) (retErr error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM rankings WHERE run_id = ?`, s.runID); err != nil {
		return err
	}
	position := 0
	insert := func(rows []solver.Row, dominated bool) error {
		for _, row := range rows {
			values, err := json.Marshal(row.Objectives)
			if err != nil {
				return err
			}
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO rankings(run_id, scenario, position, dominated, objectives) VALUES(?,?,?,?,?)`,
				s.runID, row.Name, position, dominated, string(values)); err != nil {
				return fmt.Errorf("insert ranking of %s: %w", row.Name, err)
			}
			position++
		}
		return nil
	}
	if err := insert(r.NonDominated, false); err != nil {
		return err
	}
	if err := insert(r.Dominated, true); err != nil {
		return err
	}
	return tx.Commit()
}

// Close implements Sink.
func (s *SQLiteSink) Close() error {
	return s.db.Close()
}
