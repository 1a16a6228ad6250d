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

package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hydrochar-lab/htc-model/internal/engines/ranker"
	"github.com/hydrochar-lab/htc-model/internal/logging"
	"github.com/hydrochar-lab/htc-model/pkg/core"
	"github.com/hydrochar-lab/htc-model/pkg/solver"
)

func newRankCmd() *cobra.Command {
	var (
		inputPath string
		maximize  []string
		strategy  string
	)

	cmd := &cobra.Command{
		Use:   "rank",
		Short: "Rank an objective table by Pareto dominance",
		Long: `rank reads a CSV table whose first column names a scenario and whose
remaining columns are objectives, and prints the non-dominated rows followed
by the dominated rows. Every column is minimized unless listed in --maximize.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			level, _ := cmd.Flags().GetString("log-level")
			development, _ := cmd.Flags().GetBool("development")
			logger, err := logging.NewLogger(level, development)
			if err != nil {
				return err
			}
			ctx := logging.IntoContext(cmd.Context(), logger)

			in := cmd.InOrStdin()
			if inputPath != "" && inputPath != "-" {
				f, err := os.Open(inputPath)
				if err != nil {
					return err
				}
				defer func() { _ = f.Close() }()
				in = f
			}
			return rankTable(ctx, in, cmd.OutOrStdout(), strategy, maximize)
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "-", "Objective table (CSV); - reads stdin")
	cmd.Flags().StringSliceVar(&maximize, "maximize", nil, "Columns where larger is better")
	cmd.Flags().StringVar(&strategy, "strategy", "front", "Ranking strategy (front, partition)")
	return cmd
}

func rankTable(ctx context.Context, in io.Reader, out io.Writer, strategyName string, maximize []string) error {
	columns, rows, err := readObjectiveTable(in)
	if err != nil {
		return err
	}
	flags, err := maximizeFlags(columns, maximize)
	if err != nil {
		return err
	}
	strategy, err := ranker.ParseStrategy(strategyName)
	if err != nil {
		return err
	}
	r, err := ranker.NewRanker(strategy, &ranker.RankerConfig{Maximize: flags})
	if err != nil {
		return err
	}
	ranking, err := r.Rank(ctx, rows)
	if err != nil {
		return err
	}
	return printRows(out, columns, ranking)
}

// readObjectiveTable returns the objective column names and one row per record.
func readObjectiveTable(in io.Reader) ([]string, []solver.Row, error) {
	reader := csv.NewReader(in)
	reader.Comment = '#'
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read objective table: %w", err)
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("objective table is empty: %w", core.ErrInvalidParameter)
	}
	header := records[0]
	if len(header) < 2 {
		return nil, nil, fmt.Errorf("objective table needs a name column and at least one objective: %w", core.ErrInvalidParameter)
	}
	columns := make([]string, len(header)-1)
	for i, h := range header[1:] {
		columns[i] = strings.TrimSpace(h)
	}

	rows := make([]solver.Row, 0, len(records)-1)
	for line, record := range records[1:] {
		values := make([]float64, len(columns))
		for i, cell := range record[1:] {
			v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
			if err != nil {
				return nil, nil, fmt.Errorf("line %d column %s: %v: %w", line+2, columns[i], err, core.ErrInvalidParameter)
			}
			values[i] = v
		}
		rows = append(rows, solver.NewRow(strings.TrimSpace(record[0]), values...))
	}
	return columns, rows, nil
}

func maximizeFlags(columns, maximize []string) ([]bool, error) {
	flags := make([]bool, len(columns))
	for _, name := range maximize {
		found := false
		for i, c := range columns {
			if c == name {
				flags[i] = true
				found = true
			}
		}
		if !found {
			return nil, fmt.Errorf("maximize column %q: %w", name, core.ErrNotFound)
		}
	}
	return flags, nil
}
