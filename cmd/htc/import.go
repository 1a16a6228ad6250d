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
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hydrochar-lab/htc-model/internal/collector"
	"github.com/hydrochar-lab/htc-model/internal/logging"
)

func newImportCmd() *cobra.Command {
	var (
		dbPath     string
		properties string
		yields     string
	)

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Load the CSV property and yield tables into a SQLite database",
		RunE: func(cmd *cobra.Command, args []string) error {
			level, _ := cmd.Flags().GetString("log-level")
			development, _ := cmd.Flags().GetBool("development")
			logger, err := logging.NewLogger(level, development)
			if err != nil {
				return err
			}
			ctx := logging.IntoContext(cmd.Context(), logger)

			props, err := collector.NewCSVPropertySource(properties).Properties(ctx)
			if err != nil {
				return err
			}
			rows, err := collector.NewCSVYieldSource(yields).Yields(ctx)
			if err != nil {
				return err
			}

			store, err := collector.OpenSQLiteStore(ctx, dbPath)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()
			if err := store.Import(ctx, props, rows); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d feeds and %d yield rows into %s\n", len(props), len(rows), dbPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite database to write")
	cmd.Flags().StringVar(&properties, "properties", "", "Feed property table (CSV)")
	cmd.Flags().StringVar(&yields, "yields", "", "Yield table (CSV)")
	_ = cmd.MarkFlagRequired("db")
	_ = cmd.MarkFlagRequired("properties")
	_ = cmd.MarkFlagRequired("yields")
	return cmd
}
