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
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/hydrochar-lab/htc-model/api/v1alpha1"
	"github.com/hydrochar-lab/htc-model/internal/actuator"
	"github.com/hydrochar-lab/htc-model/internal/collector"
	"github.com/hydrochar-lab/htc-model/internal/config"
	"github.com/hydrochar-lab/htc-model/internal/engines/common"
	"github.com/hydrochar-lab/htc-model/internal/engines/ranker"
	"github.com/hydrochar-lab/htc-model/internal/lcia"
	"github.com/hydrochar-lab/htc-model/internal/logging"
	"github.com/hydrochar-lab/htc-model/internal/optimizer"
	"github.com/hydrochar-lab/htc-model/internal/yieldtable"
	"github.com/hydrochar-lab/htc-model/pkg/solver"
)

func newRunCmd() *cobra.Command {
	var (
		scenarioPath string
		statusOut    string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Evaluate and rank the scenarios of a scenario set",
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			cfg, err := config.Load(configPath, cmd.Flags())
			if err != nil {
				return err
			}
			logger, err := logging.NewLogger(cfg.LogLevel, cfg.Development)
			if err != nil {
				return err
			}
			ctx := logging.IntoContext(cmd.Context(), logger)

			var set *v1alpha1.ScenarioSet
			if scenarioPath != "" {
				if set, err = v1alpha1.LoadFile(scenarioPath); err != nil {
					return err
				}
			}
			return run(ctx, cfg, set, cmd.OutOrStdout(), statusOut)
		},
	}

	cmd.Flags().StringVarP(&scenarioPath, "scenario", "s", "", "Scenario set document (YAML)")
	cmd.Flags().StringVar(&statusOut, "status-out", "", "Write the scenario set with its run status to this file")
	cmd.Flags().Float64("moisture-target", 0, "Moisture fraction feeds are hydrated toward")
	cmd.Flags().String("properties", "", "Feed property table (CSV)")
	cmd.Flags().String("yields", "", "Yield table (CSV)")
	cmd.Flags().String("db", "", "SQLite database holding the property and yield tables")
	cmd.Flags().String("out-db", "", "SQLite database receiving the results")
	cmd.Flags().String("metrics-out", "", "Write a Prometheus text snapshot of the run metrics to this file")
	cmd.Flags().StringSlice("objectives", nil, "Objective columns, e.g. total_heat_kwh,co2,impact:climate_change")
	cmd.Flags().String("strategy", "", "Ranking strategy (front, partition)")
	cmd.Flags().String("lcia-factors", "", "LCIA characterization factors (YAML)")
	return cmd
}

func run(ctx context.Context, cfg *config.Config, set *v1alpha1.ScenarioSet, out io.Writer, statusOut string) (retErr error) {
	logger := logging.FromContext(ctx)

	sourceCfg := collector.SourceConfig{
		Type:           collector.SourceCSV,
		PropertiesPath: cfg.Sources.Properties,
		YieldsPath:     cfg.Sources.Yields,
		SQLitePath:     cfg.Sources.SQLite,
	}
	if cfg.Sources.SQLite != "" {
		sourceCfg.Type = collector.SourceSQLite
	}
	props, yields, closer, err := collector.NewSources(ctx, sourceCfg)
	if err != nil {
		return err
	}
	defer func() { _ = closer.Close() }()

	table, err := yieldtable.Load(ctx, yields)
	if err != nil {
		return err
	}

	model, cache, err := optimizer.NewModel(cfg.Model)
	if err != nil {
		return err
	}

	settings := &common.GlobalConfig{}
	settings.UpdateMoistureTarget(cfg.MoistureTarget)
	settings.UpdateObjectives(cfg.Objectives)
	settings.UpdateFeedstockConfig(cfg.FeedstockOverrides())

	strategy, err := ranker.ParseStrategy(cfg.Strategy)
	if err != nil {
		return err
	}

	var factors *lcia.Factors
	if cfg.LCIA.Factors != "" {
		if factors, err = lcia.LoadFactorsFile(cfg.LCIA.Factors); err != nil {
			return err
		}
	}

	objectiveNames := cfg.Objectives
	if set != nil && len(set.Spec.Objectives) > 0 {
		objectiveNames = set.Spec.Objectives
	}
	var sink actuator.Sink = actuator.NewMemorySink()
	runID := ""
	if cfg.Output.SQLite != "" {
		sqliteSink, err := actuator.NewSQLiteSink(ctx, cfg.Output.SQLite, objectiveNames)
		if err != nil {
			return err
		}
		sink = sqliteSink
		runID = sqliteSink.RunID()
	}
	defer func() {
		if err := sink.Close(); err != nil && retErr == nil {
			retErr = err
		}
	}()
	metrics := actuator.NewMetricsEmitter()

	opt, err := optimizer.NewOptimizer(&optimizer.OptimizerConfig{
		Properties:            props,
		Yields:                table,
		Model:                 model,
		Settings:              settings,
		Conditions:            cfg.Conditions,
		Strategy:              strategy,
		Factors:               factors,
		ExcludeTransportation: cfg.LCIA.ExcludeTransportation,
		Sink:                  sink,
		Metrics:               metrics,
	})
	if err != nil {
		return err
	}

	result, runErr := opt.Optimize(ctx, set)
	if cfg.Output.Metrics != "" {
		if err := writeMetrics(cfg.Output.Metrics, metrics); err != nil {
			logger.Error(err, "Failed to write metrics snapshot", "path", cfg.Output.Metrics)
		}
	}
	if runErr != nil {
		return runErr
	}
	logger.V(logging.DEBUG).Info("Wall solutions cached", "temperatures", cache.Len(), "solves", cache.Misses())

	if err := printRanking(out, result.Objectives, result.Ranking); err != nil {
		return err
	}

	if statusOut != "" {
		if set == nil {
			set = v1alpha1.NewScenarioSet("default")
		}
		set.Status = result.Status()
		set.Status.RunID = runID
		if err := writeStatus(statusOut, set); err != nil {
			return err
		}
	}
	return nil
}

func writeMetrics(path string, metrics *actuator.MetricsEmitter) (retErr error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if err := f.Close(); err != nil && retErr == nil {
			retErr = err
		}
	}()
	return metrics.WriteText(f)
}

func writeStatus(path string, set *v1alpha1.ScenarioSet) (retErr error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if err := f.Close(); err != nil && retErr == nil {
			retErr = err
		}
	}()
	return set.Encode(f)
}

// printRanking writes non-dominated rows first, then dominated rows.
func printRanking(out io.Writer, objectives []optimizer.Objective, ranking *ranker.Ranking) error {
	names := make([]string, len(objectives))
	for i, o := range objectives {
		names[i] = o.Name
	}
	return printRows(out, names, ranking)
}

func printRows(out io.Writer, columns []string, ranking *ranker.Ranking) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprint(w, "SCENARIO")
	for _, c := range columns {
		fmt.Fprintf(w, "\t%s", c)
	}
	fmt.Fprintln(w, "\tFRONT")
	write := func(rows []solver.Row, front bool) {
		for _, row := range rows {
			fmt.Fprint(w, row.Name)
			for _, v := range row.Objectives {
				fmt.Fprintf(w, "\t%s", strconv.FormatFloat(v, 'g', 6, 64))
			}
			fmt.Fprintf(w, "\t%t\n", front)
		}
	}
	write(ranking.NonDominated, true)
	write(ranking.Dominated, false)
	return w.Flush()
}
