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

package e2e

import (
	"context"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/hydrochar-lab/htc-model/api/v1alpha1"
	"github.com/hydrochar-lab/htc-model/internal/actuator"
	"github.com/hydrochar-lab/htc-model/internal/collector"
	"github.com/hydrochar-lab/htc-model/internal/config"
	"github.com/hydrochar-lab/htc-model/internal/engines/common"
	"github.com/hydrochar-lab/htc-model/internal/engines/process"
	"github.com/hydrochar-lab/htc-model/internal/engines/ranker"
	"github.com/hydrochar-lab/htc-model/internal/lcia"
	"github.com/hydrochar-lab/htc-model/internal/optimizer"
	"github.com/hydrochar-lab/htc-model/internal/yieldtable"
	"github.com/hydrochar-lab/htc-model/pkg/core"
	"github.com/hydrochar-lab/htc-model/pkg/solver"
)

const ambientK = 293.15

var _ = Describe("Scenario pipeline", Ordered, func() {
	var (
		ctx    context.Context
		store  *collector.SQLiteStore
		sink   *actuator.SQLiteSink
		cache  *common.WallSolutionCache
		result *optimizer.Result
	)

	objectives := []string{"total_heat_kwh", "electricity_kwh", "co2", "impact:climate_change"}

	BeforeAll(func() {
		ctx = context.Background()

		By("importing the CSV fixtures into SQLite")
		props, err := collector.NewCSVPropertySource(propertiesPath).Properties(ctx)
		Expect(err).NotTo(HaveOccurred())
		yields, err := collector.NewCSVYieldSource(yieldsPath).Yields(ctx)
		Expect(err).NotTo(HaveOccurred())

		store, err = collector.OpenSQLiteStore(ctx, filepath.Join(artifactsDir, "inputs.db"))
		Expect(err).NotTo(HaveOccurred())
		Expect(store.Import(ctx, props, yields)).To(Succeed())

		By("building the model from the default configuration")
		cfg := config.Default()
		table, err := yieldtable.Load(ctx, store)
		Expect(err).NotTo(HaveOccurred())
		var model *process.Model
		model, cache, err = optimizer.NewModel(cfg.Model)
		Expect(err).NotTo(HaveOccurred())

		settings := &common.GlobalConfig{}
		settings.UpdateMoistureTarget(cfg.MoistureTarget)
		settings.UpdateObjectives(objectives)

		factors, err := lcia.LoadFactorsFile(factorsPath)
		Expect(err).NotTo(HaveOccurred())

		sink, err = actuator.NewSQLiteSink(ctx, filepath.Join(artifactsDir, "results.db"), objectives)
		Expect(err).NotTo(HaveOccurred())

		opt, err := optimizer.NewOptimizer(&optimizer.OptimizerConfig{
			Properties: store,
			Yields:     table,
			Model:      model,
			Settings:   settings,
			Conditions: cfg.Conditions,
			Strategy:   ranker.FrontStrategy,
			Factors:    factors,
			Sink:       sink,
			Metrics:    actuator.NewMetricsEmitter(),
		})
		Expect(err).NotTo(HaveOccurred())

		By("running the brewery blend scenario set")
		set := v1alpha1.NewScenarioSet("brewery-blends")
		set.Spec.Blends = []string{"stdBSG50_rawSRU50", "rawBSG40_rawDCW30_rawSRU30"}
		result, err = opt.Optimize(ctx, set)
		Expect(err).NotTo(HaveOccurred())
	})

	AfterAll(func() {
		if sink != nil {
			Expect(sink.Close()).To(Succeed())
		}
		if store != nil {
			Expect(store.Close()).To(Succeed())
		}
	})

	It("should evaluate every feed, variant and blend on the full grid", func() {
		// 3 raw feeds, 2 standardized variants and 2 blends at 6 conditions.
		Expect(result.Balances).To(HaveLen(42))
		Expect(result.Variants).To(HaveLen(12))
		Expect(result.Registry.Has("stdDCW", 190, 1)).To(BeFalse())
	})

	It("should solve the reactor wall once per temperature", func() {
		Expect(cache.Len()).To(Equal(3))
		Expect(cache.Misses()).To(Equal(3))
	})

	It("should close the mass balance of every scenario", func() {
		for _, b := range result.Balances {
			if !core.IsComposite(b.Scenario.Name) {
				Expect(b.HydrocharMass).To(BeNumerically("~", 1, 1e-9), b.Scenario.String())
			}
			Expect(b.FeedEnergyMJ).To(BeNumerically(">", 0), b.Scenario.String())
			Expect(b.HydrocharMass+b.CO2+b.ProcessWater).To(BeNumerically("~", b.TotalWeight, 1e-9), b.Scenario.String())
			Expect(b.WallTempK).To(BeNumerically(">", ambientK), b.Scenario.String())
			Expect(b.WallTempK).To(BeNumerically("<", b.Scenario.Temp+273.15), b.Scenario.String())
			Expect(b.TotalHeatKWh).To(BeNumerically(">", 0), b.Scenario.String())
		}
	})

	It("should scale reaction heat with temperature and residence time", func() {
		heat := make(map[core.Key]float64, len(result.Balances))
		for _, b := range result.Balances {
			heat[b.Scenario] = b.ReactionHeatMJ
		}
		for _, name := range []string{"rawSRU", "stdBSG", "stdBSG50_rawSRU50"} {
			at := func(temp, time float64) float64 {
				v, ok := heat[core.Key{Name: name, Temp: temp, Time: time}]
				Expect(ok).To(BeTrue(), name)
				return v
			}
			Expect(at(190, 1)).To(BeNumerically("<", at(220, 1)))
			Expect(at(220, 1)).To(BeNumerically("<", at(250, 1)))
			Expect(at(220, 3)).To(BeNumerically("~", 3*at(220, 1), 1e-9))
		}
	})

	It("should characterize climate change from the process flows", func() {
		for i, b := range result.Balances {
			record, err := result.Records.Get(b.Scenario.String())
			Expect(err).NotTo(HaveOccurred())

			co2, err := record.Score(lcia.ClimateChange, lcia.ProcessCO2HTC)
			Expect(err).NotTo(HaveOccurred())
			Expect(co2).To(BeNumerically("~", b.CO2, 1e-12))

			total, err := record.Total(lcia.ClimateChange, false)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Rows[i].Objectives[3]).To(Equal(total))
		}
	})

	It("should agree with the partition of the objective rows", func() {
		nonDominated, dominated, err := solver.Partition(result.Rows)
		Expect(err).NotTo(HaveOccurred())
		Expect(ranker.Names(result.Ranking.NonDominated)).To(Equal(ranker.Names(nonDominated)))
		Expect(ranker.Names(result.Ranking.Dominated)).To(Equal(ranker.Names(dominated)))
	})

	It("should persist the run in the result database", func() {
		var scenarios, rankings, scores int
		db := sink.DB()
		Expect(db.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM scenario_results WHERE run_id = ?`, sink.RunID()).Scan(&scenarios)).To(Succeed())
		Expect(db.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM rankings WHERE run_id = ?`, sink.RunID()).Scan(&rankings)).To(Succeed())
		Expect(db.QueryRowContext(ctx,
			`SELECT COUNT(DISTINCT scenario) FROM lcia_scores WHERE run_id = ? AND impact = 'climate_change'`,
			sink.RunID()).Scan(&scores)).To(Succeed())

		Expect(scenarios).To(Equal(42))
		Expect(rankings).To(Equal(42))
		Expect(scores).To(Equal(42))
	})
})
