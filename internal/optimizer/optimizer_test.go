package optimizer

import (
	"bytes"
	"context"
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/hydrochar-lab/htc-model/api/v1alpha1"
	"github.com/hydrochar-lab/htc-model/internal/actuator"
	"github.com/hydrochar-lab/htc-model/internal/collector"
	"github.com/hydrochar-lab/htc-model/internal/config"
	"github.com/hydrochar-lab/htc-model/internal/engines/common"
	"github.com/hydrochar-lab/htc-model/internal/engines/process"
	"github.com/hydrochar-lab/htc-model/internal/lcia"
	"github.com/hydrochar-lab/htc-model/internal/yieldtable"
	modelspec "github.com/hydrochar-lab/htc-model/pkg/config"
	"github.com/hydrochar-lab/htc-model/pkg/core"
)

type staticProperties struct {
	rows []collector.PropertyRow
	err  error
}

func (s *staticProperties) Name() string { return "static" }

func (s *staticProperties) Properties(context.Context) ([]collector.PropertyRow, error) {
	return s.rows, s.err
}

func setYields(table *yieldtable.Table, feed string, gas, hc, hhv float64) {
	table.Set(feed, 220, 1, collector.ParamGasYield, gas)
	table.Set(feed, 220, 1, collector.ParamHCYield, hc)
	table.Set(feed, 220, 1, collector.ParamHHVHC, hhv)
}

func findBalance(balances []process.Balance, name string) (process.Balance, bool) {
	for _, b := range balances {
		if b.Scenario.Name == name {
			return b, true
		}
	}
	return process.Balance{}, false
}

var _ = Describe("Optimizer", func() {
	var (
		ctx      context.Context
		props    *staticProperties
		table    *yieldtable.Table
		settings *common.GlobalConfig
		sink     *actuator.MemorySink
		metrics  *actuator.MetricsEmitter
		cfg      *OptimizerConfig
	)

	BeforeEach(func() {
		ctx = context.Background()
		props = &staticProperties{rows: []collector.PropertyRow{
			{Feed: "SRU", Properties: core.Properties{HHV: 18, HHVStd: 0.4, Moisture: 0.5, MoistureStd: 0.02, Density: 800}},
			{Feed: "DCW", Properties: core.Properties{HHV: 20, HHVStd: 0.3, Moisture: 0.9, MoistureStd: 0.01, Density: 1000}},
		}}

		table = yieldtable.NewTable()
		setYields(table, "SRU", 0.1, 0.5, 22)
		setYields(table, "DCW", 0.05, 0.4, 21)
		setYields(table, "stdSRU50_rawDCW50", 0.08, 0.45, 21.5)

		settings = &common.GlobalConfig{}
		settings.UpdateMoistureTarget(core.DefaultMoistureTarget)
		settings.UpdateObjectives([]string{"total_heat_kwh", "co2"})

		sink = actuator.NewMemorySink()
		metrics = actuator.NewMetricsEmitter()

		model, _, err := NewModel(modelspec.DefaultModelSpec())
		Expect(err).NotTo(HaveOccurred())

		cfg = &OptimizerConfig{
			Properties: props,
			Yields:     table,
			Model:      model,
			Settings:   settings,
			Conditions: config.Conditions{Temps: []float64{220}, Times: []float64{1}},
			Sink:       sink,
			Metrics:    metrics,
		}
	})

	Context("NewOptimizer", func() {
		It("should reject a nil config", func() {
			_, err := NewOptimizer(nil)
			Expect(err).To(HaveOccurred())
		})

		It("should reject missing collaborators", func() {
			cfg.Model = nil
			_, err := NewOptimizer(cfg)
			Expect(err).To(HaveOccurred())
		})
	})

	Context("with a blend", func() {
		var set *v1alpha1.ScenarioSet

		BeforeEach(func() {
			set = v1alpha1.NewScenarioSet("blends")
			set.Spec.Blends = []string{"stdSRU50_rawDCW50"}
		})

		It("should seed, discover, evaluate and rank every scenario", func() {
			opt, err := NewOptimizer(cfg)
			Expect(err).NotTo(HaveOccurred())

			result, err := opt.Optimize(ctx, set)
			Expect(err).NotTo(HaveOccurred())

			Expect(result.Variants).To(HaveLen(1))
			Expect(result.Variants[0].Name).To(Equal("stdSRU"))
			Expect(result.Registry.Has("stdDCW", 220, 1)).To(BeFalse())

			Expect(result.Balances).To(HaveLen(4))
			Expect(result.Rows).To(HaveLen(4))
			Expect(result.Ranking.NonDominated).NotTo(BeEmpty())
			Expect(len(result.Ranking.NonDominated) + len(result.Ranking.Dominated)).To(Equal(4))

			Expect(sink.Balances()).To(HaveLen(4))
			Expect(sink.Records()).To(HaveLen(4))
			Expect(sink.Ranking()).To(BeIdenticalTo(result.Ranking))
		})

		It("should evaluate raw feeds as received and hydrate standardized variants", func() {
			opt, err := NewOptimizer(cfg)
			Expect(err).NotTo(HaveOccurred())
			result, err := opt.Optimize(ctx, set)
			Expect(err).NotTo(HaveOccurred())

			raw, ok := findBalance(result.Balances, "rawSRU")
			Expect(ok).To(BeTrue())
			Expect(raw.Quantity).To(BeNumerically("~", 4, 1e-9))
			Expect(raw.WaterAdded).To(BeZero())

			std, ok := findBalance(result.Balances, "stdSRU")
			Expect(ok).To(BeTrue())
			Expect(std.Quantity).To(BeNumerically("~", 4, 1e-9))
			Expect(std.WaterAdded).To(BeNumerically("~", 1.2, 1e-9))
			Expect(std.RampHeatMJ).To(BeNumerically(">", raw.RampHeatMJ))
		})

		It("should resolve the blend from hydrated constituents", func() {
			opt, err := NewOptimizer(cfg)
			Expect(err).NotTo(HaveOccurred())
			result, err := opt.Optimize(ctx, set)
			Expect(err).NotTo(HaveOccurred())

			blend, err := result.Registry.Get("stdSRU50_rawDCW50", 220, 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(blend.PreHydrationMoisture).To(BeNumerically("~", 0.875, 1e-9))
			Expect(blend.HHV).To(BeNumerically("~", 19, 1e-9))
			Expect(blend.HHVStd).To(BeNumerically("~", math.Sqrt(0.2*0.2+0.15*0.15), 1e-9))

			// Weighted constituent quantities: 0.5*4 (stdSRU) + 0.5*25 (rawDCW).
			b, ok := findBalance(result.Balances, "stdSRU50_rawDCW50")
			Expect(ok).To(BeTrue())
			Expect(blend.Quantity).To(BeNumerically("~", 14.5, 1e-9))
			Expect(b.Quantity).To(BeNumerically("~", 14.5, 1e-9))
			Expect(b.WaterAdded).To(BeZero())
			Expect(b.HydrocharMass).To(BeNumerically("~", 14.5*(1-0.875)*0.45, 1e-9))
			Expect(b.FeedEnergyMJ).To(BeNumerically("~", 19*(1-0.875)*14.5, 1e-9))
		})

		It("should conserve mass and yield one unit of hydrochar per elementary scenario", func() {
			opt, err := NewOptimizer(cfg)
			Expect(err).NotTo(HaveOccurred())
			result, err := opt.Optimize(ctx, set)
			Expect(err).NotTo(HaveOccurred())

			for _, b := range result.Balances {
				Expect(b.HydrocharMass+b.CO2+b.ProcessWater).To(BeNumerically("~", b.TotalWeight, 1e-9), b.Scenario.String())
				if core.IsComposite(b.Scenario.Name) {
					continue
				}
				Expect(b.HydrocharMass).To(BeNumerically("~", 1, 1e-9), b.Scenario.String())
			}
		})

		It("should evaluate only the selected feeds and still resolve the blend", func() {
			set.Spec.Feeds = []string{"rawSRU"}
			opt, err := NewOptimizer(cfg)
			Expect(err).NotTo(HaveOccurred())
			result, err := opt.Optimize(ctx, set)
			Expect(err).NotTo(HaveOccurred())

			Expect(result.Balances).To(HaveLen(2))
			_, ok := findBalance(result.Balances, "stdSRU")
			Expect(ok).To(BeFalse())

			std, err := result.Registry.Get("stdSRU", 220, 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(std.Hydrated).To(BeTrue())
		})

		It("should fail with the scenario when yields are missing", func() {
			set.Spec.Blends = []string{"rawSRU50_rawDCW50"}
			opt, err := NewOptimizer(cfg)
			Expect(err).NotTo(HaveOccurred())

			_, err = opt.Optimize(ctx, set)
			Expect(err).To(HaveOccurred())
			Expect(errors.Is(err, core.ErrNotFound)).To(BeTrue())

			var scenarioErr *ScenarioError
			Expect(errors.As(err, &scenarioErr)).To(BeTrue())
			Expect(scenarioErr.Scenario).To(Equal(core.Key{Name: "rawSRU50_rawDCW50", Temp: 220, Time: 1}))

			var buf bytes.Buffer
			Expect(metrics.WriteText(&buf)).To(Succeed())
			Expect(buf.String()).To(ContainSubstring(`htc_scenarios_failed_total{reason="not_found"} 1`))
		})
	})

	Context("with feedstock overrides", func() {
		It("should drop excluded feeds", func() {
			settings.UpdateFeedstockConfig(config.ParseFeedstockConfigMap(map[string]string{
				"dcw": "feed: DCW\nexclude: true\n",
			}))
			opt, err := NewOptimizer(cfg)
			Expect(err).NotTo(HaveOccurred())

			result, err := opt.Optimize(ctx, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Registry.Has("rawDCW", 220, 1)).To(BeFalse())
			Expect(result.Balances).To(HaveLen(2))
		})

		It("should apply the heating rate of the feed", func() {
			opt, err := NewOptimizer(cfg)
			Expect(err).NotTo(HaveOccurred())
			baseline, err := opt.Optimize(ctx, nil)
			Expect(err).NotTo(HaveOccurred())

			settings.UpdateFeedstockConfig(config.ParseFeedstockConfigMap(map[string]string{
				"sru": "feed: stdSRU\nheatingRateW: 3000\n",
			}))
			tuned, err := opt.Optimize(ctx, nil)
			Expect(err).NotTo(HaveOccurred())

			before, _ := findBalance(baseline.Balances, "stdSRU")
			after, _ := findBalance(tuned.Balances, "stdSRU")
			Expect(after.RampTimeHr).To(BeNumerically("~", before.RampTimeHr/2, 1e-9))

			rawBefore, _ := findBalance(baseline.Balances, "rawSRU")
			rawAfter, _ := findBalance(tuned.Balances, "rawSRU")
			Expect(rawAfter.RampTimeHr).To(Equal(rawBefore.RampTimeHr))
		})
	})

	Context("with impact objectives", func() {
		It("should rank on characterized flows", func() {
			factors := lcia.NewFactors()
			Expect(factors.Set(lcia.ClimateChange, lcia.ProcessCO2HTC, 1, "kg CO2-eq")).To(Succeed())
			cfg.Factors = factors

			set := v1alpha1.NewScenarioSet("impacts")
			set.Spec.Objectives = []string{"impact:climate_change", "hydrochar_hhv"}
			set.Spec.Strategy = "partition"

			opt, err := NewOptimizer(cfg)
			Expect(err).NotTo(HaveOccurred())
			result, err := opt.Optimize(ctx, set)
			Expect(err).NotTo(HaveOccurred())

			for i, b := range result.Balances {
				Expect(result.Rows[i].Objectives[0]).To(BeNumerically("~", b.CO2, 1e-12))
				Expect(result.Rows[i].Objectives[1]).To(Equal(b.HydrocharHHV))
			}
			status := result.Status()
			Expect(status.Evaluated).To(Equal(len(result.Balances)))
			Expect(len(status.NonDominated) + len(status.Dominated)).To(Equal(len(result.Balances)))
		})

		It("should reject unknown objectives", func() {
			set := v1alpha1.NewScenarioSet("bad")
			set.Spec.Objectives = []string{"impact:noise"}
			opt, err := NewOptimizer(cfg)
			Expect(err).NotTo(HaveOccurred())
			_, err = opt.Optimize(ctx, set)
			Expect(errors.Is(err, core.ErrNotFound)).To(BeTrue())
		})
	})

	It("should surface property source failures", func() {
		props.err = errors.New("disk gone")
		opt, err := NewOptimizer(cfg)
		Expect(err).NotTo(HaveOccurred())
		_, err = opt.Optimize(ctx, nil)
		Expect(err).To(MatchError(ContainSubstring("disk gone")))
	})
})
