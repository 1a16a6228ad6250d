package feedname

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/hydrochar-lab/htc-model/pkg/core"
)

func seedRegistry(feeds map[string]float64, temps, times []float64) *core.Registry {
	registry := core.NewRegistry()
	for _, name := range []string{"rawSRU", "rawBSG", "rawDCW"} {
		moisture, ok := feeds[name]
		if !ok {
			continue
		}
		for _, temp := range temps {
			for _, time := range times {
				f := core.NewFeedstock(name, temp, time, core.Properties{HHV: 18, Moisture: moisture, Density: 800})
				Expect(registry.Add(f)).To(Succeed())
			}
		}
	}
	return registry
}

var _ = Describe("DiscoverStandardVariants", func() {
	var (
		ctx      context.Context
		registry *core.Registry
	)

	BeforeEach(func() {
		ctx = context.Background()
		registry = seedRegistry(map[string]float64{
			"rawSRU": 0.62,
			"rawBSG": 0.78,
			"rawDCW": 0.91,
		}, []float64{190, 220}, []float64{1})
	})

	Context("with the default target", func() {
		It("should create variants only for feeds below the target", func() {
			created, err := DiscoverStandardVariants(ctx, registry, nil, DefaultNamingConfig())
			Expect(err).NotTo(HaveOccurred())
			Expect(created).To(HaveLen(4))

			Expect(registry.Has("stdSRU", 190, 1)).To(BeTrue())
			Expect(registry.Has("stdBSG", 220, 1)).To(BeTrue())
			Expect(registry.Has("stdDCW", 190, 1)).To(BeFalse())
		})

		It("should copy the source properties and apply the target", func() {
			_, err := DiscoverStandardVariants(ctx, registry, nil, DefaultNamingConfig())
			Expect(err).NotTo(HaveOccurred())

			std, err := registry.Get("stdSRU", 220, 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(std.Moisture).To(Equal(0.62))
			Expect(std.MoistureTarget).To(Equal(core.DefaultMoistureTarget))
			Expect(std.Hydrated).To(BeFalse())
		})

		It("should be idempotent", func() {
			_, err := DiscoverStandardVariants(ctx, registry, nil, DefaultNamingConfig())
			Expect(err).NotTo(HaveOccurred())
			again, err := DiscoverStandardVariants(ctx, registry, nil, DefaultNamingConfig())
			Expect(err).NotTo(HaveOccurred())
			Expect(again).To(BeEmpty())
			Expect(registry.Len()).To(Equal(10))
		})
	})

	Context("with per-feed targets", func() {
		It("should use the target of each feed", func() {
			targets := map[string]float64{"rawBSG": 0.7}
			targetFor := func(feed string) float64 {
				if t, ok := targets[feed]; ok {
					return t
				}
				return 0.95
			}
			created, err := DiscoverStandardVariants(ctx, registry, targetFor, DefaultNamingConfig())
			Expect(err).NotTo(HaveOccurred())

			names := map[string]bool{}
			for _, v := range created {
				names[v.Name] = true
				Expect(v.Source).To(HavePrefix("raw"))
			}
			Expect(names).To(HaveKey("stdSRU"))
			Expect(names).To(HaveKey("stdDCW"))
			Expect(names).NotTo(HaveKey("stdBSG"))

			dcw, err := registry.Get("stdDCW", 190, 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(dcw.MoistureTarget).To(Equal(0.95))
		})
	})

	Context("with hydrated or non-raw feeds", func() {
		It("should skip them", func() {
			sru, err := registry.Get("rawSRU", 190, 1)
			Expect(err).NotTo(HaveOccurred())
			sru.Quantity = 1
			sru.AddWater()

			Expect(registry.Add(core.NewFeedstock("SRU50BSG50", 190, 1, core.Properties{Moisture: 0.5}))).To(Succeed())

			created, err := DiscoverStandardVariants(ctx, registry, nil, DefaultNamingConfig())
			Expect(err).NotTo(HaveOccurred())
			Expect(registry.Has("stdSRU", 190, 1)).To(BeFalse())
			Expect(registry.Has("stdSRU", 220, 1)).To(BeTrue())
			for _, v := range created {
				Expect(v.Source).NotTo(Equal("SRU50BSG50"))
			}
		})
	})

	It("should reject a nil registry", func() {
		_, err := DiscoverStandardVariants(ctx, nil, nil, DefaultNamingConfig())
		Expect(err).To(MatchError(core.ErrInvalidParameter))
	})
})
