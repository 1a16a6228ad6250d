package feedname

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("DetectKind", func() {
	var defaultConfig NamingConfig

	BeforeEach(func() {
		defaultConfig = DefaultNamingConfig()
	})

	Context("with the default convention", func() {
		It("should detect raw feeds", func() {
			Expect(DetectKind("rawSRU", defaultConfig)).To(Equal(KindRaw))
		})

		It("should detect standardized feeds", func() {
			Expect(DetectKind("stdBSG", defaultConfig)).To(Equal(KindStandard))
		})

		It("should detect composites by their percentages", func() {
			Expect(DetectKind("SRU50BSG50", defaultConfig)).To(Equal(KindComposite))
			Expect(DetectKind("rawSRU50_rawBSG50", defaultConfig)).To(Equal(KindComposite))
		})

		It("should return unknown for bare names", func() {
			Expect(DetectKind("SRU", defaultConfig)).To(Equal(KindUnknown))
			Expect(DetectKind("", defaultConfig)).To(Equal(KindUnknown))
		})

		It("should not treat a bare prefix as a feed", func() {
			Expect(DetectKind("raw", defaultConfig)).To(Equal(KindUnknown))
		})
	})

	Context("with custom prefixes", func() {
		It("should honour every configured prefix", func() {
			cfg := NamingConfig{RawPrefixes: []string{"raw", "r_"}, StdPrefixes: []string{"std"}}
			Expect(DetectKind("r_POM", cfg)).To(Equal(KindRaw))
			Expect(BaseName("r_POM", cfg)).To(Equal("POM"))
		})

		It("should fall back to the defaults when building names", func() {
			Expect(StandardName("SRU", NamingConfig{})).To(Equal("stdSRU"))
			Expect(RawName("SRU", NamingConfig{})).To(Equal("rawSRU"))
		})
	})
})

var _ = Describe("BaseName", func() {
	It("should strip raw and std prefixes", func() {
		cfg := DefaultNamingConfig()
		Expect(BaseName("rawSRU", cfg)).To(Equal("SRU"))
		Expect(BaseName("stdSRU", cfg)).To(Equal("SRU"))
	})

	It("should keep composite and unknown names", func() {
		cfg := DefaultNamingConfig()
		Expect(BaseName("SRU50BSG50", cfg)).To(Equal("SRU50BSG50"))
		Expect(BaseName("SRU", cfg)).To(Equal("SRU"))
	})
})
