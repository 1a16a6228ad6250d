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
	"fmt"
	"os"
	"path/filepath"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/hydrochar-lab/htc-model/internal/logging"
)

var (
	// Optional Environment Variables:
	// - E2E_KEEP_ARTIFACTS=true: Keeps the fixture and result directory after the suite.
	// - E2E_ARTIFACTS_DIR: Writes fixtures and results there instead of a temporary directory.
	keepArtifacts = os.Getenv("E2E_KEEP_ARTIFACTS") == "true"
	artifactsDir  = os.Getenv("E2E_ARTIFACTS_DIR")

	propertiesPath string
	yieldsPath     string
	factorsPath    string
)

// Measured feed properties. Moisture is a mass fraction.
const propertiesFixture = `Feed,HHV,HHV_std,moisture,moisture_std,density
SRU,17.2,0.3,0.62,0.02,720
BSG,20.1,0.4,0.78,0.01,980
DCW,16.5,0.2,0.91,0.03,1010
`

// Yields of every feed and blend over the full condition grid.
const yieldsFixture = `feed,time,parameter,190C,220C,250C
SRU,1,HC_yield,0.61,0.55,0.48
SRU,1,gas_yield,0.04,0.06,0.09
SRU,1,HHV_HC,21.3,22.8,24.1
SRU,3,HC_yield,0.57,0.50,0.44
SRU,3,gas_yield,0.05,0.08,0.11
SRU,3,HHV_HC,22.0,23.5,25.0
BSG,1,HC_yield,0.66,0.60,0.52
BSG,1,gas_yield,0.03,0.05,0.08
BSG,1,HHV_HC,23.1,24.6,26.0
BSG,3,HC_yield,0.62,0.56,0.49
BSG,3,gas_yield,0.04,0.07,0.10
BSG,3,HHV_HC,23.9,25.2,26.7
DCW,1,HC_yield,0.52,0.46,0.40
DCW,1,gas_yield,0.05,0.07,0.10
DCW,1,HHV_HC,19.8,21.0,22.4
DCW,3,HC_yield,0.49,0.43,0.37
DCW,3,gas_yield,0.06,0.09,0.12
DCW,3,HHV_HC,20.4,21.7,23.0
stdBSG50_rawSRU50,1,HC_yield,0.63,0.57,0.50
stdBSG50_rawSRU50,1,gas_yield,0.04,0.06,0.08
stdBSG50_rawSRU50,1,HHV_HC,22.1,23.6,25.0
stdBSG50_rawSRU50,3,HC_yield,0.59,0.53,0.46
stdBSG50_rawSRU50,3,gas_yield,0.05,0.07,0.10
stdBSG50_rawSRU50,3,HHV_HC,22.9,24.3,25.8
rawBSG40_rawDCW30_rawSRU30,1,HC_yield,0.60,0.54,0.47
rawBSG40_rawDCW30_rawSRU30,1,gas_yield,0.04,0.06,0.09
rawBSG40_rawDCW30_rawSRU30,1,HHV_HC,21.6,23.0,24.4
rawBSG40_rawDCW30_rawSRU30,3,HC_yield,0.56,0.50,0.43
rawBSG40_rawDCW30_rawSRU30,3,gas_yield,0.05,0.08,0.11
rawBSG40_rawDCW30_rawSRU30,3,HHV_HC,22.3,23.8,25.2
`

// Characterization factors per unit of process flow.
const factorsFixture = `climate_change:
  Electricity - HTC: {factor: 0.45, unit: kg CO2-eq}
  Heat-HTC: {factor: 0.25, unit: kg CO2-eq}
  CO2 - HTC: {factor: 1.0, unit: kg CO2-eq}
  Electricity - Post-Processing: {factor: 0.45, unit: kg CO2-eq}
  Transportation: {factor: 0.02, unit: kg CO2-eq}
water_use:
  Water: {factor: 0.001, unit: m3}
  Wastewater: {factor: -0.0008, unit: m3}
`

// TestE2E runs the end-to-end pipeline suite: CSV fixtures are imported into
// SQLite, every scenario of the full condition grid is evaluated and the
// results are read back from the result database.
func TestE2E(t *testing.T) {
	logging.NewTestLogger()
	RegisterFailHandler(Fail)
	_, _ = fmt.Fprintf(GinkgoWriter, "Starting htc-model pipeline e2e suite\n")
	RunSpecs(t, "e2e suite")
}

var _ = BeforeSuite(func() {
	if artifactsDir == "" {
		dir, err := os.MkdirTemp("", "htc-e2e-")
		Expect(err).NotTo(HaveOccurred())
		artifactsDir = dir
	}
	Expect(os.MkdirAll(artifactsDir, 0o750)).To(Succeed())

	By("writing the input fixtures")
	propertiesPath = filepath.Join(artifactsDir, "properties.csv")
	yieldsPath = filepath.Join(artifactsDir, "yields.csv")
	factorsPath = filepath.Join(artifactsDir, "factors.yaml")
	Expect(os.WriteFile(propertiesPath, []byte(propertiesFixture), 0o600)).To(Succeed())
	Expect(os.WriteFile(yieldsPath, []byte(yieldsFixture), 0o600)).To(Succeed())
	Expect(os.WriteFile(factorsPath, []byte(factorsFixture), 0o600)).To(Succeed())
})

var _ = AfterSuite(func() {
	if keepArtifacts {
		_, _ = fmt.Fprintf(GinkgoWriter, "Keeping artifacts in %s\n", artifactsDir)
		return
	}
	By("removing the artifacts directory")
	_ = os.RemoveAll(artifactsDir)
})
