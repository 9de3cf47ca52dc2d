package loader

import (
	"errors"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/industrial-decarb/pathway-optimizer/pkg/core"
)

const validScenario = `
bands:
  - id: steam
    activity: 100
    emissionIntensity: 0.5
technologies:
  - id: electric
    name: Electric cracker
    band: steam
    lifetime: 25
    commercialYear: 2030
    rampLimit: 40
    abatementFactor:
      2030: 0.5
  - id: h2
    band: steam
    lifetime: 20
    commercialYear: 2032
    adoptionCap:
      2030: 0.2
      2040: 0.8
    abatementFactor:
      2030: 0.4
costs:
  - tech: electric
    years:
      2030:
        capex: 10
        fixedOpex: 1
        variableOpex: 2
  - tech: h2
    years:
      2030:
        capex: 8
        fixedOpex: 1
        variableOpex: -0.5
        fuelPremium: 1
targets:
  2030: 50
  2034: 35
links:
  - kind: MutuallyExclusive
    techs: [electric, h2]
`

var _ = Describe("Parse", func() {
	Context("with a complete scenario", func() {
		It("builds the full input tables", func() {
			in, err := Parse([]byte(validScenario))
			Expect(err).NotTo(HaveOccurred())

			Expect(in.Bands).To(HaveKey("steam"))
			Expect(in.Bands["steam"].Activity).To(Equal(100.0))
			Expect(in.Bands["steam"].Emissions()).To(Equal(50.0))

			Expect(in.Technologies).To(HaveLen(2))
			Expect(in.Technologies[0].ID).To(Equal("electric"))
			Expect(in.Technologies[0].Name).To(Equal("Electric cracker"))
			Expect(in.Technologies[1].AdoptionCap).To(HaveKeyWithValue(2040, 0.8))

			Expect(in.Costs["h2"][2030].VariableOpex).To(Equal(-0.5))
			Expect(in.Targets).To(HaveKeyWithValue(2034, 35.0))

			Expect(in.Links).To(HaveLen(1))
			Expect(in.Links[0].Kind).To(Equal(core.LinkMutuallyExclusive))
			Expect(in.Links[0].Techs).To(ConsistOf("electric", "h2"))
		})
	})

	Context("with malformed documents", func() {
		It("rejects unknown fields", func() {
			_, err := Parse([]byte(validScenario + "\nexperimental: true\n"))
			Expect(err).To(MatchError(ContainSubstring("decoding scenario")))
		})

		It("rejects YAML that is not a scenario at all", func() {
			_, err := Parse([]byte("- just\n- a\n- list\n"))
			Expect(err).To(HaveOccurred())
		})
	})

	Context("with field-level violations", func() {
		It("rejects a technology without a lifetime", func() {
			bad := `
bands:
  - id: steam
    activity: 100
    emissionIntensity: 0.5
technologies:
  - id: electric
    band: steam
    commercialYear: 2030
    abatementFactor:
      2030: 0.5
costs:
  - tech: electric
    years:
      2030:
        capex: 10
targets:
  2030: 50
`
			_, err := Parse([]byte(bad))
			var verr *core.DataValidationError
			Expect(errors.As(err, &verr)).To(BeTrue())
			Expect(verr.Field).To(ContainSubstring("Lifetime"))
		})

		It("rejects an unknown link kind", func() {
			bad := validScenario + `
  - kind: Synergy
    techs: [electric, h2]
`
			_, err := Parse([]byte(bad))
			Expect(err).To(HaveOccurred())
		})

		It("rejects an adoption cap above one", func() {
			bad := `
bands:
  - id: steam
    activity: 100
    emissionIntensity: 0.5
technologies:
  - id: electric
    band: steam
    lifetime: 25
    commercialYear: 2030
    adoptionCap:
      2030: 1.2
    abatementFactor:
      2030: 0.5
costs:
  - tech: electric
    years:
      2030:
        capex: 10
targets:
  2030: 50
`
			_, err := Parse([]byte(bad))
			Expect(err).To(HaveOccurred())
		})
	})

	Context("with referential violations", func() {
		It("rejects a technology pointing at an unknown band", func() {
			bad := `
bands:
  - id: steam
    activity: 100
    emissionIntensity: 0.5
technologies:
  - id: electric
    band: furnace
    lifetime: 25
    commercialYear: 2030
    abatementFactor:
      2030: 0.5
costs:
  - tech: electric
    years:
      2030:
        capex: 10
targets:
  2030: 50
`
			_, err := Parse([]byte(bad))
			var verr *core.DataValidationError
			Expect(errors.As(err, &verr)).To(BeTrue())
			Expect(verr.Reason).To(ContainSubstring("unknown band"))
		})

		It("rejects duplicate cost records", func() {
			bad := `
bands:
  - id: steam
    activity: 100
    emissionIntensity: 0.5
technologies:
  - id: electric
    band: steam
    lifetime: 25
    commercialYear: 2030
    abatementFactor:
      2030: 0.5
costs:
  - tech: electric
    years:
      2030:
        capex: 10
  - tech: electric
    years:
      2031:
        capex: 9
targets:
  2030: 50
`
			_, err := Parse([]byte(bad))
			var verr *core.DataValidationError
			Expect(errors.As(err, &verr)).To(BeTrue())
			Expect(verr.Reason).To(ContainSubstring("duplicate"))
		})
	})
})

var _ = Describe("Load", func() {
	It("reads a scenario from disk", func() {
		path := filepath.Join(GinkgoT().TempDir(), "scenario.yaml")
		Expect(os.WriteFile(path, []byte(validScenario), 0o600)).To(Succeed())

		in, err := Load(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(in.Technologies).To(HaveLen(2))
	})

	It("reports a missing file", func() {
		_, err := Load(filepath.Join(GinkgoT().TempDir(), "absent.yaml"))
		Expect(err).To(MatchError(ContainSubstring("reading scenario")))
	})
})
