package models_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/sdelab/internal/dynamo"
	"github.com/san-kum/sdelab/internal/models"
	"github.com/san-kum/sdelab/internal/wiener"
)

var _ dynamo.DiffusionGradient = (*models.Linear)(nil)
var _ dynamo.Configurable = (*models.Linear)(nil)

var _ = Describe("Linear", func() {
	var m *models.Linear

	BeforeEach(func() {
		m = models.NewLinear(2, 1)
	})

	It("has linear coefficients", func() {
		Expect(m.Drift(3, 0)).To(Equal(6.0))
		Expect(m.Diffusion(3, 0)).To(Equal(3.0))
		Expect(m.DiffusionDerivative(3, 0)).To(Equal(1.0))
	})

	It("starts the exact solution at x0", func() {
		ens, err := wiener.Brown(dynamo.NewSource(0), 1.0, 100, 8)
		Expect(err).NotTo(HaveOccurred())

		exact := m.Exact(1.5, ens)
		r, c := exact.Dims()
		Expect(r).To(Equal(8))
		Expect(c).To(Equal(101))
		for j := 0; j < r; j++ {
			Expect(exact.At(j, 0)).To(Equal(1.5))
		}
	})

	It("agrees between full-grid and terminal evaluation", func() {
		ens, err := wiener.Brown(dynamo.NewSource(1), 1.0, 100, 16)
		Expect(err).NotTo(HaveOccurred())

		exact := m.Exact(1, ens)
		terminal := m.ExactTerminal(1, ens)
		for j, v := range terminal {
			Expect(exact.At(j, 100)).To(BeNumerically("~", v, 1e-12))
		}
	})

	It("has ensemble mean close to x0 exp(lambda t)", func() {
		ens, err := wiener.Brown(dynamo.NewSource(0), 1.0, 50, 20000)
		Expect(err).NotTo(HaveOccurred())

		terminal := m.ExactTerminal(1, ens)
		Expect(stat.Mean(terminal, nil)).To(BeNumerically("~", m.Mean(1, 1), 0.4))
		Expect(m.Mean(1, 1)).To(BeNumerically("~", math.Exp(2), 1e-12))
	})

	It("exposes and updates its parameters", func() {
		Expect(m.GetParams()).To(Equal(map[string]float64{"lambda": 2, "mu": 1}))
		Expect(m.SetParam("mu", 0.5)).To(Succeed())
		Expect(m.Mu).To(Equal(0.5))
		Expect(m.SetParam("sigma", 1)).To(HaveOccurred())
	})
})
