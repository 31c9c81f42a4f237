package stochint_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/sdelab/internal/dynamo"
	"github.com/san-kum/sdelab/internal/stochint"
	"github.com/san-kum/sdelab/internal/wiener"
)

func meanAbsDiff(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		sum += math.Abs(a[i] - b[i])
	}
	return sum / float64(len(a))
}

func brown(seed int64, steps, samples int) *wiener.Ensemble {
	ens, err := wiener.Brown(dynamo.NewSource(seed), 1.0, steps, samples)
	Expect(err).NotTo(HaveOccurred())
	return ens
}

var _ = Describe("Ito", func() {
	It("integrates a constant integrand to W(T) exactly", func() {
		ens := brown(1, 100, 20)
		one := func(_, _ float64) float64 { return 1 }

		got, err := stochint.Ito(ens, one)
		Expect(err).NotTo(HaveOccurred())
		for j, wt := range ens.Terminal() {
			Expect(got[j]).To(BeNumerically("~", wt, 1e-12))
		}
	})

	It("matches the closed form for W dW in expectation", func() {
		ens := brown(0, 500, 2000)
		got, err := stochint.Ito(ens, stochint.Identity)
		Expect(err).NotTo(HaveOccurred())

		exact := stochint.ItoClosedForm(ens)
		Expect(stat.Mean(got, nil)).To(BeNumerically("~", stat.Mean(exact, nil), 0.01))
		Expect(meanAbsDiff(got, exact)).To(BeNumerically("<", 0.05))
	})

	It("converges as the grid is refined", func() {
		coarse := brown(3, 50, 1000)
		fine := brown(3, 2000, 1000)

		c, err := stochint.Ito(coarse, stochint.Identity)
		Expect(err).NotTo(HaveOccurred())
		f, err := stochint.Ito(fine, stochint.Identity)
		Expect(err).NotTo(HaveOccurred())

		errCoarse := meanAbsDiff(c, stochint.ItoClosedForm(coarse))
		errFine := meanAbsDiff(f, stochint.ItoClosedForm(fine))
		Expect(errFine).To(BeNumerically("<", errCoarse))
		Expect(errFine).To(BeNumerically("<", 0.03))
	})

	It("rejects a nil integrand and a nil ensemble", func() {
		_, err := stochint.Ito(brown(0, 10, 2), nil)
		Expect(err).To(MatchError(dynamo.ErrNilIntegrand))

		_, err = stochint.Ito(nil, stochint.Identity)
		Expect(err).To(MatchError(dynamo.ErrEmptyEnsemble))
	})
})

var _ = Describe("Stratonovich", func() {
	It("matches the closed form for W dW in expectation", func() {
		ens := brown(0, 500, 2000)
		got, err := stochint.Stratonovich(dynamo.NewSource(10), ens, stochint.Identity)
		Expect(err).NotTo(HaveOccurred())

		exact := stochint.StratonovichClosedForm(ens)
		Expect(stat.Mean(got, nil)).To(BeNumerically("~", stat.Mean(exact, nil), 0.01))
		Expect(meanAbsDiff(got, exact)).To(BeNumerically("<", 0.04))
	})

	It("converges as the grid is refined", func() {
		coarse := brown(5, 50, 1000)
		fine := brown(5, 2000, 1000)

		c, err := stochint.Stratonovich(dynamo.NewSource(1), coarse, stochint.Identity)
		Expect(err).NotTo(HaveOccurred())
		f, err := stochint.Stratonovich(dynamo.NewSource(1), fine, stochint.Identity)
		Expect(err).NotTo(HaveOccurred())

		errCoarse := meanAbsDiff(c, stochint.StratonovichClosedForm(coarse))
		errFine := meanAbsDiff(f, stochint.StratonovichClosedForm(fine))
		Expect(errFine).To(BeNumerically("<", errCoarse))
	})

	It("exceeds the Itô sum by T/2 on average", func() {
		ens := brown(2, 500, 2000)
		ito, err := stochint.Ito(ens, stochint.Identity)
		Expect(err).NotTo(HaveOccurred())
		strat, err := stochint.Stratonovich(dynamo.NewSource(99), ens, stochint.Identity)
		Expect(err).NotTo(HaveOccurred())

		Expect(stat.Mean(strat, nil) - stat.Mean(ito, nil)).To(BeNumerically("~", 0.5, 0.02))
	})

	It("degenerates to the right-point sum when the bridge reuses the path stream", func() {
		// Same PCG stream: every bridge draw equals half the matching increment.
		ens := brown(2, 500, 2000)
		ito, err := stochint.Ito(ens, stochint.Identity)
		Expect(err).NotTo(HaveOccurred())
		strat, err := stochint.Stratonovich(dynamo.NewSource(2), ens, stochint.Identity)
		Expect(err).NotTo(HaveOccurred())

		Expect(stat.Mean(strat, nil) - stat.Mean(ito, nil)).To(BeNumerically("~", 1.0, 0.03))
	})

	It("is reproducible for a fixed bridge seed", func() {
		ens := brown(0, 100, 10)
		a, err := stochint.Stratonovich(dynamo.NewSource(9), ens, stochint.Square)
		Expect(err).NotTo(HaveOccurred())
		b, err := stochint.Stratonovich(dynamo.NewSource(9), ens, stochint.Square)
		Expect(err).NotTo(HaveOccurred())
		Expect(a).To(Equal(b))
	})
})

var _ = Describe("closed forms", func() {
	It("differ by exactly T/2", func() {
		ens := brown(4, 20, 5)
		ito := stochint.ItoClosedForm(ens)
		strat := stochint.StratonovichClosedForm(ens)
		for j := range ito {
			Expect(strat[j] - ito[j]).To(BeNumerically("~", 0.5, 1e-12))
		}
	})
})
