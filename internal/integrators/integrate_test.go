package integrators_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/sdelab/internal/dynamo"
	"github.com/san-kum/sdelab/internal/integrators"
	"github.com/san-kum/sdelab/internal/models"
	"github.com/san-kum/sdelab/internal/wiener"
)

// additive is dX = -X dt + 0.5 dW; its diffusion has no gradient method.
type additive struct{}

func (additive) Drift(x, t float64) float64     { return -x }
func (additive) Diffusion(x, t float64) float64 { return 0.5 }

func strongError(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		sum += math.Abs(a[i] - b[i])
	}
	return sum / float64(len(a))
}

var _ = Describe("Integrate", func() {
	var (
		lin *models.Linear
		ens *wiener.Ensemble
	)

	BeforeEach(func() {
		lin = models.NewLinear(2, 1)
		var err error
		ens, err = wiener.Brown(dynamo.NewSource(0), 1.0, 500, 200)
		Expect(err).NotTo(HaveOccurred())
	})

	It("matches a hand-written recurrence at stride 1", func() {
		traj, err := integrators.Integrate(integrators.NewEulerMaruyama(), lin, 1.0, ens, 1)
		Expect(err).NotTo(HaveOccurred())

		dt := ens.Grid.Dt()
		for j := 0; j < ens.Samples(); j++ {
			x := 1.0
			for _, dw := range ens.Increments(j) {
				x = x + 2*x*dt + 1*x*dw
			}
			Expect(traj.Terminal()[j]).To(BeNumerically("~", x, 1e-9*math.Max(1, math.Abs(x))))
		}
	})

	It("aggregates Wiener increments at coarser strides", func() {
		traj, err := integrators.Integrate(integrators.NewEulerMaruyama(), lin, 1.0, ens, 5)
		Expect(err).NotTo(HaveOccurred())
		Expect(traj.Grid.Steps).To(Equal(100))
		Expect(traj.Dt()).To(BeNumerically("~", 5*ens.Grid.Dt(), 1e-15))

		r, c := traj.X.Dims()
		Expect(r).To(Equal(200))
		Expect(c).To(Equal(101))

		dt := traj.Dt()
		w := ens.Path(7)
		x := 1.0
		for l := 0; l < 100; l++ {
			x += 2*x*dt + x*(w[5*(l+1)]-w[5*l])
		}
		Expect(traj.Path(7)[100]).To(BeNumerically("~", x, 1e-9*math.Max(1, math.Abs(x))))
	})

	It("reduces to forward Euler without noise", func() {
		lin.Mu = 0
		traj, err := integrators.Integrate(integrators.NewEulerMaruyama(), lin, 1.0, ens, 1)
		Expect(err).NotTo(HaveOccurred())

		want := math.Pow(1+2.0/500, 500)
		for _, v := range traj.Terminal() {
			Expect(v).To(BeNumerically("~", want, 1e-9))
		}
	})

	It("integrates additive noise with both schemes identically", func() {
		em, err := integrators.Integrate(integrators.NewEulerMaruyama(), additive{}, 1.0, ens, 2)
		Expect(err).NotTo(HaveOccurred())
		mil, err := integrators.Integrate(integrators.NewMilstein(), additive{}, 1.0, ens, 2)
		Expect(err).NotTo(HaveOccurred())
		Expect(mil.Terminal()).To(Equal(em.Terminal()))
	})

	DescribeTable("rejects invalid strides",
		func(stride int, want error) {
			traj, err := integrators.Integrate(integrators.NewEulerMaruyama(), lin, 1.0, ens, stride)
			Expect(err).To(MatchError(want))
			Expect(traj).To(BeNil())
		},
		Entry("zero", 0, dynamo.ErrInvalidStride),
		Entry("negative", -2, dynamo.ErrInvalidStride),
		Entry("not a divisor", 3, dynamo.ErrStrideNotDivisor),
		Entry("larger than N", 1000, dynamo.ErrStrideNotDivisor),
	)

	It("rejects a nil ensemble", func() {
		_, err := integrators.Integrate(integrators.NewEulerMaruyama(), lin, 1.0, nil, 1)
		Expect(err).To(MatchError(dynamo.ErrEmptyEnsemble))
	})
})

var _ = Describe("Euler-Maruyama on dX = 2X dt + X dW", Ordered, func() {
	var (
		lin   *models.Linear
		ens   *wiener.Ensemble
		exact []float64
	)

	BeforeAll(func() {
		lin = models.NewLinear(2, 1)
		var err error
		ens, err = wiener.Brown(dynamo.NewSource(0), 1.0, 500, 10000)
		Expect(err).NotTo(HaveOccurred())
		exact = lin.ExactTerminal(1, ens)
	})

	It("has ensemble mean at T close to exp(2)", func() {
		traj, err := integrators.Integrate(integrators.NewEulerMaruyama(), lin, 1.0, ens, 1)
		Expect(err).NotTo(HaveOccurred())
		Expect(stat.Mean(traj.Terminal(), nil)).To(BeNumerically("~", math.Exp(2), 0.5))
	})

	It("has mean error that shrinks with the step size", func() {
		weak := func(stride int) float64 {
			traj, err := integrators.Integrate(integrators.NewEulerMaruyama(), lin, 1.0, ens, stride)
			Expect(err).NotTo(HaveOccurred())
			return math.Abs(stat.Mean(traj.Terminal(), nil) - stat.Mean(exact, nil))
		}
		Expect(weak(1)).To(BeNumerically("<", weak(5)))
	})

	It("is strongly more accurate with Milstein", func() {
		em, err := integrators.Integrate(integrators.NewEulerMaruyama(), lin, 1.0, ens, 5)
		Expect(err).NotTo(HaveOccurred())
		mil, err := integrators.Integrate(integrators.NewMilstein(), lin, 1.0, ens, 5)
		Expect(err).NotTo(HaveOccurred())

		Expect(strongError(mil.Terminal(), exact)).To(BeNumerically("<", strongError(em.Terminal(), exact)))
	})

	It("has Milstein strong error proportional to dt", func() {
		strong := func(stride int) float64 {
			traj, err := integrators.Integrate(integrators.NewMilstein(), lin, 1.0, ens, stride)
			Expect(err).NotTo(HaveOccurred())
			return strongError(traj.Terminal(), exact)
		}

		base := strong(1)
		for _, k := range []int{2, 5} {
			ratio := strong(k) / base
			Expect(ratio).To(BeNumerically(">", float64(k)/1.6), "stride %d", k)
			Expect(ratio).To(BeNumerically("<", float64(k)*1.6), "stride %d", k)
		}
	})
})
