package dynamo

import (
	"math"
	"math/rand/v2"
)

// Grid is the time grid t_i = i*T/N, i = 0..N.
type Grid struct {
	Horizon float64
	Steps   int
}

func NewGrid(horizon float64, steps int) (Grid, error) {
	g := Grid{Horizon: horizon, Steps: steps}
	if err := g.Validate(); err != nil {
		return Grid{}, err
	}
	return g, nil
}

func (g Grid) Validate() error {
	if !(g.Horizon > 0) || math.IsInf(g.Horizon, 0) {
		return &ParamError{Param: "horizon", Value: g.Horizon, Wrapped: ErrNonPositiveHorizon}
	}
	if g.Steps <= 0 {
		return &ParamError{Param: "steps", Value: float64(g.Steps), Wrapped: ErrNonPositiveSteps}
	}
	return nil
}

func (g Grid) Dt() float64 {
	return g.Horizon / float64(g.Steps)
}

// Times returns the N+1 grid points. The last point is exactly Horizon.
func (g Grid) Times() []float64 {
	ts := make([]float64, g.Steps+1)
	dt := g.Dt()
	for i := range ts {
		ts[i] = float64(i) * dt
	}
	ts[g.Steps] = g.Horizon
	return ts
}

// Coarsen returns the grid that keeps every stride-th point.
func (g Grid) Coarsen(stride int) (Grid, error) {
	if stride <= 0 {
		return Grid{}, &ParamError{Param: "stride", Value: float64(stride), Wrapped: ErrInvalidStride}
	}
	if g.Steps%stride != 0 {
		return Grid{}, &ParamError{Param: "stride", Value: float64(stride), Wrapped: ErrStrideNotDivisor}
	}
	return Grid{Horizon: g.Horizon, Steps: g.Steps / stride}, nil
}

// SDE is a scalar stochastic differential equation dX = f(X,t)dt + g(X,t)dW.
type SDE interface {
	Drift(x, t float64) float64
	Diffusion(x, t float64) float64
}

// DiffusionGradient is implemented by systems that expose dg/dx, which
// higher-order schemes such as Milstein need.
type DiffusionGradient interface {
	SDE
	DiffusionDerivative(x, t float64) float64
}

type Stepper interface {
	Name() string
	Step(sys SDE, x, t, dt, dW float64) float64
}

// Integrand is h(t, W(t)) in the stochastic integral of h dW.
type Integrand func(t, w float64) float64

type Configurable interface {
	GetParams() map[string]float64
	SetParam(name string, value float64) error
}

// NewSource returns a deterministic PCG source for seed. Equal seeds give
// equal streams.
func NewSource(seed int64) rand.Source {
	return rand.NewPCG(uint64(seed), 0x9e3779b97f4a7c15)
}
