package integrators

import "github.com/san-kum/sdelab/internal/dynamo"

// Milstein adds the correction 0.5 g g' (dW^2 - dt) to Euler-Maruyama,
// raising the strong order from 1/2 to 1. Systems without
// dynamo.DiffusionGradient are treated as having g' = 0.
type Milstein struct{}

func NewMilstein() *Milstein {
	return &Milstein{}
}

func (m *Milstein) Name() string { return "milstein" }

func (m *Milstein) Step(sys dynamo.SDE, x, t, dt, dW float64) float64 {
	g := sys.Diffusion(x, t)
	next := x + sys.Drift(x, t)*dt + g*dW

	if dg, ok := sys.(dynamo.DiffusionGradient); ok {
		next += 0.5 * g * dg.DiffusionDerivative(x, t) * (dW*dW - dt)
	}
	return next
}
