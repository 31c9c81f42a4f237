package integrators

import "github.com/san-kum/sdelab/internal/dynamo"

// EulerMaruyama advances x by f(x,t)dt + g(x,t)dW.
type EulerMaruyama struct{}

func NewEulerMaruyama() *EulerMaruyama {
	return &EulerMaruyama{}
}

func (e *EulerMaruyama) Name() string { return "euler_maruyama" }

func (e *EulerMaruyama) Step(sys dynamo.SDE, x, t, dt, dW float64) float64 {
	return x + sys.Drift(x, t)*dt + sys.Diffusion(x, t)*dW
}
