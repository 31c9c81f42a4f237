// Package dynamo provides core primitives shared by the stochastic
// simulation packages.
//
// The package defines the fundamental interfaces and types for numerical
// simulation of scalar stochastic differential equations (SDEs) of the form
// dX = f(X, t) dt + g(X, t) dW:
//
//   - [Grid]: equally spaced time grid over [0, T]
//   - [SDE]: drift and diffusion coefficients
//   - [Stepper]: one-step discretization scheme
//   - [Integrand]: integrand h(t, W(t)) for stochastic integrals
//   - [NewSource]: owned, seedable random source
//
// # Example
//
//	src := dynamo.NewSource(0)
//	ens, _ := wiener.Brown(src, 1.0, 500, 1000)
//	traj, _ := integrators.Integrate(integrators.NewEulerMaruyama(), models.NewLinear(2, 1), 1.0, ens, 1)
//
// # Thread Safety
//
// A random source is NOT safe for concurrent use. Give every goroutine that
// samples its own source derived from a distinct seed.
//
// # Independent Streams
//
// Two sources built from the same seed produce the same stream. Noise that
// must be independent of the Wiener increments (the Stratonovich bridge
// midpoint) has to come from a different seed, or from the generating
// source after the paths were drawn.
package dynamo
