// Package models provides stochastic differential equations with known
// closed-form solutions, used as reference problems for the integrators.
//
// Each model implements [dynamo.SDE]; models with a state-dependent
// diffusion also implement [dynamo.DiffusionGradient] so that the Milstein
// scheme can be applied, and [dynamo.Configurable] for runtime parameter
// adjustment.
//
// # Exact Solutions
//
// The exact solution is evaluated on the same Wiener paths that drive the
// discretization, so errors can be measured sample by sample:
//
//	m := models.NewLinear(2, 1)
//	exact := m.ExactTerminal(1.0, ens)
package models
