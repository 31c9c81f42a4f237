// Package stochint approximates stochastic integrals of h(t, W(t)) dW over
// a Wiener ensemble with left-point (Itô) and mid-point (Stratonovich)
// Riemann sums.
package stochint

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/san-kum/sdelab/internal/dynamo"
	"github.com/san-kum/sdelab/internal/wiener"
)

// Identity is the integrand h(t, W) = W.
func Identity(_, w float64) float64 { return w }

// Time is the integrand h(t, W) = t.
func Time(t, _ float64) float64 { return t }

// Square is the integrand h(t, W) = W^2.
func Square(_, w float64) float64 { return w * w }

// Ito returns, per sample, sum_i h(t_i, W_i) (W_{i+1} - W_i).
func Ito(ens *wiener.Ensemble, h dynamo.Integrand) ([]float64, error) {
	if err := check(ens, h); err != nil {
		return nil, err
	}

	ts := ens.Grid.Times()
	out := make([]float64, ens.Samples())
	for j := range out {
		w := ens.Path(j)
		sum := 0.0
		for i := 0; i < ens.Steps(); i++ {
			sum += h(ts[i], w[i]) * (w[i+1] - w[i])
		}
		out[j] = sum
	}
	return out, nil
}

// Stratonovich returns, per sample, sum_i h(t_i + dt/2, W_mid) (W_{i+1} - W_i)
// where W_mid is the Brownian bridge midpoint (W_i + W_{i+1})/2 + Z,
// Z ~ N(0, dt/4) drawn from src.
//
// src must be independent of the stream that generated ens. A fresh source
// with the path seed replays the increments, so every Z equals dW/2, W_mid
// collapses to W_{i+1} and the sum is biased by T/2 without any error.
func Stratonovich(src rand.Source, ens *wiener.Ensemble, h dynamo.Integrand) ([]float64, error) {
	if err := check(ens, h); err != nil {
		return nil, err
	}

	dt := ens.Grid.Dt()
	bridge := distuv.Normal{Mu: 0, Sigma: 0.5 * math.Sqrt(dt), Src: src}

	ts := ens.Grid.Times()
	out := make([]float64, ens.Samples())
	for j := range out {
		w := ens.Path(j)
		sum := 0.0
		for i := 0; i < ens.Steps(); i++ {
			mid := 0.5*(w[i]+w[i+1]) + bridge.Rand()
			sum += h(ts[i]+0.5*dt, mid) * (w[i+1] - w[i])
		}
		out[j] = sum
	}
	return out, nil
}

// ItoClosedForm is the exact Itô integral of W dW: (W(T)^2 - W(0)^2)/2 - T/2.
func ItoClosedForm(ens *wiener.Ensemble) []float64 {
	out := StratonovichClosedForm(ens)
	half := 0.5 * ens.Grid.Horizon
	for j := range out {
		out[j] -= half
	}
	return out
}

// StratonovichClosedForm is the exact Stratonovich integral of W dW:
// (W(T)^2 - W(0)^2)/2.
func StratonovichClosedForm(ens *wiener.Ensemble) []float64 {
	out := make([]float64, ens.Samples())
	n := ens.Steps()
	for j := range out {
		w := ens.Path(j)
		out[j] = 0.5 * (w[n]*w[n] - w[0]*w[0])
	}
	return out
}

func check(ens *wiener.Ensemble, h dynamo.Integrand) error {
	if ens == nil || ens.W == nil {
		return dynamo.ErrEmptyEnsemble
	}
	if h == nil {
		return dynamo.ErrNilIntegrand
	}
	return nil
}
