package models

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/sdelab/internal/dynamo"
	"github.com/san-kum/sdelab/internal/wiener"
)

// Linear is dX = Lambda X dt + Mu X dW (geometric Brownian motion).
type Linear struct {
	Lambda float64
	Mu     float64
}

func NewLinear(lambda, mu float64) *Linear {
	return &Linear{Lambda: lambda, Mu: mu}
}

func (l *Linear) Drift(x, t float64) float64 {
	return l.Lambda * x
}

func (l *Linear) Diffusion(x, t float64) float64 {
	return l.Mu * x
}

func (l *Linear) DiffusionDerivative(x, t float64) float64 {
	return l.Mu
}

// Solution is X(t) = x0 exp((Lambda - Mu^2/2) t + Mu W(t)).
func (l *Linear) Solution(x0, t, w float64) float64 {
	return x0 * math.Exp((l.Lambda-0.5*l.Mu*l.Mu)*t+l.Mu*w)
}

// Mean is E[X(t)] = x0 exp(Lambda t).
func (l *Linear) Mean(x0, t float64) float64 {
	return x0 * math.Exp(l.Lambda*t)
}

// Exact evaluates the solution on every grid point of every path.
func (l *Linear) Exact(x0 float64, ens *wiener.Ensemble) *mat.Dense {
	m, n := ens.W.Dims()
	ts := ens.Grid.Times()
	out := mat.NewDense(m, n, nil)

	dynamo.ParallelFor(m, 64, func(start, end int) {
		for j := start; j < end; j++ {
			w := ens.Path(j)
			row := out.RawRowView(j)
			for i := range row {
				row[i] = l.Solution(x0, ts[i], w[i])
			}
		}
	})
	return out
}

// ExactTerminal evaluates X(T) for every path.
func (l *Linear) ExactTerminal(x0 float64, ens *wiener.Ensemble) []float64 {
	wt := ens.Terminal()
	out := make([]float64, len(wt))
	for j, w := range wt {
		out[j] = l.Solution(x0, ens.Grid.Horizon, w)
	}
	return out
}

func (l *Linear) GetParams() map[string]float64 {
	return map[string]float64{
		"lambda": l.Lambda,
		"mu":     l.Mu,
	}
}

func (l *Linear) SetParam(name string, value float64) error {
	switch name {
	case "lambda":
		l.Lambda = value
	case "mu":
		l.Mu = value
	default:
		return fmt.Errorf("unknown param: %s", name)
	}
	return nil
}
