// Package wiener generates sample paths of a standard Wiener process.
package wiener

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/san-kum/sdelab/internal/dynamo"
)

// Ensemble holds M Wiener paths sampled on a grid of N steps.
// W is M x (N+1) with W[j, 0] = 0; DW is M x N with W[j, i+1] = sum(DW[j, :i+1]).
type Ensemble struct {
	Grid dynamo.Grid
	W    *mat.Dense
	DW   *mat.Dense
}

// Brown draws samples independent Wiener paths over [0, horizon] with steps
// increments each, consuming src row by row.
func Brown(src rand.Source, horizon float64, steps, samples int) (*Ensemble, error) {
	grid, err := dynamo.NewGrid(horizon, steps)
	if err != nil {
		return nil, err
	}
	if samples <= 0 {
		return nil, &dynamo.ParamError{Param: "samples", Value: float64(samples), Wrapped: dynamo.ErrNonPositiveSamples}
	}

	norm := distuv.Normal{Mu: 0, Sigma: math.Sqrt(grid.Dt()), Src: src}

	dw := make([]float64, samples*steps)
	for k := range dw {
		dw[k] = norm.Rand()
	}
	dW := mat.NewDense(samples, steps, dw)

	w := mat.NewDense(samples, steps+1, nil)
	for j := 0; j < samples; j++ {
		row := w.RawRowView(j)
		floats.CumSum(row[1:], dW.RawRowView(j))
	}

	return &Ensemble{Grid: grid, W: w, DW: dW}, nil
}

func (e *Ensemble) Samples() int {
	r, _ := e.W.Dims()
	return r
}

func (e *Ensemble) Steps() int {
	return e.Grid.Steps
}

// Path returns a view of sample j's path; callers must not modify it.
func (e *Ensemble) Path(j int) []float64 {
	return e.W.RawRowView(j)
}

// Increments returns a view of sample j's increments; callers must not modify it.
func (e *Ensemble) Increments(j int) []float64 {
	return e.DW.RawRowView(j)
}

// At copies the ensemble values at time index i.
func (e *Ensemble) At(i int) []float64 {
	return mat.Col(nil, i, e.W)
}

// Terminal copies W(T) for every sample.
func (e *Ensemble) Terminal() []float64 {
	return e.At(e.Grid.Steps)
}

// StdDevAt is the sample (n-1) standard deviation across the ensemble at
// time index i. It approximates sqrt(t_i). A single-path ensemble has no
// spread and gives 0.
func (e *Ensemble) StdDevAt(i int) float64 {
	if e.Samples() < 2 {
		return 0
	}
	return stat.StdDev(e.At(i), nil)
}

// MeanSquareTerminal is the ensemble average of W(T)^2, which tends to T.
func (e *Ensemble) MeanSquareTerminal() float64 {
	wt := e.Terminal()
	sum := 0.0
	for _, v := range wt {
		sum += v * v
	}
	return sum / float64(len(wt))
}
