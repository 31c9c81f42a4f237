package integrators

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/sdelab/internal/dynamo"
	"github.com/san-kum/sdelab/internal/wiener"
)

// Trajectories is a discretized solution ensemble: X is M x (L+1) on Grid,
// where Grid is the Wiener grid coarsened by Stride.
type Trajectories struct {
	Grid   dynamo.Grid
	Stride int
	X      *mat.Dense
}

func (tr *Trajectories) Dt() float64 {
	return tr.Grid.Dt()
}

// Terminal copies X(T) for every sample.
func (tr *Trajectories) Terminal() []float64 {
	return mat.Col(nil, tr.Grid.Steps, tr.X)
}

// Path returns a view of sample j's trajectory; callers must not modify it.
func (tr *Trajectories) Path(j int) []float64 {
	return tr.X.RawRowView(j)
}

// Integrate applies stepper to sys along every path of ens, using the
// aggregated Wiener increment over each block of stride fine steps, so the
// effective step is stride*dt. The stride must divide the number of steps.
// Rows are computed concurrently, so stepper and sys must be safe to share.
func Integrate(stepper dynamo.Stepper, sys dynamo.SDE, x0 float64, ens *wiener.Ensemble, stride int) (*Trajectories, error) {
	if ens == nil || ens.W == nil {
		return nil, dynamo.ErrEmptyEnsemble
	}
	coarse, err := ens.Grid.Coarsen(stride)
	if err != nil {
		return nil, fmt.Errorf("integrate %s: %w", stepper.Name(), err)
	}

	m := ens.Samples()
	steps := coarse.Steps
	dt := coarse.Dt()
	x := mat.NewDense(m, steps+1, nil)

	dynamo.ParallelFor(m, 64, func(start, end int) {
		for j := start; j < end; j++ {
			w := ens.Path(j)
			row := x.RawRowView(j)
			row[0] = x0
			for l := 0; l < steps; l++ {
				dW := w[(l+1)*stride] - w[l*stride]
				row[l+1] = stepper.Step(sys, row[l], float64(l)*dt, dt, dW)
			}
		}
	})

	return &Trajectories{Grid: coarse, Stride: stride, X: x}, nil
}
