package analysis

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/sdelab/internal/dynamo"
)

// StrongError is mean_j |approx_j - exact_j|.
func StrongError(approx, exact []float64) (float64, error) {
	if err := checkPair(approx, exact); err != nil {
		return 0, err
	}
	return floats.Distance(approx, exact, 1) / float64(len(approx)), nil
}

// WeakError is |mean(approx) - mean(exact)|.
func WeakError(approx, exact []float64) (float64, error) {
	if err := checkPair(approx, exact); err != nil {
		return 0, err
	}
	return math.Abs(stat.Mean(approx, nil) - stat.Mean(exact, nil)), nil
}

func checkPair(approx, exact []float64) error {
	if len(approx) == 0 || len(exact) == 0 {
		return dynamo.ErrEmptyEnsemble
	}
	if len(approx) != len(exact) {
		return fmt.Errorf("%d approximate vs %d exact values: %w", len(approx), len(exact), dynamo.ErrLengthMismatch)
	}
	return nil
}

// Point is the terminal error of one scheme run at step size Dt.
type Point struct {
	Stride int
	Dt     float64
	Strong float64
	Weak   float64
}

// Study computes a Point per stride from terminal values keyed by stride.
// baseDt is the fine Wiener step; points are ordered by increasing Dt.
func Study(terminal map[int][]float64, exact []float64, baseDt float64) ([]Point, error) {
	points := make([]Point, 0, len(terminal))
	for stride, approx := range terminal {
		strong, err := StrongError(approx, exact)
		if err != nil {
			return nil, fmt.Errorf("stride %d: %w", stride, err)
		}
		weak, err := WeakError(approx, exact)
		if err != nil {
			return nil, fmt.Errorf("stride %d: %w", stride, err)
		}
		points = append(points, Point{
			Stride: stride,
			Dt:     float64(stride) * baseDt,
			Strong: strong,
			Weak:   weak,
		})
	}

	sort.Slice(points, func(i, j int) bool { return points[i].Dt < points[j].Dt })
	return points, nil
}

// Kind selects which error a fit uses.
type Kind int

const (
	Strong Kind = iota
	Weak
)

func (k Kind) String() string {
	if k == Weak {
		return "weak"
	}
	return "strong"
}

// Fit is err ~ C dt^Order.
type Fit struct {
	Order    float64
	Constant float64
	RSquared float64
}

// FitOrder regresses log error on log dt. It needs at least two points
// with positive error.
func FitOrder(points []Point, kind Kind) (Fit, error) {
	xs := make([]float64, 0, len(points))
	ys := make([]float64, 0, len(points))
	for _, p := range points {
		e := p.Strong
		if kind == Weak {
			e = p.Weak
		}
		if e <= 0 || p.Dt <= 0 {
			continue
		}
		xs = append(xs, math.Log(p.Dt))
		ys = append(ys, math.Log(e))
	}
	if len(xs) < 2 {
		return Fit{}, fmt.Errorf("fit %s order: need 2 positive points, have %d", kind, len(xs))
	}

	alpha, beta := stat.LinearRegression(xs, ys, nil, false)
	return Fit{
		Order:    beta,
		Constant: math.Exp(alpha),
		RSquared: stat.RSquared(xs, ys, nil, alpha, beta),
	}, nil
}
