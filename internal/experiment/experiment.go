package experiment

import (
	"fmt"
	"math/rand/v2"

	"github.com/op/go-logging"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/sdelab/internal/analysis"
	"github.com/san-kum/sdelab/internal/config"
	"github.com/san-kum/sdelab/internal/dynamo"
	"github.com/san-kum/sdelab/internal/integrators"
	"github.com/san-kum/sdelab/internal/logger"
	"github.com/san-kum/sdelab/internal/models"
	"github.com/san-kum/sdelab/internal/stochint"
	"github.com/san-kum/sdelab/internal/wiener"
)

// Experiment owns one random source and one Wiener ensemble. Every scheme
// it runs consumes that same ensemble, so results are comparable sample by
// sample.
type Experiment struct {
	cfg        *config.Config
	registry   *Registry
	randSource rand.Source
	model      *models.Linear
	log        *logging.Logger

	ens *wiener.Ensemble
}

// New validates cfg and seeds the experiment's source. A nil log uses the
// shared module logger.
func New(cfg *config.Config, log *logging.Logger) (*Experiment, error) {
	if log == nil {
		log = logger.Get()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	model := models.NewLinear(0, 0)
	if err := cfg.Model.Apply(model); err != nil {
		return nil, fmt.Errorf("model params: %w", err)
	}
	return &Experiment{
		cfg:        cfg,
		registry:   NewRegistry(),
		randSource: dynamo.NewSource(cfg.Seed),
		model:      model,
		log:        log,
	}, nil
}

func (e *Experiment) Config() *config.Config { return e.cfg }

func (e *Experiment) Model() *models.Linear { return e.model }

// Paths generates the ensemble on first use and returns it afterwards.
func (e *Experiment) Paths() (*wiener.Ensemble, error) {
	if e.ens != nil {
		return e.ens, nil
	}
	e.log.Debugf("generating %d paths, T=%g, N=%d, seed=%d", e.cfg.Samples, e.cfg.Horizon, e.cfg.Steps, e.cfg.Seed)

	ens, err := wiener.Brown(e.randSource, e.cfg.Horizon, e.cfg.Steps, e.cfg.Samples)
	if err != nil {
		return nil, fmt.Errorf("generate paths: %w", err)
	}
	e.ens = ens
	return ens, nil
}

type IntegralResult struct {
	Integrand    string
	Ito          []float64
	Stratonovich []float64
	// ItoExact and StratonovichExact are nil when no closed form is known.
	ItoExact          []float64
	StratonovichExact []float64
}

// ItoError is the mean absolute deviation from the closed form, or 0.
func (r *IntegralResult) ItoError() float64 {
	return meanAbsDev(r.Ito, r.ItoExact)
}

// StratonovichError is the mean absolute deviation from the closed form, or 0.
func (r *IntegralResult) StratonovichError() float64 {
	return meanAbsDev(r.Stratonovich, r.StratonovichExact)
}

func (r *IntegralResult) HasClosedForm() bool {
	return r.ItoExact != nil && r.StratonovichExact != nil
}

func meanAbsDev(approx, exact []float64) float64 {
	if exact == nil {
		return 0
	}
	d, err := analysis.StrongError(approx, exact)
	if err != nil {
		return 0
	}
	return d
}

// Integrals evaluates the Itô and Stratonovich sums of the named integrand.
// The Stratonovich bridge noise is drawn from the experiment's source after
// the paths, so a seed fixes both.
func (e *Experiment) Integrals(integrand string) (*IntegralResult, error) {
	h, itoExact, stratExact, err := e.registry.GetIntegrand(integrand)
	if err != nil {
		return nil, err
	}
	ens, err := e.Paths()
	if err != nil {
		return nil, err
	}

	res := &IntegralResult{Integrand: integrand}
	if res.Ito, err = stochint.Ito(ens, h); err != nil {
		return nil, fmt.Errorf("ito sum: %w", err)
	}
	if res.Stratonovich, err = stochint.Stratonovich(e.randSource, ens, h); err != nil {
		return nil, fmt.Errorf("stratonovich sum: %w", err)
	}
	if itoExact != nil {
		res.ItoExact = itoExact(ens)
	}
	if stratExact != nil {
		res.StratonovichExact = stratExact(ens)
	}

	e.log.Infof("integrand %s: ito mean=%.6f, stratonovich mean=%.6f", integrand, stat.Mean(res.Ito, nil), stat.Mean(res.Stratonovich, nil))
	return res, nil
}

type SolveResult struct {
	Integrator   string
	Params       map[string]float64
	Trajectories *integrators.Trajectories
	Exact        []float64
	// ExactPath is the exact solution of sample 0 on the coarse grid.
	ExactPath    []float64
	Strong       float64
	Weak         float64
	Mean         float64
	ExpectedMean float64
}

// Solve integrates the linear SDE at the given stride and compares X(T)
// with the exact solution on the same paths.
func (e *Experiment) Solve(integrator string, stride int) (*SolveResult, error) {
	stepper, err := e.registry.GetIntegrator(integrator)
	if err != nil {
		return nil, err
	}
	ens, err := e.Paths()
	if err != nil {
		return nil, err
	}

	traj, err := integrators.Integrate(stepper, e.model, e.cfg.Model.X0, ens, stride)
	if err != nil {
		return nil, err
	}

	full := e.model.Exact(e.cfg.Model.X0, ens)
	approx := traj.Terminal()
	exact := mat.Col(nil, ens.Steps(), full)
	strong, err := analysis.StrongError(approx, exact)
	if err != nil {
		return nil, err
	}
	weak, err := analysis.WeakError(approx, exact)
	if err != nil {
		return nil, err
	}

	row := full.RawRowView(0)
	exactPath := make([]float64, traj.Grid.Steps+1)
	for l := range exactPath {
		exactPath[l] = row[l*stride]
	}

	e.log.Infof("%s stride=%d dt=%g: strong=%.3e weak=%.3e", stepper.Name(), stride, traj.Dt(), strong, weak)
	return &SolveResult{
		Integrator:   stepper.Name(),
		Params:       e.model.GetParams(),
		Trajectories: traj,
		Exact:        exact,
		ExactPath:    exactPath,
		Strong:       strong,
		Weak:         weak,
		Mean:         stat.Mean(approx, nil),
		ExpectedMean: e.model.Mean(e.cfg.Model.X0, e.cfg.Horizon),
	}, nil
}

type ConvergenceResult struct {
	Integrator string
	Points     []analysis.Point
	// StrongFit and WeakFit are nil with fewer than two strides.
	StrongFit *analysis.Fit
	WeakFit   *analysis.Fit
}

// Convergence runs the integrator at every stride on the shared paths.
// Each stride may appear once.
func (e *Experiment) Convergence(integrator string, strides []int) (*ConvergenceResult, error) {
	stepper, err := e.registry.GetIntegrator(integrator)
	if err != nil {
		return nil, err
	}
	if len(strides) == 0 {
		return nil, &dynamo.ParamError{Param: "strides", Value: 0, Wrapped: dynamo.ErrInvalidStride}
	}
	seen := make(map[int]bool, len(strides))
	for _, k := range strides {
		if seen[k] {
			return nil, &dynamo.ParamError{Param: "strides", Value: float64(k), Wrapped: dynamo.ErrDuplicateStride}
		}
		seen[k] = true
	}
	ens, err := e.Paths()
	if err != nil {
		return nil, err
	}

	terminal := make(map[int][]float64, len(strides))
	for _, k := range strides {
		traj, err := integrators.Integrate(stepper, e.model, e.cfg.Model.X0, ens, k)
		if err != nil {
			return nil, err
		}
		terminal[k] = traj.Terminal()
	}

	points, err := analysis.Study(terminal, e.model.ExactTerminal(e.cfg.Model.X0, ens), ens.Grid.Dt())
	if err != nil {
		return nil, err
	}

	res := &ConvergenceResult{Integrator: stepper.Name(), Points: points}
	if len(points) < 2 {
		return res, nil
	}

	strong, err := analysis.FitOrder(points, analysis.Strong)
	if err != nil {
		return nil, err
	}
	weak, err := analysis.FitOrder(points, analysis.Weak)
	if err != nil {
		return nil, err
	}
	res.StrongFit, res.WeakFit = &strong, &weak

	e.log.Infof("%s: strong order %.3f, weak order %.3f", stepper.Name(), strong.Order, weak.Order)
	return res, nil
}
