package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/sdelab/internal/dynamo"
	"github.com/san-kum/sdelab/internal/integrators"
	"github.com/san-kum/sdelab/internal/stochint"
	"github.com/san-kum/sdelab/internal/wiener"
)

// ClosedForm returns the exact integral per sample.
type ClosedForm func(ens *wiener.Ensemble) []float64

type integrandEntry struct {
	fn           dynamo.Integrand
	ito          ClosedForm
	stratonovich ClosedForm
}

type Registry struct {
	integrators map[string]func() dynamo.Stepper
	integrands  map[string]integrandEntry
}

func NewRegistry() *Registry {
	r := &Registry{
		integrators: make(map[string]func() dynamo.Stepper),
		integrands:  make(map[string]integrandEntry),
	}

	r.integrators["euler_maruyama"] = func() dynamo.Stepper { return integrators.NewEulerMaruyama() }
	r.integrators["em"] = r.integrators["euler_maruyama"]
	r.integrators["milstein"] = func() dynamo.Stepper { return integrators.NewMilstein() }

	r.integrands["w"] = integrandEntry{
		fn:           stochint.Identity,
		ito:          stochint.ItoClosedForm,
		stratonovich: stochint.StratonovichClosedForm,
	}
	r.integrands["t"] = integrandEntry{fn: stochint.Time}
	r.integrands["w2"] = integrandEntry{fn: stochint.Square}

	return r
}

func (r *Registry) GetIntegrator(name string) (dynamo.Stepper, error) {
	fn, ok := r.integrators[name]
	if !ok {
		return nil, fmt.Errorf("unknown integrator: %s (available: %v)", name, r.ListIntegrators())
	}
	return fn(), nil
}

// GetIntegrand returns the integrand and its closed forms; the closed forms
// are nil when none is known.
func (r *Registry) GetIntegrand(name string) (dynamo.Integrand, ClosedForm, ClosedForm, error) {
	e, ok := r.integrands[name]
	if !ok {
		return nil, nil, nil, fmt.Errorf("unknown integrand: %s (available: %v)", name, r.ListIntegrands())
	}
	return e.fn, e.ito, e.stratonovich, nil
}

func (r *Registry) ListIntegrators() []string {
	return sortedKeys(r.integrators)
}

func (r *Registry) ListIntegrands() []string {
	return sortedKeys(r.integrands)
}

func sortedKeys[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
