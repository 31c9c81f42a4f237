package config

import "sort"

var Presets = map[string]*Config{
	"brownian": {
		Horizon: 1.0, Steps: 500, Samples: 100, Seed: 0,
		Integrator: DefaultIntegrator, Integrand: DefaultIntegrand, Stride: 1, Strides: []int{1},
		Model:    ModelConfig{Lambda: DefaultLambda, Mu: DefaultMu, X0: DefaultX0},
		LogLevel: DefaultLogLevel,
	},
	"integrals": {
		Horizon: 1.0, Steps: 500, Samples: 1000, Seed: 0,
		Integrator: DefaultIntegrator, Integrand: "w", Stride: 1, Strides: []int{1},
		Model:    ModelConfig{Lambda: DefaultLambda, Mu: DefaultMu, X0: DefaultX0},
		LogLevel: DefaultLogLevel,
	},
	"em": {
		Horizon: 1.0, Steps: 256, Samples: 1000, Seed: 100,
		Integrator: "euler_maruyama", Integrand: DefaultIntegrand, Stride: 4, Strides: []int{4},
		Model:    ModelConfig{Lambda: 2, Mu: 1, X0: 1},
		LogLevel: DefaultLogLevel,
	},
	"convergence": {
		Horizon: 1.0, Steps: 500, Samples: 10000, Seed: 0,
		Integrator: "euler_maruyama", Integrand: DefaultIntegrand, Stride: 1, Strides: []int{1, 2, 5},
		Model:    ModelConfig{Lambda: 2, Mu: 1, X0: 1},
		LogLevel: DefaultLogLevel,
	},
	"milstein": {
		Horizon: 1.0, Steps: 512, Samples: 1000, Seed: 100,
		Integrator: "milstein", Integrand: DefaultIntegrand, Stride: 1, Strides: []int{1, 2, 4, 8, 16},
		Model:    ModelConfig{Lambda: 2, Mu: 1, X0: 1},
		LogLevel: DefaultLogLevel,
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

// ListPresets returns preset names in sorted order.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
