package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/sdelab/internal/dynamo"
)

const (
	DefaultHorizon    = 1.0
	DefaultSteps      = 500
	DefaultSamples    = 1000
	DefaultLambda     = 2.0
	DefaultMu         = 1.0
	DefaultX0         = 1.0
	DefaultStride     = 1
	DefaultIntegrator = "euler_maruyama"
	DefaultIntegrand  = "w"
	DefaultLogLevel   = "info"
)

type Config struct {
	Horizon    float64     `yaml:"horizon"`
	Steps      int         `yaml:"steps"`
	Samples    int         `yaml:"samples"`
	Seed       int64       `yaml:"seed"`
	Integrator string      `yaml:"integrator"`
	Integrand  string      `yaml:"integrand"`
	Stride     int         `yaml:"stride"`
	Strides    []int       `yaml:"strides"`
	Model      ModelConfig `yaml:"model"`
	LogLevel   string      `yaml:"log_level"`
}

type ModelConfig struct {
	Lambda float64 `yaml:"lambda"`
	Mu     float64 `yaml:"mu"`
	X0     float64 `yaml:"x0"`
}

func DefaultConfig() *Config {
	return &Config{
		Horizon:    DefaultHorizon,
		Steps:      DefaultSteps,
		Samples:    DefaultSamples,
		Integrator: DefaultIntegrator,
		Integrand:  DefaultIntegrand,
		Stride:     DefaultStride,
		Strides:    []int{1, 2, 5},
		Model: ModelConfig{
			Lambda: DefaultLambda,
			Mu:     DefaultMu,
			X0:     DefaultX0,
		},
		LogLevel: DefaultLogLevel,
	}
}

// Load reads a YAML file over the defaults.
func Load(path string) (*Config, error) {
	return LoadOver(path, DefaultConfig())
}

// LoadOver reads a YAML file over base, which it modifies and returns. Keys
// missing from the file keep base's values.
func LoadOver(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, base); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return base, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the parameters every command needs. Stride divisibility
// is checked where the stride is used.
func (c *Config) Validate() error {
	if err := (dynamo.Grid{Horizon: c.Horizon, Steps: c.Steps}).Validate(); err != nil {
		return err
	}
	if c.Samples <= 0 {
		return &dynamo.ParamError{Param: "samples", Value: float64(c.Samples), Wrapped: dynamo.ErrNonPositiveSamples}
	}
	if c.Stride <= 0 {
		return &dynamo.ParamError{Param: "stride", Value: float64(c.Stride), Wrapped: dynamo.ErrInvalidStride}
	}
	seen := make(map[int]bool, len(c.Strides))
	for _, k := range c.Strides {
		if k <= 0 {
			return &dynamo.ParamError{Param: "strides", Value: float64(k), Wrapped: dynamo.ErrInvalidStride}
		}
		if seen[k] {
			return &dynamo.ParamError{Param: "strides", Value: float64(k), Wrapped: dynamo.ErrDuplicateStride}
		}
		seen[k] = true
	}
	return nil
}

// Apply sets the model coefficients on sys.
func (m ModelConfig) Apply(sys dynamo.Configurable) error {
	if err := sys.SetParam("lambda", m.Lambda); err != nil {
		return err
	}
	return sys.SetParam("mu", m.Mu)
}

// Clone returns a deep copy, so presets are never mutated by callers.
func (c *Config) Clone() *Config {
	cp := *c
	cp.Strides = append([]int(nil), c.Strides...)
	return &cp
}
