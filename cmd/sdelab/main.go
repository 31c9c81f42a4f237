package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/san-kum/sdelab/internal/config"
	"github.com/san-kum/sdelab/internal/experiment"
	"github.com/san-kum/sdelab/internal/logger"
	"github.com/san-kum/sdelab/internal/report"
)

var (
	configFile string
	saveConfig string
	preset     string
	logLevel   string
	seed       int64
	horizon    float64
	steps      int
	samples    int
	// Linear SDE parameters
	lambda float64
	mu     float64
	x0     float64
	// Scheme selection
	integrator string
	integrand  string
	stride     int
	strides    []int
	// Output
	numPaths int
	numRows  int
)

// main registers the sdelab commands and exits with status 1 when a command
// fails.
func main() {
	rootCmd := &cobra.Command{
		Use:          "sdelab",
		Short:        "stochastic calculus lab: brownian paths, stochastic integrals, euler-maruyama",
		SilenceUsage: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&saveConfig, "save-config", "", "write the resolved config to this path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.StringVar(&logLevel, "log-level", config.DefaultLogLevel, "log level (debug, info, warning, error)")
	pf.Int64Var(&seed, "seed", 0, "random seed")
	pf.Float64Var(&horizon, "horizon", config.DefaultHorizon, "time horizon T")
	pf.IntVar(&steps, "steps", config.DefaultSteps, "number of steps N")
	pf.IntVar(&samples, "samples", config.DefaultSamples, "ensemble size M")

	brownCmd := &cobra.Command{
		Use:   "brown",
		Short: "generate wiener paths",
		Args:  cobra.NoArgs,
		RunE:  runBrown,
	}
	brownCmd.Flags().IntVar(&numPaths, "paths", 5, "number of paths to chart")

	integralCmd := &cobra.Command{
		Use:   "integral",
		Short: "ito and stratonovich sums vs closed form",
		Args:  cobra.NoArgs,
		RunE:  runIntegral,
	}
	integralCmd.Flags().StringVar(&integrand, "integrand", config.DefaultIntegrand, "integrand h(t, W): w, t or w2")
	integralCmd.Flags().IntVar(&numRows, "rows", 10, "number of samples to list")

	emCmd := &cobra.Command{
		Use:   "em",
		Short: "integrate dX = lambda X dt + mu X dW",
		Args:  cobra.NoArgs,
		RunE:  runEM,
	}
	addModelFlags(emCmd)
	emCmd.Flags().IntVar(&stride, "stride", config.DefaultStride, "use every k-th wiener increment")

	convergeCmd := &cobra.Command{
		Use:   "converge",
		Short: "strong and weak error over step sizes",
		Args:  cobra.NoArgs,
		RunE:  runConverge,
	}
	addModelFlags(convergeCmd)
	convergeCmd.Flags().IntSliceVar(&strides, "strides", []int{1, 2, 5}, "strides to compare")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			report.Presets(cmd.OutOrStdout(), config.ListPresets())
		},
	}

	rootCmd.AddCommand(brownCmd, integralCmd, emCmd, convergeCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addModelFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&lambda, "lambda", config.DefaultLambda, "drift coefficient")
	cmd.Flags().Float64Var(&mu, "mu", config.DefaultMu, "diffusion coefficient")
	cmd.Flags().Float64Var(&x0, "x0", config.DefaultX0, "initial value")
	cmd.Flags().StringVar(&integrator, "integrator", config.DefaultIntegrator, "integrator: euler_maruyama or milstein")
}

// resolveConfig layers defaults, preset, config file and explicitly set
// flags, in that order.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %s)", preset, strings.Join(config.ListPresets(), ", "))
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.LoadOver(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("horizon") {
		cfg.Horizon = horizon
	}
	if flags.Changed("steps") {
		cfg.Steps = steps
	}
	if flags.Changed("samples") {
		cfg.Samples = samples
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if flags.Lookup("lambda") != nil {
		if flags.Changed("lambda") {
			cfg.Model.Lambda = lambda
		}
		if flags.Changed("mu") {
			cfg.Model.Mu = mu
		}
		if flags.Changed("x0") {
			cfg.Model.X0 = x0
		}
		if flags.Changed("integrator") {
			cfg.Integrator = integrator
		}
	}
	if flags.Lookup("integrand") != nil && flags.Changed("integrand") {
		cfg.Integrand = integrand
	}
	if flags.Lookup("stride") != nil && flags.Changed("stride") {
		cfg.Stride = stride
	}
	if flags.Lookup("strides") != nil && flags.Changed("strides") {
		cfg.Strides = strides
	}

	return cfg, cfg.Validate()
}

func newExperiment(cmd *cobra.Command) (*experiment.Experiment, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, err
	}
	log := logger.New(cmd.ErrOrStderr(), cfg.LogLevel)
	if saveConfig != "" {
		if err := config.Save(saveConfig, cfg); err != nil {
			return nil, fmt.Errorf("failed to save config: %w", err)
		}
		log.Infof("config written to %s", saveConfig)
	}
	return experiment.New(cfg, log)
}

func runBrown(cmd *cobra.Command, args []string) error {
	exp, err := newExperiment(cmd)
	if err != nil {
		return err
	}
	ens, err := exp.Paths()
	if err != nil {
		return err
	}
	report.Paths(cmd.OutOrStdout(), ens, numPaths)
	return nil
}

func runIntegral(cmd *cobra.Command, args []string) error {
	exp, err := newExperiment(cmd)
	if err != nil {
		return err
	}
	res, err := exp.Integrals(exp.Config().Integrand)
	if err != nil {
		return err
	}
	report.Integrals(cmd.OutOrStdout(), res, numRows)
	return nil
}

func runEM(cmd *cobra.Command, args []string) error {
	exp, err := newExperiment(cmd)
	if err != nil {
		return err
	}
	cfg := exp.Config()
	res, err := exp.Solve(cfg.Integrator, cfg.Stride)
	if err != nil {
		return err
	}
	report.Solve(cmd.OutOrStdout(), res)
	return nil
}

func runConverge(cmd *cobra.Command, args []string) error {
	exp, err := newExperiment(cmd)
	if err != nil {
		return err
	}
	cfg := exp.Config()
	res, err := exp.Convergence(cfg.Integrator, cfg.Strides)
	if err != nil {
		return err
	}
	report.Convergence(cmd.OutOrStdout(), res)
	return nil
}
