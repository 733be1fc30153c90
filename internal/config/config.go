package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/bernoulli/internal/fluid"
	"github.com/san-kum/bernoulli/internal/solver"
)

const (
	DefaultTolerance = 1e-6
	DefaultMaxIter   = 100
)

type Config struct {
	Scenario ScenarioConfig `yaml:"scenario"`
	Guesses  GuessConfig    `yaml:"guesses"`
	Solver   SolverConfig   `yaml:"solver"`
}

// ScenarioConfig mirrors fluid.Params in SI units.
type ScenarioConfig struct {
	P1  float64 `yaml:"p1"`
	P2  float64 `yaml:"p2"`
	Rho float64 `yaml:"rho"`
	G   float64 `yaml:"g"`
	H1  float64 `yaml:"h1"`
	H2  float64 `yaml:"h2"`
	V1  float64 `yaml:"v1"`
}

// GuessConfig holds the initial bracket for the secant solver. Zero
// values mean "derive from the scenario" via fluid.SuggestGuesses.
type GuessConfig struct {
	X0 float64 `yaml:"x0"`
	X1 float64 `yaml:"x1"`
}

type SolverConfig struct {
	Tolerance     float64 `yaml:"tolerance"`
	MaxIterations int     `yaml:"max_iterations"`
}

func DefaultConfig() *Config {
	p := fluid.Default()
	return &Config{
		Scenario: ScenarioConfig{
			P1: p.P1, P2: p.P2, Rho: p.Rho, G: p.G,
			H1: p.H1, H2: p.H2, V1: p.V1,
		},
		Solver: SolverConfig{
			Tolerance:     DefaultTolerance,
			MaxIterations: DefaultMaxIter,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Params converts the scenario section to the solver-facing tuple.
func (c *Config) Params() fluid.Params {
	return fluid.Params{
		P1: c.Scenario.P1, P2: c.Scenario.P2,
		Rho: c.Scenario.Rho, G: c.Scenario.G,
		H1: c.Scenario.H1, H2: c.Scenario.H2,
		V1: c.Scenario.V1,
	}
}

// SolverOptions converts the solver section, substituting defaults for
// unset fields.
func (c *Config) SolverOptions() solver.Options {
	opts := solver.DefaultOptions()
	if c.Solver.Tolerance > 0 {
		opts.Tolerance = c.Solver.Tolerance
	}
	if c.Solver.MaxIterations > 0 {
		opts.MaxIterations = c.Solver.MaxIterations
	}
	return opts
}

// InitialGuesses returns the configured bracket, deriving one from the
// scenario when either endpoint is unset.
func (c *Config) InitialGuesses() (x0, x1 float64) {
	if c.Guesses.X0 > 0 && c.Guesses.X1 > 0 {
		return c.Guesses.X0, c.Guesses.X1
	}
	return fluid.SuggestGuesses(c.Params())
}
