package config

import (
	"path/filepath"
	"sort"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Scenario.Rho <= 0 {
		t.Error("density should be positive")
	}
	if cfg.Solver.Tolerance != DefaultTolerance {
		t.Errorf("expected tolerance %g, got %g", DefaultTolerance, cfg.Solver.Tolerance)
	}
	if cfg.Solver.MaxIterations != DefaultMaxIter {
		t.Errorf("expected max iterations %d, got %d", DefaultMaxIter, cfg.Solver.MaxIterations)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("tank-discharge")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Scenario.H1 != 3 {
		t.Errorf("expected h1 3, got %f", cfg.Scenario.H1)
	}
	if cfg.Solver.MaxIterations != DefaultMaxIter {
		t.Error("preset should inherit default solver settings")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets()
	if len(presets) == 0 {
		t.Fatal("expected presets")
	}
	if !sort.StringsAreSorted(presets) {
		t.Error("expected sorted preset names")
	}
}

func TestLoadSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.yaml")

	cfg := DefaultConfig()
	cfg.Scenario.P2 = 90000
	cfg.Guesses.X0 = 1.5
	cfg.Guesses.X1 = 3.0
	cfg.Solver.MaxIterations = 50

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if loaded.Scenario.P2 != 90000 {
		t.Errorf("expected p2 90000, got %f", loaded.Scenario.P2)
	}
	if loaded.Guesses.X0 != 1.5 || loaded.Guesses.X1 != 3.0 {
		t.Errorf("guesses did not round-trip: %+v", loaded.Guesses)
	}
	if loaded.Solver.MaxIterations != 50 {
		t.Errorf("expected max iterations 50, got %d", loaded.Solver.MaxIterations)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestInitialGuesses(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Guesses.X0 = 1.0
	cfg.Guesses.X1 = 2.0

	x0, x1 := cfg.InitialGuesses()
	if x0 != 1.0 || x1 != 2.0 {
		t.Errorf("expected explicit guesses, got %f, %f", x0, x1)
	}

	cfg.Guesses = GuessConfig{}
	x0, x1 = cfg.InitialGuesses()
	if x0 <= 0 || x1 <= 0 {
		t.Errorf("derived guesses should be positive, got %f, %f", x0, x1)
	}
}

func TestSolverOptionsDefaults(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Solver = SolverConfig{}

	opts := cfg.SolverOptions()
	if opts.Tolerance != DefaultTolerance {
		t.Errorf("expected default tolerance, got %g", opts.Tolerance)
	}
	if opts.MaxIterations != DefaultMaxIter {
		t.Errorf("expected default budget, got %d", opts.MaxIterations)
	}
}
