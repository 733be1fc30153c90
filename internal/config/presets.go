package config

import "sort"

// Presets are ready-made flow scenarios. Pressures in Pa, heights in
// m, velocities in m/s, density in kg/m³.
var Presets = map[string]*Config{
	// Water rising one meter between two open points.
	"uphill": {
		Scenario: ScenarioConfig{
			P1: 101325, P2: 101325, Rho: 1000, G: 9.81,
			H1: 0, H2: 1, V1: 2,
		},
	},
	// Discharge at the bottom of an open tank: static head converts
	// to velocity (Torricelli flow).
	"tank-discharge": {
		Scenario: ScenarioConfig{
			P1: 130755, P2: 101325, Rho: 1000, G: 9.81,
			H1: 3, H2: 0, V1: 0.1,
		},
	},
	// Contraction: pressure drop accelerates the flow.
	"venturi": {
		Scenario: ScenarioConfig{
			P1: 120000, P2: 101325, Rho: 1000, G: 9.81,
			H1: 0, H2: 0, V1: 1.5,
		},
	},
	// Level pipe at equal pressures; v2 equals v1.
	"level-pipe": {
		Scenario: ScenarioConfig{
			P1: 101325, P2: 101325, Rho: 1000, G: 9.81,
			H1: 0, H2: 0, V1: 2,
		},
	},
	// Air duct dropping half a meter.
	"air-duct": {
		Scenario: ScenarioConfig{
			P1: 101325, P2: 101300, Rho: 1.225, G: 9.81,
			H1: 0.5, H2: 0, V1: 5,
		},
	},
}

func GetPreset(name string) *Config {
	base, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.Scenario = base.Scenario
	if base.Guesses.X0 > 0 {
		cfg.Guesses = base.Guesses
	}
	if base.Solver.Tolerance > 0 {
		cfg.Solver.Tolerance = base.Solver.Tolerance
	}
	if base.Solver.MaxIterations > 0 {
		cfg.Solver.MaxIterations = base.Solver.MaxIterations
	}
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
