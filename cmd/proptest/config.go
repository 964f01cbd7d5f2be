package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// config is the proptest harness's run configuration, loaded from a YAML
// file named on the command line.
type config struct {
	// Trials is how many random trials to run.
	Trials int `yaml:"trials"`
	// Seed seeds the random generator; the same seed reproduces the same
	// trials.
	Seed int64 `yaml:"seed"`
	// UniverseSize is the bit-vector universe size used for every trial.
	UniverseSize uint32 `yaml:"universe_size"`
	// Densities are the 1-bit densities (each in [0,1]) exercised; trial i
	// uses Densities[i % len(Densities)].
	Densities []float64 `yaml:"densities"`
	// MaxMultiplicity is the upper bound (inclusive) on random
	// per-position multiplicities used for MultiBitVec trials.
	MaxMultiplicity uint32 `yaml:"max_multiplicity"`
	// Concurrency bounds how many trials run at once.
	Concurrency int `yaml:"concurrency"`
}

func defaultConfig() config {
	return config{
		Trials:          200,
		Seed:            1,
		UniverseSize:    4096,
		Densities:       []float64{0, 0.01, 0.1, 0.5, 0.9, 1},
		MaxMultiplicity: 10,
		Concurrency:     8,
	}
}

func loadConfig(path string) (config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
