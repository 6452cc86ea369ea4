package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultDataDir     = ".cgview"
	DefaultRadiusScale = 1.0
	DefaultBondWidth   = 0.1
	DefaultBins        = 20
	DefaultShiftStep   = 0.5
)

// Config holds viewer session settings loaded from a YAML file. The core
// never reads it; the CLI and TUI hosts do.
type Config struct {
	DataDir       string        `yaml:"data_dir"`
	Topology      string        `yaml:"topology"`
	Configuration string        `yaml:"configuration"`
	Display       DisplayConfig `yaml:"display"`
	Stats         StatsConfig   `yaml:"stats"`
}

type DisplayConfig struct {
	RadiusScale float64 `yaml:"radius_scale"`
	BondWidth   float64 `yaml:"bond_width"`
	ShiftStep   float64 `yaml:"shift_step"`
	Theme       string  `yaml:"theme"`
}

type StatsConfig struct {
	Bins int `yaml:"bins"`
}

func DefaultConfig() *Config {
	return &Config{
		DataDir: DefaultDataDir,
		Display: DisplayConfig{
			RadiusScale: DefaultRadiusScale,
			BondWidth:   DefaultBondWidth,
			ShiftStep:   DefaultShiftStep,
			Theme:       "dark",
		},
		Stats: StatsConfig{
			Bins: DefaultBins,
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
