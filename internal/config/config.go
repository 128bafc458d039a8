package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultSpot     = 100.0
	DefaultStrike   = 100.0
	DefaultVol      = 0.2
	DefaultBarrier  = 150.0
	DefaultMaturity = 1.0
	DefaultFixings  = 12
	DefaultPaths    = 100000
)

type Config struct {
	Product    string  `yaml:"product"`
	Model      string  `yaml:"model"`
	RNG        string  `yaml:"rng"`
	Spot       float64 `yaml:"spot"`
	Strike     float64 `yaml:"strike"`
	Vol        float64 `yaml:"vol"`
	Barrier    float64 `yaml:"barrier"`
	Maturity   float64 `yaml:"maturity"`
	Fixings    int     `yaml:"fixings"`
	Paths      int     `yaml:"paths"`
	Antithetic bool    `yaml:"antithetic"`
	Parallel   bool    `yaml:"parallel"`
	Seed       uint64  `yaml:"seed"`
}

func DefaultConfig() *Config {
	return &Config{
		Product:    "european",
		Model:      "blackscholes",
		RNG:        "pcg",
		Spot:       DefaultSpot,
		Strike:     DefaultStrike,
		Vol:        DefaultVol,
		Barrier:    DefaultBarrier,
		Maturity:   DefaultMaturity,
		Fixings:    DefaultFixings,
		Paths:      DefaultPaths,
		Antithetic: true,
		Seed:       12345,
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
