package config

var Presets = map[string]map[string]*Config{
	"european": {
		"atm": {
			Product: "european", Model: "blackscholes", RNG: "pcg",
			Spot: 100, Strike: 100, Vol: 0.2, Maturity: 1.0,
			Paths: 500000, Antithetic: true, Seed: 12345,
		},
		"otm": {
			Product: "european", Model: "blackscholes", RNG: "pcg",
			Spot: 100, Strike: 120, Vol: 0.2, Maturity: 1.0,
			Paths: 500000, Antithetic: true, Seed: 12345,
		},
		"normal": {
			Product: "european", Model: "bachelier", RNG: "pcg",
			Spot: 100, Strike: 100, Vol: 15, Maturity: 1.0,
			Paths: 500000, Antithetic: true, Seed: 12345,
		},
	},
	"asian": {
		"monthly": {
			Product: "asian", Model: "blackscholes", RNG: "pcg",
			Spot: 100, Strike: 100, Vol: 0.2, Maturity: 1.0, Fixings: 12,
			Paths: 250000, Antithetic: true, Seed: 12345,
		},
		"weekly": {
			Product: "asian", Model: "blackscholes", RNG: "pcg",
			Spot: 100, Strike: 100, Vol: 0.2, Maturity: 1.0, Fixings: 52,
			Paths: 250000, Antithetic: true, Seed: 12345,
		},
	},
	"barrier": {
		"close": {
			Product: "barrier", Model: "blackscholes", RNG: "pcg",
			Spot: 100, Strike: 100, Vol: 0.2, Barrier: 120, Maturity: 1.0, Fixings: 52,
			Paths: 500000, Antithetic: true, Seed: 12345,
		},
		"far": {
			Product: "barrier", Model: "blackscholes", RNG: "pcg",
			Spot: 100, Strike: 100, Vol: 0.2, Barrier: 180, Maturity: 1.0, Fixings: 52,
			Paths: 500000, Antithetic: true, Seed: 12345,
		},
	},
}

func GetPreset(product, preset string) *Config {
	productPresets, ok := Presets[product]
	if !ok {
		return nil
	}
	cfg, ok := productPresets[preset]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets(product string) []string {
	productPresets, ok := Presets[product]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(productPresets))
	for name := range productPresets {
		names = append(names, name)
	}
	return names
}
