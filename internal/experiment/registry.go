package experiment

import (
	"fmt"

	"github.com/san-kum/mcsim/internal/config"
	"github.com/san-kum/mcsim/internal/mc"
	"github.com/san-kum/mcsim/internal/models"
	"github.com/san-kum/mcsim/internal/products"
	"github.com/san-kum/mcsim/internal/rng"
)

// BuildProduct assembles the configured product at either number type.
func BuildProduct[T mc.Real[T]](cfg *config.Config) (mc.Product[T], error) {
	switch cfg.Product {
	case "european":
		return products.NewEuropeanCall[T](cfg.Strike, cfg.Maturity), nil
	case "european-put":
		return products.NewEuropeanPut[T](cfg.Strike, cfg.Maturity), nil
	case "asian":
		return products.NewAsianCall[T](cfg.Strike, cfg.Maturity, cfg.Fixings), nil
	case "barrier":
		return products.NewUpAndOutCall[T](cfg.Strike, cfg.Barrier, cfg.Maturity, cfg.Fixings), nil
	default:
		return nil, fmt.Errorf("unknown product: %s", cfg.Product)
	}
}

func BuildModel[T mc.Real[T]](cfg *config.Config) (mc.Model[T], error) {
	switch cfg.Model {
	case "blackscholes":
		return models.NewBlackScholes[T](cfg.Spot, cfg.Vol), nil
	case "bachelier":
		return models.NewBachelier[T](cfg.Spot, cfg.Vol), nil
	default:
		return nil, fmt.Errorf("unknown model: %s", cfg.Model)
	}
}

func BuildRNG(cfg *config.Config) (mc.RNG, error) {
	switch cfg.RNG {
	case "pcg":
		return rng.NewPcg(cfg.Seed), nil
	case "gauss":
		return rng.NewGauss(cfg.Seed), nil
	default:
		return nil, fmt.Errorf("unknown rng: %s", cfg.RNG)
	}
}

func ListProducts() []string {
	return []string{"european", "european-put", "asian", "barrier"}
}

func ListModels() []string {
	return []string{"blackscholes", "bachelier"}
}

func ListRNGs() []string {
	return []string{"pcg", "gauss"}
}
