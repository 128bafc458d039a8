package mc_test

import (
	"testing"

	"github.com/san-kum/mcsim/internal/mc"
	"github.com/san-kum/mcsim/internal/models"
	"github.com/san-kum/mcsim/internal/products"
	"github.com/san-kum/mcsim/internal/rng"
)

func TestParallelMatchesSequential(t *testing.T) {
	tests := []struct {
		name       string
		nPath      int
		antithetic bool
	}{
		{"one batch", 64, false},
		{"one batch antithetic", 64, true},
		{"partial batch", 100, false},
		{"partial batch antithetic", 100, true},
		{"batch plus one", 65, true},
		{"many batches", 10000, true},
	}

	prd := products.NewAsianCall[mc.Plain](100, 1, 4)
	mdl := models.NewBlackScholes[mc.Plain](100, 0.2)
	r := rng.NewPcg(42)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seq := mc.Simulate(prd, mdl, r, tt.nPath, tt.antithetic)
			par := mc.ParallelSimulate(prd, mdl, r, tt.nPath, tt.antithetic)

			if len(par) != tt.nPath {
				t.Fatalf("got %d payoffs, want %d", len(par), tt.nPath)
			}
			for i := range seq {
				if seq[i] != par[i] {
					t.Fatalf("path %d: sequential %g, parallel %g", i, seq[i], par[i])
				}
			}
		})
	}
}

func TestParallelWithDrainSkipRNG(t *testing.T) {
	// the gonum-backed generator has no jump-ahead; SkipTo drains instead
	prd := products.NewEuropeanCall[mc.Plain](100, 1)
	mdl := models.NewBlackScholes[mc.Plain](100, 0.2)
	r := rng.NewGauss(7)

	seq := mc.Simulate(prd, mdl, r, 500, true)
	par := mc.ParallelSimulate(prd, mdl, r, 500, true)

	for i := range seq {
		if seq[i] != par[i] {
			t.Fatalf("path %d: sequential %g, parallel %g", i, seq[i], par[i])
		}
	}
}

func TestParallelRepeatable(t *testing.T) {
	prd := products.NewUpAndOutCall[mc.Plain](100, 150, 1, 12)
	mdl := models.NewBlackScholes[mc.Plain](100, 0.2)
	r := rng.NewPcg(11)

	a := mc.ParallelSimulate(prd, mdl, r, 5000, true)
	b := mc.ParallelSimulate(prd, mdl, r, 5000, true)

	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("path %d: %g vs %g across runs", i, a[i], b[i])
		}
	}
}
