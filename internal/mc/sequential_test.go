package mc_test

import (
	"math"
	"testing"

	"github.com/san-kum/mcsim/internal/analytics"
	"github.com/san-kum/mcsim/internal/mc"
	"github.com/san-kum/mcsim/internal/models"
	"github.com/san-kum/mcsim/internal/products"
	"github.com/san-kum/mcsim/internal/rng"
)

func TestSimulateDeterministic(t *testing.T) {
	prd := products.NewEuropeanCall[mc.Plain](100, 1)
	mdl := models.NewBlackScholes[mc.Plain](100, 0.2)
	r := rng.NewPcg(42)

	a := mc.Simulate(prd, mdl, r, 1000, true)
	b := mc.Simulate(prd, mdl, r, 1000, true)

	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("path %d: %g vs %g on identical runs", i, a[i], b[i])
		}
	}
}

func TestSimulateDoesNotMutateInputs(t *testing.T) {
	prd := products.NewEuropeanCall[mc.Plain](100, 1)
	mdl := models.NewBlackScholes[mc.Plain](100, 0.2)
	r := rng.NewPcg(42)
	r.Init(1)

	scratch := make([]float64, 1)
	r.NextG(scratch)
	want := scratch[0]

	mc.Simulate(prd, mdl, r, 100, false)

	// the caller's RNG state is untouched
	r2 := rng.NewPcg(42)
	r2.Init(1)
	r2.NextG(scratch)
	if scratch[0] != want {
		t.Error("simulation advanced the caller's generator")
	}
}

func TestAntitheticPairing(t *testing.T) {
	// a zero-strike call pays the spot itself; under Bachelier the two legs
	// of an antithetic pair then sum to exactly twice the initial spot
	prd := products.NewEuropeanCall[mc.Plain](0, 1)
	mdl := models.NewBachelier[mc.Plain](100, 5)
	r := rng.NewPcg(7)

	res := mc.Simulate(prd, mdl, r, 100, true)
	for i := 0; i+1 < len(res); i += 2 {
		if math.Abs(res[i]+res[i+1]-200) > 1e-9 {
			t.Errorf("pair %d: %g + %g = %g, want 200", i/2, res[i], res[i+1], res[i]+res[i+1])
		}
	}
}

func TestSimulateConvergesToBlackScholes(t *testing.T) {
	const (
		spot   = 100.0
		strike = 100.0
		vol    = 0.2
		mat    = 1.0
		nPath  = 200000
	)
	prd := products.NewEuropeanCall[mc.Plain](strike, mat)
	mdl := models.NewBlackScholes[mc.Plain](spot, vol)
	r := rng.NewPcg(12345)

	res := mc.Simulate(prd, mdl, r, nPath, true)
	sum := 0.0
	for _, p := range res {
		sum += p
	}
	price := sum / nPath

	want := analytics.BlackScholes(spot, strike, vol, mat)
	if math.Abs(price-want) > 0.1 {
		t.Errorf("monte carlo price %g, closed form %g", price, want)
	}
}

func TestSimulateMultiStepProduct(t *testing.T) {
	prd := products.NewAsianCall[mc.Plain](100, 1, 12)
	mdl := models.NewBlackScholes[mc.Plain](100, 0.2)
	r := rng.NewPcg(99)

	res := mc.Simulate(prd, mdl, r, 50000, true)
	sum := 0.0
	for _, p := range res {
		sum += p
	}
	price := sum / float64(len(res))

	// the average spot has lower variance than the terminal spot, so the
	// asian call must be cheaper than its vanilla counterpart
	vanilla := analytics.BlackScholes(100, 100, 0.2, 1)
	if price <= 0 || price >= vanilla {
		t.Errorf("asian price %g not in (0, %g)", price, vanilla)
	}
}
