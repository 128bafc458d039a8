package mc_test

import (
	"math"
	"testing"

	. "github.com/onsi/gomega"

	"github.com/san-kum/mcsim/internal/aad"
	"github.com/san-kum/mcsim/internal/mc"
	"github.com/san-kum/mcsim/internal/models"
	"github.com/san-kum/mcsim/internal/products"
	"github.com/san-kum/mcsim/internal/rng"
)

const (
	testSpot   = 100.0
	testStrike = 100.0
	testVol    = 0.2
	testMat    = 1.0
)

func aadPricer() (mc.Product[aad.Number], mc.Model[aad.Number]) {
	return products.NewEuropeanCall[aad.Number](testStrike, testMat),
		models.NewBlackScholes[aad.Number](testSpot, testVol)
}

func plainMean(spot, vol float64, nPath int) float64 {
	prd := products.NewEuropeanCall[mc.Plain](testStrike, testMat)
	mdl := models.NewBlackScholes[mc.Plain](spot, vol)
	res := mc.Simulate(prd, mdl, rng.NewPcg(42), nPath, true)
	sum := 0.0
	for _, p := range res {
		sum += p
	}
	return sum / float64(nPath)
}

func TestAADPayoffsMatchPlain(t *testing.T) {
	g := NewWithT(t)

	prd, mdl := aadPricer()
	res, _ := mc.SimulateAAD(prd, mdl, rng.NewPcg(42), 1000, true, aad.NewTape())

	plainPrd := products.NewEuropeanCall[mc.Plain](testStrike, testMat)
	plainMdl := models.NewBlackScholes[mc.Plain](testSpot, testVol)
	plain := mc.Simulate(plainPrd, plainMdl, rng.NewPcg(42), 1000, true)

	g.Expect(res).To(HaveLen(1000))
	for i := range res {
		g.Expect(res[i]).To(Equal(plain[i]), "path %d", i)
	}
}

func TestAdjointsMatchFiniteDifference(t *testing.T) {
	g := NewWithT(t)

	const nPath = 20000
	prd, mdl := aadPricer()
	_, used := mc.SimulateAAD(prd, mdl, rng.NewPcg(42), nPath, true, aad.NewTape())

	params := used.Parameters()
	delta := params[0].Adjoint() / nPath
	vega := params[1].Adjoint() / nPath

	// central differences on the same seed, so the only difference is the bump
	hs := 1e-5 * testSpot
	fdDelta := (plainMean(testSpot+hs, testVol, nPath) - plainMean(testSpot-hs, testVol, nPath)) / (2 * hs)
	hv := 1e-5 * testVol
	fdVega := (plainMean(testSpot, testVol+hv, nPath) - plainMean(testSpot, testVol-hv, nPath)) / (2 * hv)

	g.Expect(delta).To(BeNumerically("~", fdDelta, 1e-4*math.Abs(fdDelta)))
	g.Expect(vega).To(BeNumerically("~", fdVega, 1e-4*math.Abs(fdVega)))
}

func TestParallelAdjointsMatchSequential(t *testing.T) {
	g := NewWithT(t)

	const nPath = 10000
	prd, mdl := aadPricer()

	_, seqMdl := mc.SimulateAAD(prd, mdl, rng.NewPcg(42), nPath, true, aad.NewTape())
	parRes, parMdl := mc.ParallelSimulateAAD(prd, mdl, rng.NewPcg(42), nPath, true, aad.NewTape())

	seqRes, _ := mc.SimulateAAD(prd, mdl, rng.NewPcg(42), nPath, true, aad.NewTape())
	for i := range seqRes {
		g.Expect(parRes[i]).To(Equal(seqRes[i]), "path %d", i)
	}

	// adjoints are summed in a different order across workers, so allow
	// rounding but nothing more
	seqParams := seqMdl.Parameters()
	parParams := parMdl.Parameters()
	g.Expect(parParams).To(HaveLen(len(seqParams)))
	for j := range seqParams {
		want := seqParams[j].Adjoint()
		g.Expect(parParams[j].Adjoint()).To(BeNumerically("~", want, 1e-8*math.Abs(want)))
	}
}

func TestTapeStableAcrossRepeatedCalls(t *testing.T) {
	g := NewWithT(t)

	prd, mdl := aadPricer()
	tape := aad.NewTape()

	mc.SimulateAAD(prd, mdl, rng.NewPcg(42), 500, true, tape)
	lenAfterFirst := tape.Len()

	mc.SimulateAAD(prd, mdl, rng.NewPcg(42), 500, true, tape)
	g.Expect(tape.Len()).To(Equal(lenAfterFirst), "tape must not grow across identical calls")
}

func TestAADBarrierGreeks(t *testing.T) {
	g := NewWithT(t)

	// knocked-out paths contribute zero derivative; the engine must still
	// produce finite adjoints for the surviving ones
	prd := products.NewUpAndOutCall[aad.Number](100, 130, 1, 12)
	mdl := models.NewBlackScholes[aad.Number](testSpot, testVol)

	_, used := mc.SimulateAAD(prd, mdl, rng.NewPcg(42), 10000, true, aad.NewTape())
	params := used.Parameters()
	delta := params[0].Adjoint() / 10000

	g.Expect(math.IsNaN(delta)).To(BeFalse())
	g.Expect(delta).NotTo(BeZero())
}
