package mc

import "github.com/san-kum/mcsim/internal/aad"

// initAAD performs the one-time setup both differentiable drivers share:
// clone the inputs, lay the setup region on the tape and mark it, then
// allocate the reusable buffers.
//
// Ordering matters. The parameters go on first (PutOnTape, which also zeroes
// their adjoints), then Init, because timeline precomputation may itself
// depend on the parameters and must sit on tape below the mark where
// per-path rewinds cannot erase it.
func initAAD(
	prd Product[aad.Number],
	mdl Model[aad.Number],
	r RNG,
	tape *aad.Tape,
) (Model[aad.Number], RNG, []float64, Path[aad.Number]) {
	cMdl := mdl.Clone()
	cRng := r.Clone()

	tape.Rewind()
	cMdl.PutOnTape(tape)
	cMdl.Init(prd.Timeline())
	tape.Mark()

	cRng.Init(cMdl.SimDim())
	gauss := make([]float64, cMdl.SimDim())
	path := make(Path[aad.Number], len(prd.Timeline()))
	return cMdl, cRng, gauss, path
}
