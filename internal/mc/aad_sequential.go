package mc

import "github.com/san-kum/mcsim/internal/aad"

// SimulateAAD runs the sequential algorithm on tape-recorded numbers and
// returns the pathwise payoffs plus a model clone whose parameter adjoints
// hold, summed over all paths, the derivative of each path's payoff with
// respect to that parameter.
//
// The engine owns the tape for the duration of the call: it rewinds it during
// setup, rewinds to the mark before every path, propagates each payoff down
// to the mark without resetting (so parameter adjoints accumulate), and
// finishes with a single mark-to-start sweep over the shared setup region.
// The caller decides what to do with the tape afterwards.
func SimulateAAD(
	prd Product[aad.Number],
	mdl Model[aad.Number],
	r RNG,
	nPath int,
	antithetic bool,
	tape *aad.Tape,
) ([]float64, Model[aad.Number]) {
	cMdl, cRng, gauss, path := initAAD(prd, mdl, r, tape)

	res := make([]float64, nPath)
	anti := false
	for i := range res {
		// wipe the previous path's operations; the setup region and its
		// accumulated adjoints stay
		tape.RewindToMark()

		NextGauss(cRng, gauss, antithetic, &anti)
		cMdl.GeneratePath(gauss, path)
		pay := prd.Payoff(path)
		res[i] = pay.Value()
		pay.PropagateToMark(false)
	}

	// one sweep over the setup region carries the accumulated per-path
	// contributions into the parameter leaves
	tape.PropagateMarkToStart()

	return res, cMdl
}
