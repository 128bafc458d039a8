package mc

// Simulate runs nPath simulations one after another and returns the payoff
// of each path in path order. It is the reference the parallel driver must
// reproduce bit for bit.
func Simulate(prd Product[Plain], mdl Model[Plain], r RNG, nPath int, antithetic bool) []float64 {
	// work on copies; setting up the simulation mutates model and RNG
	cMdl := mdl.Clone()
	cRng := r.Clone()
	cMdl.Init(prd.Timeline())
	cRng.Init(cMdl.SimDim())

	gauss := make([]float64, cMdl.SimDim())
	path := make(Path[Plain], len(prd.Timeline()))
	res := make([]float64, nPath)

	anti := false
	for i := range res {
		NextGauss(cRng, gauss, antithetic, &anti)
		cMdl.GeneratePath(gauss, path)
		res[i] = prd.Payoff(path).Value()
	}
	return res
}
