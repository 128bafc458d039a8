package mc

import "github.com/san-kum/mcsim/internal/pool"

// BatchSize is the number of paths dispatched per pool task.
const BatchSize = 64

// parallelRun is the state shared by the batches of one ParallelSimulate
// call. Scratch buffers are per worker index and the model clone is shared
// read-only, so batches never need a lock.
type parallelRun struct {
	prd        Product[Plain]
	mdl        Model[Plain]
	rng        RNG
	antithetic bool

	gauss [][]float64
	paths []Path[Plain]
	res   []float64
}

func (s *parallelRun) batch(first, count int) func(worker int) {
	return func(worker int) { s.run(worker, first, count) }
}

func (s *parallelRun) run(worker, first, count int) {
	gauss := s.gauss[worker]
	path := s.paths[worker]

	// a private RNG positioned where the sequential driver would be at
	// path `first`; antithetic pairs consume one draw per two paths
	taskRng := s.rng.Clone()
	if s.antithetic {
		taskRng.SkipTo(first / 2)
	} else {
		taskRng.SkipTo(first)
	}

	anti := false
	if s.antithetic && first%2 == 1 {
		// starting on the second leg of a pair: re-draw the pair's vector
		// so the negation below sees it
		taskRng.NextG(gauss)
		anti = true
	}

	for i := 0; i < count; i++ {
		NextGauss(taskRng, gauss, s.antithetic, &anti)
		s.mdl.GeneratePath(gauss, path)
		s.res[first+i] = s.prd.Payoff(path).Value()
	}
}

// ParallelSimulate computes the same payoffs as Simulate, in fixed-size
// batches spread over the shared worker pool. Each batch repositions its own
// RNG clone from its starting path index, so results do not depend on which
// worker runs what, or in which order.
func ParallelSimulate(prd Product[Plain], mdl Model[Plain], r RNG, nPath int, antithetic bool) []float64 {
	cMdl := mdl.Clone()
	cRng := r.Clone()
	cMdl.Init(prd.Timeline())
	cRng.Init(cMdl.SimDim())

	p := pool.Default()
	nWorker := p.Workers()

	s := &parallelRun{
		prd:        prd,
		mdl:        cMdl,
		rng:        cRng,
		antithetic: antithetic,
		gauss:      make([][]float64, nWorker+1),
		paths:      make([]Path[Plain], nWorker+1),
		res:        make([]float64, nPath),
	}
	for w := range s.gauss {
		s.gauss[w] = make([]float64, cMdl.SimDim())
		s.paths[w] = make(Path[Plain], len(prd.Timeline()))
	}

	handles := make([]*pool.Handle, 0, nPath/BatchSize+1)
	first, left := 0, nPath
	for left > 0 {
		count := min(left, BatchSize)
		handles = append(handles, p.Spawn(s.batch(first, count)))
		first += count
		left -= count
	}
	for _, h := range handles {
		p.ActiveWait(h)
	}
	return s.res
}
