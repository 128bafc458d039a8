package mc

import (
	"github.com/san-kum/mcsim/internal/aad"
	"github.com/san-kum/mcsim/internal/pool"
)

// parallelRunAAD is the per-call state of ParallelSimulateAAD: one tape,
// model clone, RNG clone and scratch buffer per worker index, set up lazily
// the first time a batch lands on that worker.
//
// ready is read and written without synchronization. That is sound only
// because the pool guarantees a worker index is never held by two in-flight
// tasks: every slot is touched by one goroutine at a time, and the final
// reduction runs strictly after the wait-for-all join.
type parallelRunAAD struct {
	prd        Product[aad.Number]
	mdl        Model[aad.Number]
	rng        RNG
	antithetic bool

	tapes []*aad.Tape
	mdls  []Model[aad.Number]
	rngs  []RNG
	gauss [][]float64
	paths []Path[aad.Number]
	ready []bool
	res   []float64
}

func (s *parallelRunAAD) batch(first, count int) func(worker int) {
	return func(worker int) { s.run(worker, first, count) }
}

func (s *parallelRunAAD) run(worker, first, count int) {
	if !s.ready[worker] {
		s.mdls[worker], s.rngs[worker], s.gauss[worker], s.paths[worker] =
			initAAD(s.prd, s.mdl, s.rng, s.tapes[worker])
		s.ready[worker] = true
	}

	tape := s.tapes[worker]
	mdl := s.mdls[worker]
	gauss := s.gauss[worker]
	path := s.paths[worker]

	taskRng := s.rngs[worker].Clone()
	if s.antithetic {
		taskRng.SkipTo(first / 2)
	} else {
		taskRng.SkipTo(first)
	}

	anti := false
	if s.antithetic && first%2 == 1 {
		taskRng.NextG(gauss)
		anti = true
	}

	for i := 0; i < count; i++ {
		tape.RewindToMark()

		NextGauss(taskRng, gauss, s.antithetic, &anti)
		mdl.GeneratePath(gauss, path)
		pay := s.prd.Payoff(path)
		s.res[first+i] = pay.Value()
		pay.PropagateToMark(false)
	}
}

// ParallelSimulateAAD combines the batched parallel driver with the tape
// protocol of SimulateAAD, keeping one tape per worker so recordings never
// cross threads. After all batches complete it sweeps every used tape from
// its mark to its start, then folds each worker clone's parameter adjoints
// into the calling thread's clone, which it returns.
func ParallelSimulateAAD(
	prd Product[aad.Number],
	mdl Model[aad.Number],
	r RNG,
	nPath int,
	antithetic bool,
	tape *aad.Tape,
) ([]float64, Model[aad.Number]) {
	p := pool.Default()
	nWorker := p.Workers()

	s := &parallelRunAAD{
		prd:        prd,
		mdl:        mdl,
		rng:        r,
		antithetic: antithetic,
		tapes:      make([]*aad.Tape, nWorker+1),
		mdls:       make([]Model[aad.Number], nWorker+1),
		rngs:       make([]RNG, nWorker+1),
		gauss:      make([][]float64, nWorker+1),
		paths:      make([]Path[aad.Number], nWorker+1),
		ready:      make([]bool, nWorker+1),
		res:        make([]float64, nPath),
	}

	// slot 0 is the calling thread: its tape is the caller's and it is set
	// up eagerly; workers get fresh tapes on first use
	s.tapes[0] = tape
	for w := 1; w <= nWorker; w++ {
		s.tapes[w] = aad.NewTape()
	}
	s.mdls[0], s.rngs[0], s.gauss[0], s.paths[0] = initAAD(prd, mdl, r, tape)
	s.ready[0] = true

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

	// workers that never received a batch have nothing on tape
	for w := 0; w <= nWorker; w++ {
		if s.ready[w] {
			s.tapes[w].PropagateMarkToStart()
		}
	}

	params0 := s.mdls[0].Parameters()
	for w := 1; w <= nWorker; w++ {
		if !s.ready[w] {
			continue
		}
		params := s.mdls[w].Parameters()
		for j := range params0 {
			params0[j].AddAdjoint(params[j].Adjoint())
		}
	}

	return s.res, s.mdls[0]
}
