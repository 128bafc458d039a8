package rng

import (
	"math/rand/v2"

	"github.com/san-kum/mcsim/internal/mc"
)

// Pcg keys every Gaussian vector to its own PCG stream derived from the seed
// and a vector counter. SkipTo is a counter bump, so a clone positioned at
// any path index reproduces exactly the vectors the sequential stream would
// produce there.
type Pcg struct {
	seed uint64
	dim  int
	next uint64
}

func NewPcg(seed uint64) *Pcg {
	return &Pcg{seed: seed}
}

func (p *Pcg) Init(simDim int) {
	p.dim = simDim
	p.next = 0
}

func (p *Pcg) SimDim() int { return p.dim }

func (p *Pcg) NextG(gauss []float64) {
	r := rand.New(rand.NewPCG(p.seed, p.next))
	for i := range gauss {
		gauss[i] = r.NormFloat64()
	}
	p.next++
}

func (p *Pcg) SkipTo(n int) {
	p.next += uint64(n)
}

func (p *Pcg) Clone() mc.RNG {
	c := *p
	return &c
}
