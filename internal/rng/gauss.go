package rng

import (
	xrand "golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/san-kum/mcsim/internal/mc"
)

// Gauss draws from a single sequential PCG source through gonum's normal
// sampler. It has no jump-ahead, so SkipTo falls back on the draw-and-discard
// default; clones carry the full generator state across.
type Gauss struct {
	seed uint64
	dim  int
	src  *xrand.PCGSource
	norm distuv.Normal
}

func NewGauss(seed uint64) *Gauss {
	return &Gauss{seed: seed}
}

func (g *Gauss) Init(simDim int) {
	g.dim = simDim
	g.src = &xrand.PCGSource{}
	g.src.Seed(g.seed)
	g.norm = distuv.Normal{Mu: 0, Sigma: 1, Src: g.src}
}

func (g *Gauss) SimDim() int { return g.dim }

func (g *Gauss) NextG(gauss []float64) {
	for i := range gauss {
		gauss[i] = g.norm.Rand()
	}
}

func (g *Gauss) SkipTo(n int) {
	mc.DrainSkip(g, n)
}

func (g *Gauss) Clone() mc.RNG {
	c := &Gauss{seed: g.seed, dim: g.dim}
	if g.src != nil {
		c.src = &xrand.PCGSource{}
		if state, err := g.src.MarshalBinary(); err == nil {
			_ = c.src.UnmarshalBinary(state)
		}
		c.norm = distuv.Normal{Mu: 0, Sigma: 1, Src: c.src}
	}
	return c
}
