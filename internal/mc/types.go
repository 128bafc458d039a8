package mc

import (
	"math"

	"github.com/san-kum/mcsim/internal/aad"
)

// Time is a year fraction on the simulation timeline.
type Time = float64

// Scenario is the market state a model produces on one timeline date.
type Scenario[T any] struct {
	Spot T
}

// Path is one realization of scenarios across a product's timeline. Engines
// allocate it once and models fill it in place.
type Path[T any] []Scenario[T]

// Real is the arithmetic shared by plain floats and tape-recorded numbers.
// Products and models written against it price at float64 speed and
// differentiate when instantiated with aad.Number.
type Real[T any] interface {
	FromFloat(v float64) T
	Leaf(tape *aad.Tape, v float64) T
	Add(T) T
	Sub(T) T
	Mul(T) T
	Div(T) T
	AddFloat(float64) T
	SubFloat(float64) T
	MulFloat(float64) T
	DivFloat(float64) T
	Neg() T
	Exp() T
	Log() T
	Sqrt() T
	Max(T) T
	MaxFloat(float64) T
	Value() float64
}

// Plain is float64 wearing the Real contract.
type Plain float64

func (Plain) FromFloat(v float64) Plain { return Plain(v) }

func (Plain) Leaf(_ *aad.Tape, v float64) Plain { return Plain(v) }

func (a Plain) Add(b Plain) Plain { return a + b }
func (a Plain) Sub(b Plain) Plain { return a - b }
func (a Plain) Mul(b Plain) Plain { return a * b }
func (a Plain) Div(b Plain) Plain { return a / b }

func (a Plain) AddFloat(c float64) Plain { return a + Plain(c) }
func (a Plain) SubFloat(c float64) Plain { return a - Plain(c) }
func (a Plain) MulFloat(c float64) Plain { return a * Plain(c) }
func (a Plain) DivFloat(c float64) Plain { return a / Plain(c) }

func (a Plain) Neg() Plain  { return -a }
func (a Plain) Exp() Plain  { return Plain(math.Exp(float64(a))) }
func (a Plain) Log() Plain  { return Plain(math.Log(float64(a))) }
func (a Plain) Sqrt() Plain { return Plain(math.Sqrt(float64(a))) }

func (a Plain) Max(b Plain) Plain {
	if a >= b {
		return a
	}
	return b
}

func (a Plain) MaxFloat(c float64) Plain { return a.Max(Plain(c)) }

func (a Plain) Value() float64 { return float64(a) }

// Product prices off a path on its own timeline. Payoff must be a pure
// function of the path: the parallel drivers share one product instance
// across workers.
type Product[T any] interface {
	Timeline() []Time
	Payoff(path Path[T]) T
	Clone() Product[T]
}

// Model turns Gaussian draws into paths. GeneratePath must consume exactly
// SimDim() draws and must not mutate model state; Init may precompute
// timeline-dependent quantities from the parameters. PutOnTape registers the
// parameters as tape leaves (and zeroes their adjoints); plain models ignore
// it.
type Model[T any] interface {
	Init(timeline []Time)
	SimDim() int
	GeneratePath(gauss []float64, path Path[T])
	Clone() Model[T]
	Parameters() []T
	PutOnTape(tape *aad.Tape)
}

// RNG produces vectors of independent standard normals. SkipTo advances the
// state as if n vectors had been drawn; generators without O(1) jump-ahead
// can delegate to DrainSkip.
type RNG interface {
	Init(simDim int)
	NextG(gauss []float64)
	SimDim() int
	SkipTo(n int)
	Clone() RNG
}

// DrainSkip is the slow default for RNG.SkipTo: draw n vectors and throw
// them away.
func DrainSkip(r RNG, n int) {
	scratch := make([]float64, r.SimDim())
	for i := 0; i < n; i++ {
		r.NextG(scratch)
	}
}

// NextGauss fills gauss with the draw for the next path. In antithetic mode
// a fresh vector is drawn on every other call and negated in between; anti
// carries the pairing state across calls.
func NextGauss(r RNG, gauss []float64, antithetic bool, anti *bool) {
	if !antithetic {
		r.NextG(gauss)
		return
	}
	if !*anti {
		r.NextG(gauss)
		*anti = true
		return
	}
	for i := range gauss {
		gauss[i] = -gauss[i]
	}
	*anti = false
}
