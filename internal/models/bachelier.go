package models

import (
	"math"

	"github.com/san-kum/mcsim/internal/aad"
	"github.com/san-kum/mcsim/internal/mc"
)

// Bachelier diffuses the spot additively with a normal (absolute) volatility.
// Parameters are the initial spot and the normal vol, same ordering as
// BlackScholes.
type Bachelier[T mc.Real[T]] struct {
	spot0 float64
	vol0  float64

	spot T
	vol  T

	stds []T // vol * sqrt(dt)
}

func NewBachelier[T mc.Real[T]](spot, vol float64) *Bachelier[T] {
	m := &Bachelier[T]{spot0: spot, vol0: vol}
	var z T
	m.spot = z.FromFloat(spot)
	m.vol = z.FromFloat(vol)
	return m
}

func (m *Bachelier[T]) PutOnTape(tape *aad.Tape) {
	var z T
	m.spot = z.Leaf(tape, m.spot0)
	m.vol = z.Leaf(tape, m.vol0)
}

func (m *Bachelier[T]) Init(timeline []mc.Time) {
	m.stds = make([]T, len(timeline))
	prev := mc.Time(0)
	for k, t := range timeline {
		m.stds[k] = m.vol.MulFloat(math.Sqrt(t - prev))
		prev = t
	}
}

func (m *Bachelier[T]) SimDim() int { return len(m.stds) }

func (m *Bachelier[T]) GeneratePath(gauss []float64, path mc.Path[T]) {
	spot := m.spot
	for k := range path {
		spot = spot.Add(m.stds[k].MulFloat(gauss[k]))
		path[k].Spot = spot
	}
}

func (m *Bachelier[T]) Clone() mc.Model[T] {
	c := *m
	c.stds = append([]T(nil), m.stds...)
	return &c
}

func (m *Bachelier[T]) Parameters() []T {
	return []T{m.spot, m.vol}
}

func (m *Bachelier[T]) ParamLabels() []string {
	return []string{"delta", "vega"}
}
