package models

import (
	"math"

	"github.com/san-kum/mcsim/internal/aad"
	"github.com/san-kum/mcsim/internal/mc"
)

// BlackScholes diffuses a lognormal spot along the product timeline with
// zero rates. Its parameters, in order, are the initial spot and the
// volatility, so the accumulated adjoints read as delta and vega.
type BlackScholes[T mc.Real[T]] struct {
	spot0 float64
	vol0  float64

	spot T
	vol  T

	// per-step precomputation, laid on tape by Init under differentiation
	stds   []T // vol * sqrt(dt)
	drifts []T // -vol^2 * dt / 2
}

func NewBlackScholes[T mc.Real[T]](spot, vol float64) *BlackScholes[T] {
	m := &BlackScholes[T]{spot0: spot, vol0: vol}
	var z T
	m.spot = z.FromFloat(spot)
	m.vol = z.FromFloat(vol)
	return m
}

// PutOnTape re-registers the parameters as leaves, zeroing their adjoints.
func (m *BlackScholes[T]) PutOnTape(tape *aad.Tape) {
	var z T
	m.spot = z.Leaf(tape, m.spot0)
	m.vol = z.Leaf(tape, m.vol0)
}

func (m *BlackScholes[T]) Init(timeline []mc.Time) {
	m.stds = make([]T, len(timeline))
	m.drifts = make([]T, len(timeline))
	prev := mc.Time(0)
	for k, t := range timeline {
		dt := t - prev
		m.stds[k] = m.vol.MulFloat(math.Sqrt(dt))
		m.drifts[k] = m.vol.Mul(m.vol).MulFloat(-0.5 * dt)
		prev = t
	}
}

func (m *BlackScholes[T]) SimDim() int { return len(m.stds) }

func (m *BlackScholes[T]) GeneratePath(gauss []float64, path mc.Path[T]) {
	spot := m.spot
	for k := range path {
		spot = spot.Mul(m.stds[k].MulFloat(gauss[k]).Add(m.drifts[k]).Exp())
		path[k].Spot = spot
	}
}

func (m *BlackScholes[T]) Clone() mc.Model[T] {
	c := *m
	c.stds = append([]T(nil), m.stds...)
	c.drifts = append([]T(nil), m.drifts...)
	return &c
}

func (m *BlackScholes[T]) Parameters() []T {
	return []T{m.spot, m.vol}
}

func (m *BlackScholes[T]) ParamLabels() []string {
	return []string{"delta", "vega"}
}
