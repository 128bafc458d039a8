package products

import "github.com/san-kum/mcsim/internal/mc"

// UpAndOutCall pays a vanilla call at maturity unless the spot touches the
// barrier on any monitoring date. Monitoring dates are evenly spaced and
// include maturity. The knock-out test reads plain values, so the barrier
// event itself contributes no derivative.
type UpAndOutCall[T mc.Real[T]] struct {
	strike   float64
	barrier  float64
	timeline []mc.Time
}

func NewUpAndOutCall[T mc.Real[T]](strike, barrier float64, maturity mc.Time, monitorings int) *UpAndOutCall[T] {
	if monitorings < 1 {
		monitorings = 1
	}
	timeline := make([]mc.Time, monitorings)
	dt := maturity / mc.Time(monitorings)
	for k := range timeline {
		timeline[k] = dt * mc.Time(k+1)
	}
	return &UpAndOutCall[T]{strike: strike, barrier: barrier, timeline: timeline}
}

func (p *UpAndOutCall[T]) Timeline() []mc.Time { return p.timeline }

func (p *UpAndOutCall[T]) Payoff(path mc.Path[T]) T {
	for _, s := range path {
		if s.Spot.Value() >= p.barrier {
			var z T
			return z.FromFloat(0)
		}
	}
	return path[len(path)-1].Spot.SubFloat(p.strike).MaxFloat(0)
}

func (p *UpAndOutCall[T]) Clone() mc.Product[T] {
	c := *p
	c.timeline = append([]mc.Time(nil), p.timeline...)
	return &c
}
