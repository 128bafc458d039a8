package products

import "github.com/san-kum/mcsim/internal/mc"

// Asian is a call on the arithmetic average of the spot over evenly spaced
// fixings ending at maturity.
type Asian[T mc.Real[T]] struct {
	strike   float64
	timeline []mc.Time
}

func NewAsianCall[T mc.Real[T]](strike float64, maturity mc.Time, fixings int) *Asian[T] {
	if fixings < 1 {
		fixings = 1
	}
	timeline := make([]mc.Time, fixings)
	dt := maturity / mc.Time(fixings)
	for k := range timeline {
		timeline[k] = dt * mc.Time(k+1)
	}
	return &Asian[T]{strike: strike, timeline: timeline}
}

func (p *Asian[T]) Timeline() []mc.Time { return p.timeline }

func (p *Asian[T]) Payoff(path mc.Path[T]) T {
	avg := path[0].Spot
	for _, s := range path[1:] {
		avg = avg.Add(s.Spot)
	}
	avg = avg.DivFloat(float64(len(path)))
	return avg.SubFloat(p.strike).MaxFloat(0)
}

func (p *Asian[T]) Clone() mc.Product[T] {
	c := *p
	c.timeline = append([]mc.Time(nil), p.timeline...)
	return &c
}
