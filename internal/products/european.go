package products

import "github.com/san-kum/mcsim/internal/mc"

// European is a vanilla call or put paying at a single maturity.
type European[T mc.Real[T]] struct {
	strike   float64
	maturity mc.Time
	call     bool
	timeline []mc.Time
}

func NewEuropeanCall[T mc.Real[T]](strike float64, maturity mc.Time) *European[T] {
	return &European[T]{strike: strike, maturity: maturity, call: true, timeline: []mc.Time{maturity}}
}

func NewEuropeanPut[T mc.Real[T]](strike float64, maturity mc.Time) *European[T] {
	return &European[T]{strike: strike, maturity: maturity, call: false, timeline: []mc.Time{maturity}}
}

func (p *European[T]) Timeline() []mc.Time { return p.timeline }

func (p *European[T]) Payoff(path mc.Path[T]) T {
	spot := path[len(path)-1].Spot
	if p.call {
		return spot.SubFloat(p.strike).MaxFloat(0)
	}
	return spot.Neg().AddFloat(p.strike).MaxFloat(0)
}

func (p *European[T]) Clone() mc.Product[T] {
	c := *p
	c.timeline = append([]mc.Time(nil), p.timeline...)
	return &c
}
