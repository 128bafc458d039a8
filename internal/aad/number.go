package aad

import "math"

// Number is a value whose operations are recorded on a tape for reverse-mode
// differentiation. A Number with a nil tape is a constant: operations on it
// record nothing and its adjoint is zero. Numbers carry their tape, so there
// is no global active-tape state to juggle across threads.
type Number struct {
	tape *Tape
	idx  int
	val  float64
}

// Const lifts a plain value; it never touches a tape.
func Const(v float64) Number {
	return Number{idx: -1, val: v}
}

func (a Number) Value() float64 { return a.val }

// FromFloat and Leaf satisfy the numeric contract shared with plain floats.
func (Number) FromFloat(v float64) Number { return Const(v) }

func (Number) Leaf(tape *Tape, v float64) Number { return tape.Leaf(v) }

// Adjoint returns the accumulated derivative of the propagated results with
// respect to this number. Constants have no adjoint.
func (a Number) Adjoint() float64 {
	if a.tape == nil {
		return 0
	}
	return a.tape.nodes[a.idx].adj
}

// AddAdjoint bumps this number's adjoint in place; used when reducing
// per-thread results onto one model.
func (a Number) AddAdjoint(v float64) {
	if a.tape != nil {
		a.tape.nodes[a.idx].adj += v
	}
}

// PropagateToMark seeds this number's adjoint with 1 and sweeps back to the
// tape's mark. With reset false, adjoints already sitting on the setup region
// keep accumulating across calls; reset true zeroes the per-path region first.
func (a Number) PropagateToMark(reset bool) {
	t := a.tape
	if t == nil || a.idx < t.mark {
		return
	}
	if reset {
		for i := t.mark; i < len(t.nodes); i++ {
			t.nodes[i].adj = 0
		}
	}
	t.nodes[a.idx].adj += 1
	for i := a.idx; i >= t.mark; i-- {
		nd := &t.nodes[i]
		if nd.adj == 0 {
			continue
		}
		for k := 0; k < nd.argc; k++ {
			t.nodes[nd.args[k]].adj += nd.ders[k] * nd.adj
		}
	}
}

func (a Number) Add(b Number) Number {
	return binary(a, b, a.val+b.val, 1, 1)
}

func (a Number) Sub(b Number) Number {
	return binary(a, b, a.val-b.val, 1, -1)
}

func (a Number) Mul(b Number) Number {
	return binary(a, b, a.val*b.val, b.val, a.val)
}

func (a Number) Div(b Number) Number {
	return binary(a, b, a.val/b.val, 1/b.val, -a.val/(b.val*b.val))
}

func (a Number) AddFloat(c float64) Number { return unary(a, a.val+c, 1) }

func (a Number) SubFloat(c float64) Number { return unary(a, a.val-c, 1) }

func (a Number) MulFloat(c float64) Number { return unary(a, a.val*c, c) }

func (a Number) DivFloat(c float64) Number { return unary(a, a.val/c, 1/c) }

func (a Number) Neg() Number { return unary(a, -a.val, -1) }

func (a Number) Exp() Number {
	e := math.Exp(a.val)
	return unary(a, e, e)
}

func (a Number) Log() Number {
	return unary(a, math.Log(a.val), 1/a.val)
}

func (a Number) Sqrt() Number {
	s := math.Sqrt(a.val)
	return unary(a, s, 0.5/s)
}

// Max picks the larger operand; the derivative follows the winner.
func (a Number) Max(b Number) Number {
	if a.val >= b.val {
		return binary(a, b, a.val, 1, 0)
	}
	return binary(a, b, b.val, 0, 1)
}

func (a Number) MaxFloat(c float64) Number {
	if a.val >= c {
		return unary(a, a.val, 1)
	}
	return Const(c)
}

func unary(a Number, val, der float64) Number {
	if a.tape == nil {
		return Const(val)
	}
	return a.tape.push1(a.idx, val, der)
}

func binary(a, b Number, val, da, db float64) Number {
	switch {
	case a.tape != nil && b.tape != nil:
		return a.tape.push2(a.idx, b.idx, val, da, db)
	case a.tape != nil:
		return a.tape.push1(a.idx, val, da)
	case b.tape != nil:
		return b.tape.push1(b.idx, val, db)
	default:
		return Const(val)
	}
}
