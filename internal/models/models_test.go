package models

import (
	"math"
	"testing"

	"github.com/san-kum/mcsim/internal/mc"
)

func TestBlackScholesSingleStep(t *testing.T) {
	const (
		spot = 100.0
		vol  = 0.2
		mat  = 1.5
		g    = 0.7
	)
	m := NewBlackScholes[mc.Plain](spot, vol)
	m.Init([]mc.Time{mat})
	if m.SimDim() != 1 {
		t.Fatalf("SimDim = %d, want 1", m.SimDim())
	}

	path := make(mc.Path[mc.Plain], 1)
	m.GeneratePath([]float64{g}, path)

	want := spot * math.Exp(vol*math.Sqrt(mat)*g-0.5*vol*vol*mat)
	if got := path[0].Spot.Value(); math.Abs(got-want) > 1e-12 {
		t.Errorf("spot after one step = %g, want %g", got, want)
	}
}

func TestBlackScholesMultiStepCompounds(t *testing.T) {
	m := NewBlackScholes[mc.Plain](100, 0.2)
	timeline := []mc.Time{0.5, 1.0, 2.0}
	m.Init(timeline)

	gauss := []float64{0.3, -1.1, 0.8}
	path := make(mc.Path[mc.Plain], 3)
	m.GeneratePath(gauss, path)

	spot, prev := 100.0, 0.0
	for k, tk := range timeline {
		dt := tk - prev
		spot *= math.Exp(0.2*math.Sqrt(dt)*gauss[k] - 0.5*0.2*0.2*dt)
		if got := path[k].Spot.Value(); math.Abs(got-spot) > 1e-10 {
			t.Errorf("step %d: spot = %g, want %g", k, got, spot)
		}
		prev = tk
	}
}

func TestBachelierSingleStep(t *testing.T) {
	m := NewBachelier[mc.Plain](100, 15)
	m.Init([]mc.Time{0.25})

	path := make(mc.Path[mc.Plain], 1)
	m.GeneratePath([]float64{-0.5}, path)

	want := 100 + 15*math.Sqrt(0.25)*(-0.5)
	if got := path[0].Spot.Value(); math.Abs(got-want) > 1e-12 {
		t.Errorf("spot after one step = %g, want %g", got, want)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	m := NewBlackScholes[mc.Plain](100, 0.2)
	m.Init([]mc.Time{1.0})

	c := m.Clone()
	c.Init([]mc.Time{0.5, 1.0})

	if m.SimDim() != 1 {
		t.Errorf("original SimDim changed to %d after re-initialising clone", m.SimDim())
	}
	if c.SimDim() != 2 {
		t.Errorf("clone SimDim = %d, want 2", c.SimDim())
	}
}

func TestParameterLabels(t *testing.T) {
	bs := NewBlackScholes[mc.Plain](100, 0.2)
	ba := NewBachelier[mc.Plain](100, 15)
	for _, labels := range [][]string{bs.ParamLabels(), ba.ParamLabels()} {
		if len(labels) != 2 || labels[0] != "delta" || labels[1] != "vega" {
			t.Errorf("labels = %v, want [delta vega]", labels)
		}
	}
	if n := len(bs.Parameters()); n != 2 {
		t.Errorf("BlackScholes has %d parameters, want 2", n)
	}
}
