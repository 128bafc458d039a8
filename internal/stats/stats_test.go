package stats

import (
	"math"
	"testing"
)

func TestDescribe(t *testing.T) {
	s := Describe([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	if s.N != 8 {
		t.Errorf("N = %d, want 8", s.N)
	}
	if math.Abs(s.Mean-5) > 1e-12 {
		t.Errorf("Mean = %g, want 5", s.Mean)
	}
	if s.Min != 2 || s.Max != 9 {
		t.Errorf("Min/Max = %g/%g, want 2/9", s.Min, s.Max)
	}
	// sample std of this classic set is sqrt(32/7)
	want := math.Sqrt(32.0 / 7.0)
	if math.Abs(s.Std-want) > 1e-12 {
		t.Errorf("Std = %g, want %g", s.Std, want)
	}
	if math.Abs(s.StdErr-want/math.Sqrt(8)) > 1e-12 {
		t.Errorf("StdErr = %g, want %g", s.StdErr, want/math.Sqrt(8))
	}
}

func TestDescribeSmallSamples(t *testing.T) {
	if s := Describe(nil); s.N != 0 || s.Mean != 0 {
		t.Errorf("empty sample: %+v", s)
	}
	s := Describe([]float64{3})
	if s.Mean != 3 || s.Std != 0 || s.StdErr != 0 {
		t.Errorf("single sample: %+v", s)
	}
}

func TestHistogram(t *testing.T) {
	counts, lo, hi := Histogram([]float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, 5)
	if lo != 0 || hi != 9 {
		t.Errorf("range = [%g, %g], want [0, 9]", lo, hi)
	}
	total := 0.0
	for _, c := range counts {
		total += c
	}
	if total != 10 {
		t.Errorf("histogram counts sum to %g, want 10", total)
	}
}

func TestRunningMean(t *testing.T) {
	rm := RunningMean([]float64{1, 2, 3, 4}, 4)
	want := []float64{1, 1.5, 2, 2.5}
	if len(rm) != len(want) {
		t.Fatalf("got %d points, want %d", len(rm), len(want))
	}
	for i := range want {
		if math.Abs(rm[i]-want[i]) > 1e-12 {
			t.Errorf("point %d = %g, want %g", i, rm[i], want[i])
		}
	}
}
