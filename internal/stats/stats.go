// Package stats summarizes simulated payoff samples.
package stats

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Summary describes a payoff sample.
type Summary struct {
	N      int
	Mean   float64
	Std    float64
	StdErr float64
	Min    float64
	Max    float64
}

// Describe computes the summary of a sample. Std and StdErr are zero for
// samples of fewer than two points.
func Describe(xs []float64) Summary {
	s := Summary{N: len(xs)}
	if s.N == 0 {
		return s
	}
	s.Mean = stat.Mean(xs, nil)
	s.Min, s.Max = xs[0], xs[0]
	for _, x := range xs[1:] {
		if x < s.Min {
			s.Min = x
		}
		if x > s.Max {
			s.Max = x
		}
	}
	if s.N >= 2 {
		s.Std = stat.StdDev(xs, nil)
		s.StdErr = s.Std / math.Sqrt(float64(s.N))
	}
	return s
}

// Histogram buckets the sample into equal-width bins and returns the counts.
// Used for terminal plots.
func Histogram(xs []float64, bins int) (counts []float64, lo, hi float64) {
	if bins < 1 || len(xs) == 0 {
		return nil, 0, 0
	}
	lo, hi = xs[0], xs[0]
	for _, x := range xs[1:] {
		if x < lo {
			lo = x
		}
		if x > hi {
			hi = x
		}
	}
	counts = make([]float64, bins)
	if hi == lo {
		counts[0] = float64(len(xs))
		return counts, lo, hi
	}
	w := (hi - lo) / float64(bins)
	for _, x := range xs {
		b := int((x - lo) / w)
		if b >= bins {
			b = bins - 1
		}
		counts[b]++
	}
	return counts, lo, hi
}

// RunningMean returns the cumulative mean after each sample, downsampled to
// at most points entries for plotting.
func RunningMean(xs []float64, points int) []float64 {
	if len(xs) == 0 || points < 1 {
		return nil
	}
	if points > len(xs) {
		points = len(xs)
	}
	out := make([]float64, 0, points)
	sum := 0.0
	step := len(xs) / points
	if step < 1 {
		step = 1
	}
	for i, x := range xs {
		sum += x
		if (i+1)%step == 0 || i == len(xs)-1 {
			out = append(out, sum/float64(i+1))
		}
	}
	return out
}
