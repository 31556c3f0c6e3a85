package filter

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// ErrEmptyWindow means an averaging window ended up with no samples, which correct window
// sizing never produces.
var ErrEmptyWindow = errors.New("averaging window contains no samples")

// Detrend subtracts the line through the first and last samples, so that both ends become 0,
// and returns that line.
func Detrend(v []float64) (intercept, slope float64) {
	n := len(v)
	if n < 2 {
		return 0, 0
	}
	intercept = v[0]
	slope = (v[n-1] - intercept) / float64(n-1)
	for i := range v {
		v[i] -= intercept + slope*float64(i)
	}
	return intercept, slope
}

// Retrend adds back the line removed by Detrend
func Retrend(v []float64, intercept, slope float64) {
	for i := range v {
		v[i] += intercept + slope*float64(i)
	}
}

// MovingAverage applies a rectangular window of width w samples (w even) to v and returns the
// result. Interior samples are averaged over [i-w/2, i+w/2], which is w+1 samples. Near the ends the half-width grows
// from zero, so the first and last samples keep their values; this leaves a small kink where the
// window reaches full size.
func MovingAverage(v []float64, w int) ([]float64, error) {
	n := len(v)
	out := make([]float64, n)
	if n == 0 {
		return out, nil
	}
	half := w / 2

	sums := make([]float64, n+1)
	floats.CumSum(sums[1:], v)

	for i := range v {
		k := min(half, i, n-1-i)
		lo, hi := i-k, i+k
		count := hi - lo + 1
		if count < 1 {
			return nil, fmt.Errorf("%w at index %d", ErrEmptyWindow, i)
		}
		out[i] = (sums[hi+1] - sums[lo]) / float64(count)
	}
	return out, nil
}
