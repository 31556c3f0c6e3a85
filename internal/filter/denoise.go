// Package filter removes the spurious oscillations that digital elevation models put into
// a route's height profile, and smooths the horizontal path.
package filter

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/interp"

	"github.com/jengzang/kcals-backend-go/internal/models"
	"github.com/jengzang/kcals-backend-go/internal/spatial"
)

// SampleSpacing is the target horizontal spacing, in meters, of the uniform resampling.
// It must be well below the shortest filter length in use.
const SampleSpacing = 10.0

// Options sets the filter lengths in meters
type Options struct {
	OscH     float64 // typical wavelength of bogus oscillations in height
	XYFilter float64 // smoothing length for the horizontal path
}

// Denoise smooths a planar path and returns both the filtered planar points and the
// corresponding track points. The path is resampled at uniform horizontal spacing, each
// coordinate is detrended, averaged over a moving window, and the trend is added back, so the
// first and last points are unchanged. If neither window covers more than one sample the
// input is returned as is.
func Denoise(planar []spatial.PlanarPoint, o spatial.Origin, opts Options) ([]spatial.PlanarPoint, []models.TrackPoint, error) {
	h, xs, ys, zs := distinctSamples(planar)
	if len(h) < 2 {
		return planar, spatial.UnprojectPath(planar, o), nil
	}

	length := h[len(h)-1]
	n := NextPowerOfTwo(int(math.Floor(length/SampleSpacing)) + 1)
	dh := length / float64(n-1)

	wxy := WindowSamples(opts.XYFilter, dh)
	wz := WindowSamples(opts.OscH, dh)
	if wxy <= 1 && wz <= 1 {
		return planar, spatial.UnprojectPath(planar, o), nil
	}

	grid := floats.Span(make([]float64, n), 0, length)
	x, err := resample(h, xs, grid)
	if err != nil {
		return nil, nil, err
	}
	y, err := resample(h, ys, grid)
	if err != nil {
		return nil, nil, err
	}
	z, err := resample(h, zs, grid)
	if err != nil {
		return nil, nil, err
	}

	if err := smooth(x, wxy); err != nil {
		return nil, nil, err
	}
	if err := smooth(y, wxy); err != nil {
		return nil, nil, err
	}
	if err := smooth(z, wz); err != nil {
		return nil, nil, err
	}

	out := make([]spatial.PlanarPoint, n)
	for i := range out {
		out[i] = spatial.PlanarPoint{X: x[i], Y: y[i], Z: z[i]}
	}
	return out, spatial.UnprojectPath(out, o), nil
}

// smooth filters one channel in place
func smooth(v []float64, w int) error {
	if w <= 1 {
		return nil
	}
	intercept, slope := Detrend(v)
	filtered, err := MovingAverage(v, w)
	if err != nil {
		return err
	}
	copy(v, filtered)
	Retrend(v, intercept, slope)
	return nil
}

// distinctSamples computes the cumulative horizontal distance along the path and drops points
// that do not advance horizontally, so that h is strictly increasing.
func distinctSamples(planar []spatial.PlanarPoint) (h, xs, ys, zs []float64) {
	if len(planar) == 0 {
		return nil, nil, nil, nil
	}
	h = append(h, 0)
	xs = append(xs, planar[0].X)
	ys = append(ys, planar[0].Y)
	zs = append(zs, planar[0].Z)

	cum := 0.0
	for i := 1; i < len(planar); i++ {
		dx := planar[i].X - planar[i-1].X
		dy := planar[i].Y - planar[i-1].Y
		step := math.Hypot(dx, dy)
		if step == 0 {
			continue
		}
		cum += step
		if cum <= h[len(h)-1] {
			continue
		}
		h = append(h, cum)
		xs = append(xs, planar[i].X)
		ys = append(ys, planar[i].Y)
		zs = append(zs, planar[i].Z)
	}
	return h, xs, ys, zs
}

func resample(h, v, grid []float64) ([]float64, error) {
	var pl interp.PiecewiseLinear
	if err := pl.Fit(h, v); err != nil {
		return nil, fmt.Errorf("failed to fit profile for resampling: %w", err)
	}
	out := make([]float64, len(grid))
	for i, g := range grid {
		out[i] = pl.Predict(g)
	}
	return out, nil
}

// NextPowerOfTwo returns the smallest power of two >= n, and 2 for n < 2
func NextPowerOfTwo(n int) int {
	p := 2
	for p < n {
		p <<= 1
	}
	return p
}

// WindowSamples converts a filter length in meters into a window width in samples of spacing dh,
// rounded up to an even number.
func WindowSamples(meters, dh float64) int {
	if dh <= 0 || meters <= 0 {
		return 0
	}
	w := int(math.Floor(meters / dh))
	if w%2 != 0 {
		w++
	}
	return w
}
