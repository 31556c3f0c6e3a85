package filter

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jengzang/kcals-backend-go/internal/spatial"
)

var origin = spatial.Origin{Lat: 34.266225, Lon: -117.626925}

// straightPath runs north-east from the origin with altitude given as a function of h
func straightPath(length, step float64, alt func(h float64) float64) []spatial.PlanarPoint {
	var path []spatial.PlanarPoint
	for h := 0.0; h <= length+1e-9; h += step {
		path = append(path, spatial.PlanarPoint{X: 0.6 * h, Y: 0.8 * h, Z: alt(h)})
	}
	return path
}

func TestDenoiseLinearRampIsUnchanged(t *testing.T) {
	ramp := func(h float64) float64 { return 250 + 0.07*h }
	in := straightPath(3000, 7, ramp)

	out, track, err := Denoise(in, origin, Options{OscH: 250, XYFilter: 30})
	require.NoError(t, err)
	require.Len(t, track, len(out))
	require.Equal(t, NextPowerOfTwo(int(3000/SampleSpacing)+1), len(out))

	for i, p := range out {
		h := math.Hypot(p.X, p.Y)
		assert.InDelta(t, ramp(h), p.Z, 1e-6, "sample %d", i)
		assert.InDelta(t, 4*p.X/3, p.Y, 1e-6, "sample %d stays on the line", i)
	}
}

func TestDenoiseAttenuatesOscillation(t *testing.T) {
	const (
		oscH      = 250.0
		amplitude = 10.0
		length    = 20 * oscH
	)
	wave := func(h float64) float64 { return 100 + amplitude*math.Sin(2*math.Pi*h/oscH) }
	in := straightPath(length, 5, wave)

	out, _, err := Denoise(in, origin, Options{OscH: oscH})
	require.NoError(t, err)

	lo, hi := math.Inf(1), math.Inf(-1)
	var sumIn, sumOut float64
	for _, p := range out {
		sumOut += p.Z
		h := math.Hypot(p.X, p.Y)
		if h < 2*oscH || h > length-2*oscH {
			continue
		}
		lo = min(lo, p.Z)
		hi = max(hi, p.Z)
	}
	for _, p := range in {
		sumIn += p.Z
	}

	assert.Less(t, hi-lo, 0.1*2*amplitude, "peak-to-peak must drop by at least 90 percent")
	assert.InDelta(t, sumIn/float64(len(in)), sumOut/float64(len(out)), 0.5)
}

func TestDenoiseKeepsEndpoints(t *testing.T) {
	bumpy := func(h float64) float64 { return 500 + 30*math.Sin(h/40) + 0.02*h }
	in := straightPath(2000, 10, bumpy)

	out, track, err := Denoise(in, origin, Options{OscH: 300, XYFilter: 50})
	require.NoError(t, err)

	first, last := in[0], in[len(in)-1]
	assert.InDelta(t, first.X, out[0].X, 1e-9)
	assert.InDelta(t, first.Z, out[0].Z, 1e-9)
	assert.InDelta(t, last.Y, out[len(out)-1].Y, 1e-6)
	assert.InDelta(t, last.Z, out[len(out)-1].Z, 1e-6)

	assert.InDelta(t, origin.Lat, track[0].Lat, 1e-9)
	assert.InDelta(t, origin.Lon, track[0].Lon, 1e-9)
}

func TestDenoiseNoopForShortWindows(t *testing.T) {
	in := straightPath(500, 10, func(h float64) float64 { return h })

	out, track, err := Denoise(in, origin, Options{OscH: 5, XYFilter: 0})
	require.NoError(t, err)
	assert.Equal(t, in, out)
	assert.Len(t, track, len(in))
}

func TestDenoiseDegeneratePaths(t *testing.T) {
	single := []spatial.PlanarPoint{{Z: 12}}
	out, track, err := Denoise(single, origin, Options{OscH: 250})
	require.NoError(t, err)
	assert.Equal(t, single, out)
	require.Len(t, track, 1)
	assert.Equal(t, 12.0, track[0].Alt)

	// repeated positions never advance horizontally
	still := []spatial.PlanarPoint{{Z: 1}, {Z: 2}, {Z: 3}}
	out, _, err = Denoise(still, origin, Options{OscH: 250})
	require.NoError(t, err)
	assert.Equal(t, still, out)
}

func TestDenoiseSkipsDuplicatePoints(t *testing.T) {
	in := straightPath(1000, 10, func(h float64) float64 { return 0.1 * h })
	dup := append([]spatial.PlanarPoint{}, in[:50]...)
	dup = append(dup, in[49], in[49])
	dup = append(dup, in[50:]...)

	out, _, err := Denoise(dup, origin, Options{OscH: 250})
	require.NoError(t, err)
	for _, p := range out {
		assert.InDelta(t, 0.1*math.Hypot(p.X, p.Y), p.Z, 1e-6)
	}
}

func TestNextPowerOfTwo(t *testing.T) {
	tests := []struct{ n, want int }{
		{0, 2}, {1, 2}, {2, 2}, {3, 4}, {4, 4}, {5, 8}, {501, 512}, {1024, 1024}, {1025, 2048},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NextPowerOfTwo(tt.n), "n=%d", tt.n)
	}
}

func TestWindowSamples(t *testing.T) {
	assert.Equal(t, 26, WindowSamples(250, 9.785))
	assert.Equal(t, 26, WindowSamples(260, 10))
	assert.Equal(t, 2, WindowSamples(10, 10))
	assert.Equal(t, 0, WindowSamples(9, 10))
	assert.Equal(t, 0, WindowSamples(250, 0))
	assert.Equal(t, 0, WindowSamples(0, 10))
}
