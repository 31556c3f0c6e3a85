package physiology

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlatGroundCost(t *testing.T) {
	// reference values on the flat, from Minetti's polynomial fits
	assert.InDelta(t, 3.6, Running.Cost(0), 1e-3)
	assert.InDelta(t, 2.5, Walking.Cost(0), 1e-3)
}

func TestModelFor(t *testing.T) {
	assert.Equal(t, "running", ModelFor(true).Name)
	assert.Equal(t, "walking", ModelFor(false).Name)
}

func TestCostMinimum(t *testing.T) {
	for _, m := range []Model{Running, Walking} {
		t.Run(m.Name, func(t *testing.T) {
			assert.InDelta(t, m.CMin, m.Cost(m.IMin), 1e-5)
			for _, di := range []float64{-0.05, -0.01, 0.01, 0.05} {
				assert.Greater(t, m.Cost(m.IMin+di), m.CMin-1e-5, "di=%g", di)
			}
		})
	}
}

func TestCostAsymptoticSlopes(t *testing.T) {
	for _, m := range []Model{Running, Walking} {
		t.Run(m.Name, func(t *testing.T) {
			up, down := m.AsymptoticSlopes()
			assert.InEpsilon(t, up, m.Cost(1000)-m.Cost(999), 1e-4)
			// C is a magnitude, so on the descending side it grows with slope |down|
			assert.InEpsilon(t, math.Abs(down), m.Cost(-1000)-m.Cost(-999), 1e-4)
		})
	}
}

func TestCostIsFiniteForNegativeGradients(t *testing.T) {
	for _, i := range []float64{-1, -0.5, -0.3, -0.1, -1e-9} {
		c := Running.Cost(i)
		assert.False(t, math.IsNaN(c), "i=%g", i)
		assert.Greater(t, c, 0.0)
	}
	assert.InDelta(t, 2.149, Running.Cost(-0.1), 1e-3)
	assert.InDelta(t, 5.977, Running.Cost(0.1), 1e-3)
}

func TestIota(t *testing.T) {
	for _, m := range []Model{Running, Walking} {
		t.Run(m.Name, func(t *testing.T) {
			assert.InDelta(t, 0, m.Iota(m.IMin), 1e-4)
			assert.Greater(t, m.Iota(0.2), 0.0)
			assert.Less(t, m.Iota(-0.5), 0.0)

			// iota² measures excess cost above the minimum
			i := 0.15
			iota := m.Iota(i)
			assert.InDelta(t, m.Cost(i)-m.CMin, iota*iota*m.C2, 1e-9)

			assert.Less(t, m.Iota(0.1), m.Iota(0.2))
		})
	}
}

func TestQuadratic(t *testing.T) {
	b0, b1, b2 := Running.Quadratic()
	assert.InDelta(t, 1.84+66*0.0225, b0, 1e-12)
	assert.InDelta(t, 19.8, b1, 1e-12)
	assert.Equal(t, 66.0, b2)

	// the parabola passes through (I0, C0) with its vertex there
	for _, m := range []Model{Running, Walking} {
		b0, b1, b2 := m.Quadratic()
		q := func(i float64) float64 { return b0 + b1*i + b2*i*i }
		assert.InDelta(t, m.C0, q(m.I0), 1e-12)
		assert.InDelta(t, -b1/(2*b2), m.I0, 1e-12)
	}
}
