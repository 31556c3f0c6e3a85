// Package physiology holds the locomotion cost-of-transport model of Minetti et al.,
// J. Appl. Physiol. 93 (2002) 1039, refit so that it behaves sensibly at extreme gradients.
package physiology

import (
	"math"
	"math/cmplx"
)

// Gravity in m/s², i.e. J/(kg·m)
const Gravity = 9.8

// Params of the five-parameter fit C(i) = |a·((i^p+b)^(1/p) + i/c + d)|.
// They are chosen so that C has the right slopes as i→±∞, the right value on the flat,
// and its minimum at (IMin, CMin).
type Params struct {
	A, B, C, D, P float64
}

// Model is the cost model for one gait
type Model struct {
	Name   string
	Params Params

	// Minimum of C, used by Iota
	IMin float64
	CMin float64

	// Curvature of the quadratic approximation and its expansion point
	C2 float64
	I0 float64
	C0 float64

	// Efficiencies of positive and negative work at extreme slopes
	EffUp   float64
	EffDown float64
}

var (
	Running = Model{
		Name: "running",
		Params: Params{
			A: 26.073730183424228,
			B: 0.031038121935618928,
			C: 1.3809948743424785,
			D: -0.06547207947176657,
			P: 2.181405714691871,
		},
		IMin:    -0.181355,
		CMin:    1.781269,
		C2:      66.0,
		I0:      -0.15,
		C0:      1.84,
		EffUp:   0.218,
		EffDown: -1.062,
	}

	Walking = Model{
		Name: "walking",
		Params: Params{
			A: 22.911633035337864,
			B: 0.02621471025436344,
			C: 1.3154310892336223,
			D: -0.08317260964525384,
			P: 2.208584834633906,
		},
		IMin:    -0.152526,
		CMin:    0.935493,
		C2:      94.0,
		I0:      -0.1,
		C0:      1.13,
		EffUp:   0.243,
		EffDown: -1.215,
	}
)

// ModelFor picks the running or walking model
func ModelFor(running bool) Model {
	if running {
		return Running
	}
	return Walking
}

// Cost is the energy cost in J per kg of body mass per meter traveled along the slope, as a
// function of the gradient i. The power i^p of a negative gradient is taken on the principal
// complex branch and the magnitude of the result is returned, which is how the fit was made.
func (m Model) Cost(i float64) float64 {
	q := m.Params
	z := cmplx.Pow(complex(i, 0), complex(q.P, 0)) + complex(q.B, 0)
	z = cmplx.Pow(z, complex(1/q.P, 0))
	z += complex(i/q.C+q.D, 0)
	return cmplx.Abs(complex(q.A, 0) * z)
}

// Iota maps a gradient onto a linearized scale: iota² = (C(i)-CMin)/C2, with the sign of i-IMin.
func (m Model) Iota(i float64) float64 {
	c := math.Max(m.Cost(i), m.CMin) // rounding can put C a hair below its minimum
	result := math.Sqrt((c - m.CMin) / m.C2)
	if i < m.IMin {
		return -result
	}
	return result
}

// Quadratic returns the coefficients of the approximation C(i) ≈ b0 + b1·i + b2·i²
func (m Model) Quadratic() (b0, b1, b2 float64) {
	b0 = m.C0 + m.C2*m.I0*m.I0
	b1 = -2 * m.C2 * m.I0
	b2 = m.C2
	return b0, b1, b2
}

// AsymptoticSlopes are dC/di as i→+∞ and i→-∞
func (m Model) AsymptoticSlopes() (up, down float64) {
	return Gravity / m.EffUp, Gravity / m.EffDown
}
