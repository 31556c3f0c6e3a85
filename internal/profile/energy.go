package profile

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/jengzang/kcals-backend-go/internal/models"
	"github.com/jengzang/kcals-backend-go/internal/physiology"
)

// Integrate walks the profile and computes distance, gain, energy cost and gradient
// statistics for a body of the given mass in kg.
func Integrate(samples []PathSample, model physiology.Model, bodyMass float64) models.Stats {
	var st models.Stats
	if len(samples) < 2 {
		return st
	}

	n := len(samples) - 1
	grades := make([]float64, 0, n)
	iotas := make([]float64, 0, n)
	weights := make([]float64, 0, n)

	var d, gain, c float64
	for k := 1; k < len(samples); k++ {
		dh := samples[k].H - samples[k-1].H
		dv := samples[k].V - samples[k-1].V
		dd := math.Sqrt(dh*dh + dv*dv)

		i := 0.0
		if dh > 0 {
			i = dv / dh
		}

		d += dd
		if dv > 0 {
			gain += dv
		}
		// the cost of transport is per meter traveled along the slope, hence dd rather than dh
		c += dd * bodyMass * model.Cost(i)

		clamped := math.Max(-1, math.Min(1, i))
		grades = append(grades, clamped)
		iotas = append(iotas, model.Iota(clamped))
		weights = append(weights, dh)
	}

	h := samples[len(samples)-1].H
	st.HorizontalDistance = h
	st.SlopeDistance = d
	st.Gain = gain
	st.Cost = c
	st.Kcals = c * models.JoulesPerKcal

	if h > 0 {
		st.IMean = stat.Mean(grades, weights)
		st.IRMS = rms(grades, weights)
		st.IotaMean = stat.Mean(iotas, weights)
		st.IotaRMS = rms(iotas, weights)
	}

	if c > 0 {
		st.CF = (c - h*bodyMass*model.Cost(0)) / c
	}

	b0, b1, b2 := model.Quadratic()
	st.EQ = h * bodyMass * (b0 + b1*st.IMean + b2*st.IRMS*st.IRMS)
	st.EQKcals = st.EQ * models.JoulesPerKcal

	return st
}

func rms(x, weights []float64) float64 {
	sq := make([]float64, len(x))
	for i, v := range x {
		sq[i] = v * v
	}
	return math.Sqrt(stat.Mean(sq, weights))
}
