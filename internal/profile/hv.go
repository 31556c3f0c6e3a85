// Package profile integrates a planar path into a height profile and from there into
// distance, gain and energy cost.
package profile

import (
	"fmt"
	"math"

	"github.com/jengzang/kcals-backend-go/internal/spatial"
)

// BigStep is the horizontal step, in meters, above which two successive points are
// suspected to be a GPS glitch
const BigStep = 10000.0

// PathSample is the cumulative horizontal distance H and net vertical displacement V at
// one point of a path
type PathSample struct {
	H float64 `json:"h"`
	V float64 `json:"v"`
}

// IntegrateHV accumulates horizontal and vertical displacement along the path. The first
// sample is (0,0). warn is called at most once, for the first step longer than BigStep; it
// may be nil.
func IntegrateHV(points []spatial.PlanarPoint, warn func(string)) []PathSample {
	samples := make([]PathSample, len(points))
	if len(points) == 0 {
		return samples
	}

	warned := false
	var h, v float64
	for i := 1; i < len(points); i++ {
		dx := points[i].X - points[i-1].X
		dy := points[i].Y - points[i-1].Y
		dz := points[i].Z - points[i-1].Z

		// z is altitude, so the vertical component of the step is dz itself
		dv := dz
		dh := math.Sqrt(math.Max(0, dx*dx+dy*dy+dz*dz-dv*dv))
		if dh > BigStep && !warned {
			warned = true
			if warn != nil {
				warn(fmt.Sprintf("Two successive points are more than 10 km apart horizontally: dx=%.1f, dy=%.1f, dz=%.1f.", dx, dy, dz))
			}
		}
		h += dh
		v += dv
		samples[i] = PathSample{H: h, V: v}
	}
	return samples
}
