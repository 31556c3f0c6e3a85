package spatial

import (
	"math"

	"github.com/jengzang/kcals-backend-go/internal/models"
)

// WGS84-like ellipsoid radii
const (
	EquatorialRadius = 6378137.0
	PolarRadius      = 6356752.3
)

const (
	// below this |u| the Taylor series for 1-cos(u) is used
	taylorThreshold = 0.01

	inverseMaxIterations = 10
	inverseTolerance     = 1.0e-8 // meters
)

// PlanarPoint is a point in the local tangent frame anchored at (lat0, lon0).
// X points east, Y north, and Z is the altitude itself, so the gradient of Z is the local vertical.
type PlanarPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Origin is the reference point of a planar frame
type Origin struct {
	Lat float64
	Lon float64
}

// EarthRadius returns the geocentric radius in meters at the given latitude in degrees
func EarthRadius(lat float64) float64 {
	a, b := EquatorialRadius, PolarRadius
	slat := math.Sin(degToRad(lat))
	clat := math.Cos(degToRad(lat))
	num := math.Pow(a*a*clat, 2) + math.Pow(b*b*slat, 2)
	den := math.Pow(a*clat, 2) + math.Pow(b*slat, 2)
	return math.Sqrt(num / den)
}

// Project maps (lat, lon, alt) onto the polyconic plane centered on the origin.
// The earth radius is evaluated once at the origin's latitude and held constant.
func Project(lat, lon, alt float64, o Origin) PlanarPoint {
	r0 := EarthRadius(o.Lat)
	return project(lat, lon, alt, o, r0)
}

func project(lat, lon, alt float64, o Origin, r0 float64) PlanarPoint {
	lam := degToRad(lon)
	lam0 := degToRad(o.Lon)
	phi := degToRad(lat)
	phi0 := degToRad(o.Lat)

	sphi := math.Sin(phi)
	if sphi == 0 {
		// equator: cot(phi) diverges, use the limits of both expressions
		return PlanarPoint{
			X: r0 * (lam - lam0) * math.Cos(phi),
			Y: r0 * (phi - phi0),
			Z: alt,
		}
	}

	cotphi := 1 / math.Tan(phi)
	u := (lam - lam0) * sphi
	return PlanarPoint{
		X: r0 * cotphi * math.Sin(u),
		Y: r0 * ((phi - phi0) + cotphi*oneMinusCos(u)),
		Z: alt,
	}
}

// oneMinusCos avoids the cancellation in 1-cos(u) for small u; the series has max error ~1e-27
func oneMinusCos(u float64) float64 {
	if math.Abs(u) >= taylorThreshold {
		return 1 - math.Cos(u)
	}
	u2 := u * u
	u4 := u2 * u2
	return u2/2 - u4/24 + u2*u4/720 - u4*u4/40320
}

// Unproject inverts Project by fixed-point refinement. It returns the best estimate after at most
// ten iterations; failing to reach the tolerance is not an error.
func Unproject(p PlanarPoint, o Origin) models.TrackPoint {
	r0 := EarthRadius(o.Lat)
	clat0 := math.Cos(degToRad(o.Lat))

	// planar seed; the refinement loop carries the accuracy
	lat := o.Lat + radToDeg(p.Y/r0)
	lon := o.Lon
	if clat0 != 0 {
		lon += radToDeg(p.X / (r0 * clat0))
	}

	for range inverseMaxIterations {
		q := project(lat, lon, p.Z, o, r0)
		dx := p.X - q.X
		dy := p.Y - q.Y
		if math.Abs(dx) < inverseTolerance && math.Abs(dy) < inverseTolerance {
			break
		}
		lat += radToDeg(dy / r0)
		if clat0 != 0 {
			lon += radToDeg(dx / (r0 * clat0))
		}
	}

	return models.TrackPoint{Lat: lat, Lon: lon, Alt: p.Z}
}

// ProjectPath projects every point of a path into the frame of the origin
func ProjectPath(path []models.TrackPoint, o Origin) []PlanarPoint {
	r0 := EarthRadius(o.Lat)
	out := make([]PlanarPoint, len(path))
	for i, p := range path {
		out[i] = project(p.Lat, p.Lon, p.Alt, o, r0)
	}
	return out
}

// UnprojectPath is the inverse of ProjectPath
func UnprojectPath(points []PlanarPoint, o Origin) []models.TrackPoint {
	out := make([]models.TrackPoint, len(points))
	for i, p := range points {
		out[i] = Unproject(p, o)
	}
	return out
}

func degToRad(x float64) float64 {
	return x * math.Pi / 180
}

func radToDeg(x float64) float64 {
	return x * 180 / math.Pi
}
