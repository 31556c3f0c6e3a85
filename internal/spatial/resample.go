package spatial

import (
	"errors"
	"fmt"
	"math"

	"github.com/jengzang/kcals-backend-go/internal/models"
)

var (
	ErrTooLong       = errors.New("path is too long")
	ErrTooManyPoints = errors.New("path has too many points")
)

// ScaleFactors convert small lat/lon differences in degrees into meters. They are evaluated once
// at a representative latitude rather than per segment.
type ScaleFactors struct {
	KLat float64
	KLon float64
}

// NewScaleFactors evaluates the scale factors at latRef degrees
func NewScaleFactors(latRef float64) ScaleFactors {
	klat := degToRad(1) * EarthRadius(latRef)
	return ScaleFactors{
		KLat: klat,
		KLon: klat * math.Cos(degToRad(latRef)),
	}
}

// SegmentLength is the approximate horizontal distance in meters between p and q
func (k ScaleFactors) SegmentLength(p, q models.TrackPoint) float64 {
	dx := k.KLon * (q.Lon - p.Lon)
	dy := k.KLat * (q.Lat - p.Lat)
	return math.Sqrt(dx*dx + dy*dy)
}

// AddResolution inserts linearly interpolated points so that no segment is longer than
// resolution meters. A resolution <= 0 returns a copy of the path. Callers serving untrusted
// input should run SizeLimits.CheckResampled first.
func AddResolution(path []models.TrackPoint, resolution float64) []models.TrackPoint {
	if len(path) < 2 || resolution <= 0 {
		return append([]models.TrackPoint(nil), path...)
	}

	k := NewScaleFactors(BoundingBox(path).MidLat())
	out := make([]models.TrackPoint, 0, len(path))
	out = append(out, path[0])
	for i := 1; i < len(path); i++ {
		p, q := path[i-1], path[i]
		if n := int(segmentSplits(k.SegmentLength(p, q), resolution)); n > 1 {
			for j := 1; j < n; j++ {
				s := float64(j) / float64(n)
				out = append(out, models.TrackPoint{
					Lat: linearInterp(p.Lat, q.Lat, s),
					Lon: linearInterp(p.Lon, q.Lon, s),
					Alt: linearInterp(p.Alt, q.Alt, s),
				})
			}
		}
		out = append(out, q)
	}
	return out
}

// maxSplits caps the pieces one segment is cut into so the count always fits in an int
const maxSplits = math.MaxInt32

// segmentSplits is the number of pieces AddResolution cuts a segment of length l into
func segmentSplits(l, resolution float64) float64 {
	if !(l > resolution) {
		return 1
	}
	return math.Min(math.Floor(l/resolution)+1, maxSplits)
}

// SizeLimits bound the work done for one path. Zero values disable the corresponding check.
type SizeLimits struct {
	MaxLength float64 // meters
	MaxPoints int
}

// CheckLength rejects a path whose great-circle length exceeds the limit
func (s SizeLimits) CheckLength(path []models.TrackPoint) error {
	if s.MaxLength <= 0 {
		return nil
	}
	if l := PathLength(path); l > s.MaxLength {
		return fmt.Errorf("%w: %.0f m exceeds the limit of %.0f m", ErrTooLong, l, s.MaxLength)
	}
	return nil
}

// CheckPoints rejects a path with more points than the limit
func (s SizeLimits) CheckPoints(path []models.TrackPoint) error {
	if s.MaxPoints <= 0 {
		return nil
	}
	if len(path) > s.MaxPoints {
		return fmt.Errorf("%w: %d points exceeds the limit of %d", ErrTooManyPoints, len(path), s.MaxPoints)
	}
	return nil
}

// CheckResampled rejects a path that AddResolution would grow past the point limit. The count is
// worked out segment by segment without building the resampled path.
func (s SizeLimits) CheckResampled(path []models.TrackPoint, resolution float64) error {
	if s.MaxPoints <= 0 {
		return nil
	}
	if len(path) < 2 || resolution <= 0 {
		return s.CheckPoints(path)
	}

	k := NewScaleFactors(BoundingBox(path).MidLat())
	limit := float64(s.MaxPoints)
	count := 1.0
	for i := 1; i < len(path); i++ {
		count += segmentSplits(k.SegmentLength(path[i-1], path[i]), resolution)
		if count > limit {
			return fmt.Errorf("%w: more than %d points at a resolution of %g m", ErrTooManyPoints, s.MaxPoints, resolution)
		}
	}
	return nil
}

func linearInterp(x1, x2, s float64) float64 {
	return x1 + s*(x2-x1)
}
