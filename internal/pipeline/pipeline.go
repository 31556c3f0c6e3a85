// Package pipeline turns a raw track into a filtered elevation profile and its energy
// statistics.
package pipeline

import (
	"errors"
	"fmt"
	"log"

	"github.com/jengzang/kcals-backend-go/internal/config"
	"github.com/jengzang/kcals-backend-go/internal/filter"
	"github.com/jengzang/kcals-backend-go/internal/models"
	"github.com/jengzang/kcals-backend-go/internal/physiology"
	"github.com/jengzang/kcals-backend-go/internal/profile"
	"github.com/jengzang/kcals-backend-go/internal/spatial"
)

var (
	// ErrNoPoints is returned for an empty track
	ErrNoPoints = errors.New("no points in input")
	// ErrOutOfRange is returned when a coordinate lies outside its legal range
	ErrOutOfRange = errors.New("coordinate out of range")
)

// ElevationSource supplies altitudes for tracks recorded without them. Sample reports whether
// the point fell outside the source's coverage.
type ElevationSource interface {
	Sample(lat, lon float64) (alt float64, clamped bool)
}

// Warnings are non-fatal problems found during a run
type Warnings []string

func (w *Warnings) add(msg string) {
	log.Printf("[Pipeline] Warning: %s", msg)
	*w = append(*w, msg)
}

// Result is the output of one run
type Result struct {
	Path     []models.TrackPoint // filtered path
	Samples  []profile.PathSample
	Stats    models.Stats
	Warnings Warnings
}

// Validate checks that the path is non-empty and every coordinate is in range
func Validate(path []models.TrackPoint) error {
	if len(path) == 0 {
		return ErrNoPoints
	}
	for _, p := range path {
		if p.InRange() {
			continue
		}
		switch {
		case p.Lat < models.MinLatitude || p.Lat > models.MaxLatitude:
			return fmt.Errorf("%w: illegal latitude, %g, in input", ErrOutOfRange, p.Lat)
		case p.Lon < models.MinLongitude || p.Lon > models.MaxLongitude:
			return fmt.Errorf("%w: illegal longitude, %g, in input", ErrOutOfRange, p.Lon)
		case p.Alt < models.MinAltitude || p.Alt > models.MaxAltitude:
			return fmt.Errorf("%w: illegal altitude, %g, in input", ErrOutOfRange, p.Alt)
		default:
			// NaN fails every comparison above
			return fmt.Errorf("%w: illegal point, (%g, %g, %g), in input", ErrOutOfRange, p.Lat, p.Lon, p.Alt)
		}
	}
	return nil
}

// Run processes one raw path. elev may be nil; it is consulted only when the path carries no
// elevation data. The input slice is not modified.
func Run(raw []models.TrackPoint, p config.Params, elev ElevationSource) (*Result, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := Validate(raw); err != nil {
		return nil, err
	}

	res := &Result{}
	limits := spatial.SizeLimits{}
	if p.Bounded {
		limits = spatial.SizeLimits{MaxLength: p.ServerMax, MaxPoints: p.ServerMaxPoints}
	}
	if err := limits.CheckPoints(raw); err != nil {
		return nil, err
	}
	if err := limits.CheckLength(raw); err != nil {
		return nil, err
	}

	hasElevation := spatial.BoundingBox(raw).HasElevation()
	if !hasElevation {
		res.Warnings.add("The input file does not appear to contain any elevation data.")
	}

	if err := limits.CheckResampled(raw, p.Resolution); err != nil {
		return nil, err
	}
	path := spatial.AddResolution(raw, p.Resolution)

	if !hasElevation && elev != nil {
		path = fillElevations(path, elev, &res.Warnings)
	}

	origin := spatial.Origin{Lat: path[0].Lat, Lon: path[0].Lon}
	planar := spatial.ProjectPath(path, origin)

	filtered, filteredPath, err := filter.Denoise(planar, origin, filter.Options{OscH: p.OscH, XYFilter: p.XYFilter})
	if err != nil {
		return nil, fmt.Errorf("failed to filter path: %w", err)
	}

	res.Path = filteredPath
	res.Samples = profile.IntegrateHV(filtered, res.Warnings.add)
	res.Stats = profile.Integrate(res.Samples, physiology.ModelFor(p.Running), p.BodyMass)

	res.Stats.OrigN = len(raw)
	if len(raw) > 1 {
		res.Stats.OrigResolution = spatial.PathLength(raw) / float64(len(raw)-1)
	}
	res.Stats.FilteredN = len(filtered)

	log.Printf("[Pipeline] %d points in, %d after resampling, %d after filtering; h=%.0f m, gain=%.0f m",
		len(raw), len(path), len(filtered), res.Stats.HorizontalDistance, res.Stats.Gain)
	return res, nil
}

// fillElevations replaces every altitude with a lookup in elev
func fillElevations(path []models.TrackPoint, elev ElevationSource, w *Warnings) []models.TrackPoint {
	out := make([]models.TrackPoint, len(path))
	clamped := 0
	for i, q := range path {
		alt, c := elev.Sample(q.Lat, q.Lon)
		if c {
			clamped++
		}
		out[i] = models.TrackPoint{Lat: q.Lat, Lon: q.Lon, Alt: alt}
	}
	if clamped > 0 {
		w.add(fmt.Sprintf("%d of %d points lie outside the elevation model and were clamped to its edge", clamped, len(path)))
	}
	return out
}
