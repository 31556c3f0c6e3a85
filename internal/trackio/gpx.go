package trackio

import (
	"fmt"
	"io"

	"github.com/tkrajina/gpxgo/gpx"

	"github.com/jengzang/kcals-backend-go/internal/models"
)

// ReadGPX concatenates every track segment of a GPX file, falling back to its routes when it has
// no tracks. Points without an <ele> get altitude 0.
func ReadGPX(r io.Reader) ([]models.TrackPoint, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read GPX: %w", err)
	}
	doc, err := gpx.ParseBytes(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse GPX: %w", err)
	}

	var path []models.TrackPoint
	for _, trk := range doc.Tracks {
		for _, seg := range trk.Segments {
			path = appendGPXPoints(path, seg.Points)
		}
	}
	if len(path) == 0 {
		for _, rte := range doc.Routes {
			path = appendGPXPoints(path, rte.Points)
		}
	}
	return path, nil
}

func appendGPXPoints(path []models.TrackPoint, points []gpx.GPXPoint) []models.TrackPoint {
	for _, p := range points {
		alt := 0.0
		if p.Elevation.NotNull() {
			alt = p.Elevation.Value()
		}
		path = append(path, models.TrackPoint{Lat: p.Latitude, Lon: p.Longitude, Alt: alt})
	}
	return path
}
