package spatial

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jengzang/kcals-backend-go/internal/models"
)

func TestBoundingBox(t *testing.T) {
	path := []models.TrackPoint{
		{Lat: 46.5, Lon: 7.5, Alt: 1200},
		{Lat: 46.7, Lon: 7.2, Alt: 900},
		{Lat: 46.6, Lon: 7.9, Alt: 1500},
	}
	b := BoundingBox(path)
	assert.Equal(t, Box{LatLo: 46.5, LatHi: 46.7, LonLo: 7.2, LonHi: 7.9, AltLo: 900, AltHi: 1500}, b)
	assert.InDelta(t, 46.6, b.MidLat(), 1e-12)
	assert.True(t, b.HasElevation())

	assert.False(t, BoundingBox([]models.TrackPoint{{Lat: 1}, {Lat: 2}}).HasElevation())
	assert.Equal(t, Box{}, BoundingBox(nil))
}

func TestPathLength(t *testing.T) {
	// one degree of latitude on the mean sphere
	oneDegree := EarthRadiusMeters * 3.141592653589793 / 180
	assert.InDelta(t, oneDegree, HaversineDistance(10, 20, 11, 20), 1e-3)

	path := []models.TrackPoint{{Lat: 10, Lon: 20}, {Lat: 11, Lon: 20}, {Lat: 12, Lon: 20}}
	assert.InDelta(t, 2*oneDegree, PathLength(path), 1e-3)
	assert.Zero(t, PathLength(path[:1]))
}
