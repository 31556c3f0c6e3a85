package spatial

import (
	"github.com/golang/geo/s2"

	"github.com/jengzang/kcals-backend-go/internal/models"
)

// EarthRadiusMeters is the mean radius used for great-circle estimates
const EarthRadiusMeters = 6371000.0

// HaversineDistance calculates the great-circle distance between two points in meters
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	p1 := s2.LatLngFromDegrees(lat1, lon1)
	p2 := s2.LatLngFromDegrees(lat2, lon2)
	return p1.Distance(p2).Radians() * EarthRadiusMeters
}

// PathLength calculates the great-circle length of a path in meters, ignoring altitude
func PathLength(path []models.TrackPoint) float64 {
	if len(path) < 2 {
		return 0
	}

	var total float64
	for i := 1; i < len(path); i++ {
		total += HaversineDistance(path[i-1].Lat, path[i-1].Lon, path[i].Lat, path[i].Lon)
	}
	return total
}
