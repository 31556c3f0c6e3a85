package spatial

import "github.com/jengzang/kcals-backend-go/internal/models"

// Box is a lat/lon/alt bounding box
type Box struct {
	LatLo, LatHi float64
	LonLo, LonHi float64
	AltLo, AltHi float64
}

// BoundingBox calculates the bounding box of a path. The zero Box is returned for an empty path.
func BoundingBox(path []models.TrackPoint) Box {
	if len(path) == 0 {
		return Box{}
	}

	b := Box{
		LatLo: path[0].Lat, LatHi: path[0].Lat,
		LonLo: path[0].Lon, LonHi: path[0].Lon,
		AltLo: path[0].Alt, AltHi: path[0].Alt,
	}
	for _, p := range path[1:] {
		b.LatLo = min(b.LatLo, p.Lat)
		b.LatHi = max(b.LatHi, p.Lat)
		b.LonLo = min(b.LonLo, p.Lon)
		b.LonHi = max(b.LonHi, p.Lon)
		b.AltLo = min(b.AltLo, p.Alt)
		b.AltHi = max(b.AltHi, p.Alt)
	}
	return b
}

// MidLat is the latitude halfway between the box's south and north edges
func (b Box) MidLat() float64 {
	return (b.LatLo + b.LatHi) / 2
}

// HasElevation reports whether any altitude in the box is nonzero
func (b Box) HasElevation() bool {
	return b.AltLo != 0 || b.AltHi != 0
}
