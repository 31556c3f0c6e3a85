package models

// TrackPoint is one raw sample of a route: latitude and longitude in degrees, altitude in meters
type TrackPoint struct {
	Lat float64 `json:"lat" db:"latitude"`
	Lon float64 `json:"lon" db:"longitude"`
	Alt float64 `json:"alt" db:"altitude"`
}

// Valid ranges for raw input
const (
	MinLatitude  = -90.0
	MaxLatitude  = 90.0
	MinLongitude = -360.0
	MaxLongitude = 360.0
	MinAltitude  = -10000.0
	MaxAltitude  = 10000.0
)

// InRange reports whether every coordinate is within the accepted input bounds
func (p TrackPoint) InRange() bool {
	return p.Lat >= MinLatitude && p.Lat <= MaxLatitude &&
		p.Lon >= MinLongitude && p.Lon <= MaxLongitude &&
		p.Alt >= MinAltitude && p.Alt <= MaxAltitude
}

// StoredTrackPoint is a track point as persisted in the track_points table
type StoredTrackPoint struct {
	ID        int64   `json:"id" db:"id"`
	TrackID   string  `json:"trackId" db:"track_id"`
	Seq       int     `json:"seq" db:"seq"`
	DataTime  int64   `json:"dataTime" db:"dataTime"` // Unix timestamp in seconds
	Latitude  float64 `json:"latitude" db:"latitude"`
	Longitude float64 `json:"longitude" db:"longitude"`
	Altitude  float64 `json:"altitude" db:"altitude"`
}

// Point converts the stored row into a pipeline input point
func (p StoredTrackPoint) Point() TrackPoint {
	return TrackPoint{Lat: p.Latitude, Lon: p.Longitude, Alt: p.Altitude}
}

// TrackSummary describes one stored track
type TrackSummary struct {
	TrackID    string `json:"trackId"`
	PointCount int    `json:"pointCount"`
	StartTime  int64  `json:"startTime"`
	EndTime    int64  `json:"endTime"`
}
