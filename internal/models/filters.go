package models

// TrackFilter selects the points of a stored track
type TrackFilter struct {
	TrackID   string `form:"trackId"`
	StartTime int64  `form:"startTime"` // Unix timestamp
	EndTime   int64  `form:"endTime"`   // Unix timestamp
}

// KcalsRequest is the JSON body of POST /api/v1/kcals. Points are [lat, lon, alt] triples;
// a missing altitude is treated as 0.
type KcalsRequest struct {
	Points [][]float64    `json:"points" binding:"required"`
	Params *ParamsRequest `json:"params,omitempty"`
}

// ParamsRequest carries per-request overrides of the server's default parameters
type ParamsRequest struct {
	Running    *bool    `json:"running,omitempty" form:"running"`
	Weight     *float64 `json:"weight,omitempty" form:"weight"`
	Filtering  *float64 `json:"filtering,omitempty" form:"filtering"`
	XYFilter   *float64 `json:"xy_filter,omitempty" form:"xy_filter"`
	Resolution *float64 `json:"resolution,omitempty" form:"resolution"`
}
