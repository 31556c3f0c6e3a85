package models

// JoulesPerKcal converts joules to kilocalories
const JoulesPerKcal = 0.000239006

// Stats is the result of one pipeline run. Distances are meters, energies joules,
// except the *Kcals fields.
type Stats struct {
	HorizontalDistance float64 `json:"horizontal_distance"`
	SlopeDistance      float64 `json:"slope_distance"`
	Gain               float64 `json:"gain"`

	Cost  float64 `json:"cost_joules"`
	Kcals float64 `json:"cost_kcals"`

	// Gradient statistics, weighted by horizontal distance
	IMean    float64 `json:"i_mean"`
	IRMS     float64 `json:"i_rms"`
	IotaMean float64 `json:"iota_mean"`
	IotaRMS  float64 `json:"iota_rms"`

	// Climbing fraction: share of the cost beyond flat-ground locomotion
	CF float64 `json:"cf"`

	// Quadratic approximation of the cost, diagnostic only
	EQ      float64 `json:"e_q_joules"`
	EQKcals float64 `json:"e_q_kcals"`

	// Diagnostics about the raw input
	OrigN          int     `json:"orig_n"`
	OrigResolution float64 `json:"orig_resolution"`
	FilteredN      int     `json:"filtered_n"`
}

// KcalsResult is what the compute endpoints return
type KcalsResult struct {
	Stats    Stats    `json:"stats"`
	Warnings []string `json:"warnings,omitempty"`
	Params   any      `json:"params,omitempty"`
}
