package config

import (
	"errors"
	"fmt"
	"math"

	"github.com/jengzang/kcals-backend-go/internal/models"
)

// ErrInvalidParams is returned by Params.Validate
var ErrInvalidParams = errors.New("invalid parameters")

// Params controls one run of the pipeline. It is passed by value and never modified by the
// stages that read it.
type Params struct {
	Metric   bool    `json:"metric"`    // report in metric units instead of US units
	Running  bool    `json:"running"`   // running instead of walking cost model
	BodyMass float64 `json:"weight"`    // kg
	OscH     float64 `json:"filtering"` // m, wavelength of spurious height oscillations removed by the filter
	XYFilter float64 `json:"xy_filter"` // m, horizontal smoothing width

	Resolution float64 `json:"resolution"` // m, maximum spacing after resampling; 0 disables it

	ServerMax       float64 `json:"server_max"`        // m, maximum path length when Bounded
	ServerMaxPoints int     `json:"server_max_points"` // maximum resampled point count when Bounded
	Bounded         bool    `json:"bounded"`           // enforce ServerMax and ServerMaxPoints
}

// DefaultParams returns the built-in defaults
func DefaultParams() Params {
	return Params{
		Metric:          false,
		Running:         true,
		BodyMass:        66, // 145 lb
		OscH:            250,
		XYFilter:        30,
		Resolution:      30,
		ServerMax:       100000,
		ServerMaxPoints: 200000,
	}
}

// Validate checks every field is within its meaningful range
func (p Params) Validate() error {
	for name, v := range map[string]float64{
		"weight":     p.BodyMass,
		"filtering":  p.OscH,
		"xy_filter":  p.XYFilter,
		"resolution": p.Resolution,
		"server_max": p.ServerMax,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s must be finite, got %g", ErrInvalidParams, name, v)
		}
	}
	switch {
	case !(p.BodyMass > 0):
		return fmt.Errorf("%w: weight must be positive, got %g", ErrInvalidParams, p.BodyMass)
	case !(p.OscH >= 0):
		return fmt.Errorf("%w: filtering must not be negative, got %g", ErrInvalidParams, p.OscH)
	case !(p.XYFilter >= 0):
		return fmt.Errorf("%w: xy_filter must not be negative, got %g", ErrInvalidParams, p.XYFilter)
	case !(p.Resolution >= 0):
		return fmt.Errorf("%w: resolution must not be negative, got %g", ErrInvalidParams, p.Resolution)
	case !(p.ServerMax > 0):
		return fmt.Errorf("%w: server_max must be positive, got %g", ErrInvalidParams, p.ServerMax)
	case p.ServerMaxPoints <= 0:
		return fmt.Errorf("%w: server_max_points must be positive, got %d", ErrInvalidParams, p.ServerMaxPoints)
	}
	return nil
}

// Apply returns a copy of p with the fields set in req replaced
func (p Params) Apply(req *models.ParamsRequest) Params {
	if req == nil {
		return p
	}
	if req.Running != nil {
		p.Running = *req.Running
	}
	if req.Weight != nil {
		p.BodyMass = *req.Weight
	}
	if req.Filtering != nil {
		p.OscH = *req.Filtering
	}
	if req.XYFilter != nil {
		p.XYFilter = *req.XYFilter
	}
	if req.Resolution != nil {
		p.Resolution = *req.Resolution
	}
	return p
}
