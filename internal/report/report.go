// Package report prints pipeline results for people and for other programs.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/jengzang/kcals-backend-go/internal/config"
	"github.com/jengzang/kcals-backend-go/internal/models"
	"github.com/jengzang/kcals-backend-go/internal/profile"
	"github.com/jengzang/kcals-backend-go/internal/units"
)

// WriteParams prints the one-line summary of the parameters in effect
func WriteParams(w io.Writer, p config.Params, format string) error {
	mode := "walking"
	if p.Running {
		mode = "running"
	}
	_, err := fmt.Fprintf(w, "units=%s, %s, weight=%g kg, filtering=%g m, format=%s\n",
		units.System(p.Metric), mode, p.BodyMass, p.OscH, format)
	return err
}

// WriteText prints distance, gain and cost in metric or US units
func WriteText(w io.Writer, st models.Stats, metric bool) error {
	h, hUnit := units.Horizontal(st.HorizontalDistance, metric)
	d, _ := units.Horizontal(st.SlopeDistance, metric)
	gain, vUnit := units.Vertical(st.Gain, metric)

	_, err := fmt.Fprintf(w,
		"horizontal distance = %6.2f %s\nslope distance = %6.2f %s\ngain = %5.0f %s\ncost = %5.0f kcals\n",
		h, hUnit, d, hUnit, gain, vUnit, st.Kcals)
	return err
}

// WriteJSON encodes a result as indented JSON
func WriteJSON(w io.Writer, res models.KcalsResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	return nil
}

// WriteProfileCSV writes one h,v,dh,dv row, in meters, per step of the profile
func WriteProfileCSV(w io.Writer, samples []profile.PathSample) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"h", "v", "dh", "dv"}); err != nil {
		return fmt.Errorf("failed to write profile: %w", err)
	}
	for k := 1; k < len(samples); k++ {
		prev, cur := samples[k-1], samples[k]
		row := []string{
			formatMeters(cur.H),
			formatMeters(cur.V),
			formatMeters(cur.H - prev.H),
			formatMeters(cur.V - prev.V),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write profile: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatMeters(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
