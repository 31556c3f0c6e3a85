package trackio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jengzang/kcals-backend-go/internal/models"
)

// ErrMissingColumn means a CSV header lacks the Latitude or Longitude column
var ErrMissingColumn = errors.New("missing column")

// ReadCSV reads gpsbabel's unicsv output. Columns are located by their header names
// (Latitude, Longitude and optionally Altitude, case-insensitive); other columns are ignored.
func ReadCSV(r io.Reader) ([]models.TrackPoint, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	latCol, lonCol, altCol := -1, -1, -1
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "latitude", "lat":
			latCol = i
		case "longitude", "lon":
			lonCol = i
		case "altitude", "alt", "ele", "elevation":
			altCol = i
		}
	}
	if latCol < 0 {
		return nil, fmt.Errorf("%w: Latitude", ErrMissingColumn)
	}
	if lonCol < 0 {
		return nil, fmt.Errorf("%w: Longitude", ErrMissingColumn)
	}

	var path []models.TrackPoint
	for row := 2; ; row++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row %d: %w", row, err)
		}
		lat, err := csvFloat(rec, latCol)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}
		lon, err := csvFloat(rec, lonCol)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}
		alt := 0.0
		if altCol >= 0 {
			if alt, err = csvFloat(rec, altCol); err != nil {
				return nil, fmt.Errorf("row %d: %w", row, err)
			}
		}
		path = append(path, models.TrackPoint{Lat: lat, Lon: lon, Alt: alt})
	}
	return path, nil
}

// csvFloat parses column col; a missing or blank cell reads as 0
func csvFloat(rec []string, col int) (float64, error) {
	if col >= len(rec) {
		return 0, nil
	}
	s := strings.TrimSpace(rec[col])
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse %q: %w", s, err)
	}
	return v, nil
}
