package trackio

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"

	"github.com/jengzang/kcals-backend-go/internal/models"
)

var trackpointLine = regexp.MustCompile(`^T\s+(\S+)\s+(\S+)\s+(\S+)`)

// ReadText reads the plain text output of gpsvisualizer.com, where each trackpoint is a line
// of the form "T lat lon alt". All other lines are ignored.
func ReadText(r io.Reader) ([]models.TrackPoint, error) {
	var path []models.TrackPoint
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		m := trackpointLine.FindStringSubmatch(sc.Text())
		if m == nil {
			continue
		}
		var vals [3]float64
		for k := range vals {
			v, err := strconv.ParseFloat(m[k+1], 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: failed to parse %q: %w", lineNo, m[k+1], err)
			}
			vals[k] = v
		}
		path = append(path, models.TrackPoint{Lat: vals[0], Lon: vals[1], Alt: vals[2]})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read track: %w", err)
	}
	return path, nil
}
