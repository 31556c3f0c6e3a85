package trackio

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jengzang/kcals-backend-go/internal/models"
)

// minCoordinatesLen separates a track's coordinate list from the single points of placemarks
const minCoordinatesLen = 100

// ErrNoCoordinates means a KML document had no <coordinates> element long enough to be a track
var ErrNoCoordinates = errors.New("no <coordinates>...</coordinates> element found in input KML file")

// ReadKML returns the first <coordinates> list of at least 100 characters. KML stores each
// point as "lon,lat,alt".
func ReadKML(r io.Reader) ([]models.TrackPoint, error) {
	dec := xml.NewDecoder(r)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return nil, ErrNoCoordinates
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse KML: %w", err)
		}
		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "coordinates" {
			continue
		}
		var text string
		if err := dec.DecodeElement(&text, &start); err != nil {
			return nil, fmt.Errorf("failed to parse KML coordinates: %w", err)
		}
		if len(text) < minCoordinatesLen {
			continue
		}
		return parseCoordinates(text)
	}
}

func parseCoordinates(text string) ([]models.TrackPoint, error) {
	var path []models.TrackPoint
	for _, tuple := range strings.Fields(text) {
		parts := strings.Split(tuple, ",")
		if len(parts) != 3 {
			continue
		}
		var vals [3]float64
		for k, s := range parts {
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, fmt.Errorf("failed to parse coordinate %q: %w", tuple, err)
			}
			vals[k] = v
		}
		path = append(path, models.TrackPoint{Lat: vals[1], Lon: vals[0], Alt: vals[2]})
	}
	return path, nil
}
