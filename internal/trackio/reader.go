// Package trackio reads raw tracks from the file formats produced by common GPS tools.
package trackio

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jengzang/kcals-backend-go/internal/models"
)

// Supported input formats
const (
	FormatText = "text" // gpsvisualizer.com elevation output
	FormatKML  = "kml"
	FormatGPX  = "gpx"
	FormatCSV  = "csv" // gpsbabel unicsv
)

// ErrUnknownFormat is returned by Parse for a format it has no reader for
var ErrUnknownFormat = errors.New("unrecognized format")

// Formats lists the names accepted by Parse
func Formats() []string {
	return []string{FormatText, FormatKML, FormatGPX, FormatCSV}
}

// Parse reads a whole track in the given format. Points are returned in file order and are not
// range checked.
func Parse(format string, r io.Reader) ([]models.TrackPoint, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case FormatText, "":
		return ReadText(r)
	case FormatKML:
		return ReadKML(r)
	case FormatGPX:
		return ReadGPX(r)
	case FormatCSV:
		return ReadCSV(r)
	default:
		return nil, fmt.Errorf("%w: %s, expected one of %s", ErrUnknownFormat, format, strings.Join(Formats(), ", "))
	}
}
