package dem

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"unicode"
)

// ReadAAIGrid parses an ESRI ASCII grid (the AAIGrid format written by gdal_translate -of AAIGrid).
// Cells equal to NODATA_value are replaced by 0.
func ReadAAIGrid(r io.Reader) (*RasterGrid, error) {
	headers := map[string]string{}
	var values []float64

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if unicode.IsLetter(rune(line[0])) {
			fields := strings.Fields(line)
			if len(fields) != 2 {
				return nil, fmt.Errorf("unrecognized header line %q", line)
			}
			headers[strings.ToLower(fields[0])] = fields[1]
			continue
		}
		for _, f := range strings.Fields(line) {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, fmt.Errorf("failed to parse grid value %q: %w", f, err)
			}
			values = append(values, v)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read grid: %w", err)
	}

	g := &RasterGrid{}
	var err error
	if g.NCols, err = intHeader(headers, "ncols"); err != nil {
		return nil, err
	}
	if g.NRows, err = intHeader(headers, "nrows"); err != nil {
		return nil, err
	}
	if g.XLLCorner, err = floatHeader(headers, "xllcorner"); err != nil {
		return nil, err
	}
	if g.YLLCorner, err = floatHeader(headers, "yllcorner"); err != nil {
		return nil, err
	}
	if g.CellSize, err = floatHeader(headers, "cellsize"); err != nil {
		return nil, err
	}

	if len(values) != g.NCols*g.NRows {
		return nil, fmt.Errorf("grid has %d values, expected %d x %d", len(values), g.NCols, g.NRows)
	}

	noData := math.NaN()
	if _, ok := headers["nodata_value"]; ok {
		if noData, err = floatHeader(headers, "nodata_value"); err != nil {
			return nil, err
		}
	}

	g.Z = make([][]float64, g.NRows)
	for row := range g.Z {
		g.Z[row] = values[row*g.NCols : (row+1)*g.NCols]
		for col, v := range g.Z[row] {
			if v == noData {
				g.Z[row][col] = 0
			}
		}
	}

	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

// LoadAAIGrid reads an ESRI ASCII grid from a file
func LoadAAIGrid(path string) (*RasterGrid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open grid: %w", err)
	}
	defer f.Close()
	return ReadAAIGrid(f)
}

func intHeader(headers map[string]string, key string) (int, error) {
	s, ok := headers[key]
	if !ok {
		return 0, fmt.Errorf("%w: %s missing", ErrRasterHeader, key)
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q", ErrRasterHeader, key, s)
	}
	return v, nil
}

func floatHeader(headers map[string]string, key string) (float64, error) {
	s, ok := headers[key]
	if !ok {
		return 0, fmt.Errorf("%w: %s missing", ErrRasterHeader, key)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q", ErrRasterHeader, key, s)
	}
	return v, nil
}
