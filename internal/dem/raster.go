// Package dem samples gridded digital elevation models.
package dem

import (
	"errors"
	"fmt"
	"math"
)

// ErrRasterHeader means the grid lacks a required georeference field
var ErrRasterHeader = errors.New("raster header is incomplete")

// edgeEpsilon keeps interpolation inside the last cell of the grid
const edgeEpsilon = 1e-6

// RasterGrid is an elevation raster in geographic coordinates. Z[row][col] is in meters and
// row 0 is the northernmost row. The lower left corner and cell size are in degrees.
type RasterGrid struct {
	Z         [][]float64
	NCols     int
	NRows     int
	XLLCorner float64
	YLLCorner float64
	CellSize  float64
}

// Validate checks that the header is complete and agrees with the data
func (g *RasterGrid) Validate() error {
	if g.NCols < 2 || g.NRows < 2 {
		return fmt.Errorf("%w: ncols=%d, nrows=%d", ErrRasterHeader, g.NCols, g.NRows)
	}
	if g.CellSize <= 0 || math.IsNaN(g.CellSize) {
		return fmt.Errorf("%w: cellsize=%g", ErrRasterHeader, g.CellSize)
	}
	if math.IsNaN(g.XLLCorner) || math.IsNaN(g.YLLCorner) {
		return fmt.Errorf("%w: missing lower left corner", ErrRasterHeader)
	}
	if len(g.Z) != g.NRows {
		return fmt.Errorf("raster has %d rows, header says %d", len(g.Z), g.NRows)
	}
	for r, row := range g.Z {
		if len(row) != g.NCols {
			return fmt.Errorf("raster row %d has %d columns, header says %d", r, len(row), g.NCols)
		}
	}
	return nil
}

// Sample returns the bilinearly interpolated elevation at (lat, lon). Points outside the grid
// are clamped to its edge, and clamped reports whether that happened.
func (g *RasterGrid) Sample(lat, lon float64) (alt float64, clamped bool) {
	x := (lon - g.XLLCorner) / g.CellSize
	// rows run north to south while latitude increases northward
	y := float64(g.NRows) - (lat-g.YLLCorner)/g.CellSize

	x, cx := clamp(x, 0, float64(g.NCols-1)-edgeEpsilon)
	y, cy := clamp(y, 0, float64(g.NRows-1)-edgeEpsilon)
	return InterpolateRaster(g.Z, x, y), cx || cy
}

func clamp(v, lo, hi float64) (float64, bool) {
	if v < lo {
		return lo, true
	}
	if v > hi {
		return hi, true
	}
	return v, false
}

// InterpolateRaster interpolates z[iy][ix] at fractional array indices (x, y). The caller keeps
// x and y at least one cell away from the last column and row.
func InterpolateRaster(z [][]float64, x, y float64) float64 {
	ix := int(x)
	iy := int(y)
	fx := x - float64(ix)
	fy := y - float64(iy)
	return InterpolateSquare(fx, fy, z[iy][ix], z[iy][ix+1], z[iy+1][ix], z[iy+1][ix+1])
}

// InterpolateSquare is bilinear interpolation on the unit square. The result is continuous
// across the boundaries between neighboring squares.
func InterpolateSquare(x, y, z00, z10, z01, z11 float64) float64 {
	w00 := (1 - x) * (1 - y)
	w10 := x * (1 - y)
	w01 := (1 - x) * y
	w11 := x * y
	norm := w00 + w10 + w01 + w11
	return (z00*w00 + z10*w10 + z01*w01 + z11*w11) / norm
}
