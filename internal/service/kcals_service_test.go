package service

import (
	"context"
	"math"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jengzang/kcals-backend-go/internal/config"
	"github.com/jengzang/kcals-backend-go/internal/database"
	"github.com/jengzang/kcals-backend-go/internal/models"
	"github.com/jengzang/kcals-backend-go/internal/pipeline"
	"github.com/jengzang/kcals-backend-go/internal/repository"
	"github.com/jengzang/kcals-backend-go/internal/spatial"
)

func newTestService(t *testing.T, defaults config.Params) *KcalsService {
	t.Helper()
	db, err := database.Open(database.Config{Path: database.MemoryPath})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewKcalsService(repository.NewTrackRepository(db), defaults, nil)
}

func climb() []models.TrackPoint {
	o := spatial.Origin{Lat: 46.5, Lon: 7.5}
	path := make([]models.TrackPoint, 101)
	for k := range path {
		path[k] = spatial.Unproject(spatial.PlanarPoint{X: float64(k) * 10, Z: float64(k)}, o)
	}
	return path
}

func asTriples(path []models.TrackPoint) [][]float64 {
	out := make([][]float64, len(path))
	for i, p := range path {
		out[i] = []float64{p.Lat, p.Lon, p.Alt}
	}
	return out
}

func TestCompute(t *testing.T) {
	s := newTestService(t, config.DefaultParams())

	res, err := s.Compute(asTriples(climb()), nil)
	require.NoError(t, err)
	assert.InDelta(t, 1000.0, res.Stats.HorizontalDistance, 1)
	assert.InDelta(t, 100.0, res.Stats.Gain, 1)

	p, ok := res.Params.(config.Params)
	require.True(t, ok)
	assert.True(t, p.Bounded)

	walking := false
	res2, err := s.Compute(asTriples(climb()), &models.ParamsRequest{Running: &walking})
	require.NoError(t, err)
	assert.Less(t, res2.Stats.Cost, res.Stats.Cost)
}

func TestComputeInputErrors(t *testing.T) {
	small := config.DefaultParams()
	small.ServerMax = 100
	s := newTestService(t, small)

	_, err := s.Compute([][]float64{{1}}, nil)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = s.Compute(nil, nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.ErrorIs(t, err, pipeline.ErrNoPoints)

	_, err = s.Compute(asTriples(climb()), nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.ErrorIs(t, err, spatial.ErrTooLong)

	_, err = s.ComputeUpload("doc", strings.NewReader(""), nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestComputeUpload(t *testing.T) {
	s := newTestService(t, config.DefaultParams())

	var b strings.Builder
	b.WriteString("Latitude,Longitude,Altitude\n")
	for _, p := range climb() {
		b.WriteString(strings.Join([]string{
			formatFloat(p.Lat), formatFloat(p.Lon), formatFloat(p.Alt),
		}, ","))
		b.WriteString("\n")
	}
	res, err := s.ComputeUpload("csv", strings.NewReader(b.String()), nil)
	require.NoError(t, err)
	assert.InDelta(t, 100.0, res.Stats.Gain, 1)
	assert.Equal(t, 101, res.Stats.OrigN)
}

func TestComputeUploadRejectsNonFiniteInput(t *testing.T) {
	s := newTestService(t, config.DefaultParams())

	csv := "Latitude,Longitude,Altitude\n46.5,7.5,100\nNaN,7.5,110\n"
	_, err := s.ComputeUpload("csv", strings.NewReader(csv), nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.ErrorIs(t, err, pipeline.ErrOutOfRange)

	weight := math.Inf(1)
	_, err = s.Compute(asTriples(climb()), &models.ParamsRequest{Weight: &weight})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.ErrorIs(t, err, config.ErrInvalidParams)

	resolution := 0.0001
	_, err = s.Compute(asTriples(climb()), &models.ParamsRequest{Resolution: &resolution})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.ErrorIs(t, err, spatial.ErrTooManyPoints)
}

func TestImportAndComputeStored(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t, config.DefaultParams())

	id, err := s.ImportTrack(ctx, "", climb())
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	named, err := s.ImportTrack(ctx, "hill", climb())
	require.NoError(t, err)
	assert.Equal(t, "hill", named)

	tracks, err := s.ListTracks(ctx)
	require.NoError(t, err)
	assert.Len(t, tracks, 2)

	res, err := s.ComputeStored(ctx, models.TrackFilter{TrackID: "hill"}, nil)
	require.NoError(t, err)
	assert.InDelta(t, 100.0, res.Stats.Gain, 1)

	_, err = s.ComputeStored(ctx, models.TrackFilter{TrackID: "missing"}, nil)
	assert.ErrorIs(t, err, ErrTrackNotFound)

	_, err = s.ImportTrack(ctx, "bad", []models.TrackPoint{{Lat: 100}})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
