package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jengzang/kcals-backend-go/internal/database"
	"github.com/jengzang/kcals-backend-go/internal/models"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.Open(database.Config{Path: database.MemoryPath})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestTrackRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewTrackRepository(openTestDB(t))

	morning := []models.StoredTrackPoint{
		{DataTime: 100, Latitude: 46.5, Longitude: 7.5, Altitude: 1200},
		{DataTime: 110, Latitude: 46.501, Longitude: 7.501, Altitude: 1210},
		{DataTime: 120, Latitude: 46.502, Longitude: 7.502, Altitude: 1220},
	}
	require.NoError(t, repo.InsertTrackPoints(ctx, "morning", morning))
	require.NoError(t, repo.InsertTrackPoints(ctx, "evening", morning[:1]))

	points, err := repo.GetTrackPoints(ctx, models.TrackFilter{TrackID: "morning"})
	require.NoError(t, err)
	require.Len(t, points, 3)
	for i, p := range points {
		assert.Equal(t, i, p.Seq)
		assert.Equal(t, "morning", p.TrackID)
		assert.Equal(t, morning[i].Point(), p.Point())
	}

	points, err = repo.GetTrackPoints(ctx, models.TrackFilter{TrackID: "morning", StartTime: 105, EndTime: 115})
	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.Equal(t, int64(110), points[0].DataTime)

	points, err = repo.GetTrackPoints(ctx, models.TrackFilter{TrackID: "nope"})
	require.NoError(t, err)
	assert.Empty(t, points)

	tracks, err := repo.ListTracks(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.TrackSummary{
		{TrackID: "evening", PointCount: 1, StartTime: 100, EndTime: 100},
		{TrackID: "morning", PointCount: 3, StartTime: 100, EndTime: 120},
	}, tracks)
}

func TestInsertTrackPointsIsAtomic(t *testing.T) {
	ctx := context.Background()
	repo := NewTrackRepository(openTestDB(t))

	require.NoError(t, repo.InsertTrackPoints(ctx, "a", []models.StoredTrackPoint{{Latitude: 1}}))
	// seq 0 of track "a" already exists
	err := repo.InsertTrackPoints(ctx, "a", []models.StoredTrackPoint{{Latitude: 2}, {Latitude: 3}})
	assert.Error(t, err)

	points, err := repo.GetTrackPoints(ctx, models.TrackFilter{TrackID: "a"})
	require.NoError(t, err)
	assert.Len(t, points, 1)
}
