package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jengzang/kcals-backend-go/internal/database"
	"github.com/jengzang/kcals-backend-go/internal/models"
)

// TrackRepository handles database operations for track points
type TrackRepository struct {
	db *sql.DB
}

// NewTrackRepository creates a new track repository
func NewTrackRepository(db *sql.DB) *TrackRepository {
	return &TrackRepository{db: db}
}

// GetTrackPoints returns the points of one track in recording order, optionally restricted to
// a time window
func (r *TrackRepository) GetTrackPoints(ctx context.Context, filter models.TrackFilter) ([]models.StoredTrackPoint, error) {
	query := `SELECT id, track_id, seq, dataTime, latitude, longitude, altitude FROM track_points`

	conditions := []string{"track_id = ?"}
	args := []interface{}{filter.TrackID}

	if filter.StartTime > 0 {
		conditions = append(conditions, "dataTime >= ?")
		args = append(args, filter.StartTime)
	}
	if filter.EndTime > 0 {
		conditions = append(conditions, "dataTime <= ?")
		args = append(args, filter.EndTime)
	}

	query += " WHERE " + strings.Join(conditions, " AND ") + " ORDER BY seq"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query track points: %w", err)
	}
	defer rows.Close()

	var points []models.StoredTrackPoint
	for rows.Next() {
		var p models.StoredTrackPoint
		if err := rows.Scan(&p.ID, &p.TrackID, &p.Seq, &p.DataTime, &p.Latitude, &p.Longitude, &p.Altitude); err != nil {
			return nil, fmt.Errorf("failed to scan track point: %w", err)
		}
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate track points: %w", err)
	}

	return points, nil
}

// InsertTrackPoints stores a whole track in one transaction. Seq is taken from the slice order.
func (r *TrackRepository) InsertTrackPoints(ctx context.Context, trackID string, points []models.StoredTrackPoint) error {
	return database.Transaction(r.db, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `INSERT INTO track_points
			(track_id, seq, dataTime, latitude, longitude, altitude) VALUES (?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("failed to prepare insert: %w", err)
		}
		defer stmt.Close()

		for seq, p := range points {
			if _, err := stmt.ExecContext(ctx, trackID, seq, p.DataTime, p.Latitude, p.Longitude, p.Altitude); err != nil {
				return fmt.Errorf("failed to insert track point %d: %w", seq, err)
			}
		}
		return nil
	})
}

// ListTracks summarizes every stored track
func (r *TrackRepository) ListTracks(ctx context.Context) ([]models.TrackSummary, error) {
	query := `SELECT track_id, COUNT(*), MIN(dataTime), MAX(dataTime)
		FROM track_points GROUP BY track_id ORDER BY track_id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query tracks: %w", err)
	}
	defer rows.Close()

	tracks := []models.TrackSummary{}
	for rows.Next() {
		var s models.TrackSummary
		if err := rows.Scan(&s.TrackID, &s.PointCount, &s.StartTime, &s.EndTime); err != nil {
			return nil, fmt.Errorf("failed to scan track summary: %w", err)
		}
		tracks = append(tracks, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tracks: %w", err)
	}

	return tracks, nil
}
