package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/google/uuid"

	"github.com/jengzang/kcals-backend-go/internal/config"
	"github.com/jengzang/kcals-backend-go/internal/models"
	"github.com/jengzang/kcals-backend-go/internal/pipeline"
	"github.com/jengzang/kcals-backend-go/internal/repository"
	"github.com/jengzang/kcals-backend-go/internal/spatial"
	"github.com/jengzang/kcals-backend-go/internal/trackio"
)

var (
	// ErrInvalidInput marks errors caused by the request rather than by the server
	ErrInvalidInput = errors.New("invalid input")
	// ErrTrackNotFound is returned when a stored track has no points
	ErrTrackNotFound = errors.New("track not found")
)

// KcalsService runs the pipeline on submitted and stored tracks
type KcalsService struct {
	trackRepo *repository.TrackRepository
	defaults  config.Params
	elevation pipeline.ElevationSource
}

// NewKcalsService creates a service whose runs start from defaults. Every run it makes is
// bounded. elevation may be nil.
func NewKcalsService(trackRepo *repository.TrackRepository, defaults config.Params, elevation pipeline.ElevationSource) *KcalsService {
	defaults.Bounded = true
	return &KcalsService{
		trackRepo: trackRepo,
		defaults:  defaults,
		elevation: elevation,
	}
}

// Compute runs the pipeline on a path of [lat, lon] or [lat, lon, alt] triples
func (s *KcalsService) Compute(raw [][]float64, overrides *models.ParamsRequest) (*models.KcalsResult, error) {
	path := make([]models.TrackPoint, len(raw))
	for i, v := range raw {
		switch len(v) {
		case 2:
			path[i] = models.TrackPoint{Lat: v[0], Lon: v[1]}
		case 3:
			path[i] = models.TrackPoint{Lat: v[0], Lon: v[1], Alt: v[2]}
		default:
			return nil, fmt.Errorf("%w: point %d has %d coordinates", ErrInvalidInput, i, len(v))
		}
	}
	return s.run(path, overrides)
}

// ComputeUpload parses a track file in the given format and runs the pipeline on it
func (s *KcalsService) ComputeUpload(format string, r io.Reader, overrides *models.ParamsRequest) (*models.KcalsResult, error) {
	path, err := trackio.Parse(format, r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return s.run(path, overrides)
}

// ComputeStored runs the pipeline on a track from the database
func (s *KcalsService) ComputeStored(ctx context.Context, f models.TrackFilter, overrides *models.ParamsRequest) (*models.KcalsResult, error) {
	stored, err := s.trackRepo.GetTrackPoints(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("failed to get track points: %w", err)
	}
	if len(stored) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrTrackNotFound, f.TrackID)
	}

	path := make([]models.TrackPoint, len(stored))
	for i, p := range stored {
		path[i] = p.Point()
	}
	return s.run(path, overrides)
}

// ListTracks returns a summary of every stored track
func (s *KcalsService) ListTracks(ctx context.Context) ([]models.TrackSummary, error) {
	tracks, err := s.trackRepo.ListTracks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tracks: %w", err)
	}
	return tracks, nil
}

// ImportTrack validates and stores a track, generating an ID when trackID is empty
func (s *KcalsService) ImportTrack(ctx context.Context, trackID string, path []models.TrackPoint) (string, error) {
	if err := pipeline.Validate(path); err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if trackID == "" {
		trackID = uuid.NewString()
	}

	stored := make([]models.StoredTrackPoint, len(path))
	for i, p := range path {
		stored[i] = models.StoredTrackPoint{Latitude: p.Lat, Longitude: p.Lon, Altitude: p.Alt}
	}
	if err := s.trackRepo.InsertTrackPoints(ctx, trackID, stored); err != nil {
		return "", fmt.Errorf("failed to store track %s: %w", trackID, err)
	}

	log.Printf("[KcalsService] Imported track %s with %d points", trackID, len(path))
	return trackID, nil
}

func (s *KcalsService) run(path []models.TrackPoint, overrides *models.ParamsRequest) (*models.KcalsResult, error) {
	p := s.defaults.Apply(overrides)

	res, err := pipeline.Run(path, p, s.elevation)
	if err != nil {
		if isInputError(err) {
			return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
		log.Printf("[KcalsService] Pipeline failed: %v", err)
		return nil, fmt.Errorf("failed to compute kcals: %w", err)
	}

	return &models.KcalsResult{
		Stats:    res.Stats,
		Warnings: res.Warnings,
		Params:   p,
	}, nil
}

func isInputError(err error) bool {
	for _, target := range []error{
		pipeline.ErrNoPoints,
		pipeline.ErrOutOfRange,
		spatial.ErrTooLong,
		spatial.ErrTooManyPoints,
		config.ErrInvalidParams,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
