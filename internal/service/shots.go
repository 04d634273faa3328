package service

import (
	"context"

	"swish-api/internal/models"
	"swish-api/internal/repository"
)

// ShotService handles business logic for shot records
type ShotService struct {
	repo *repository.Repository
}

// NewShotService creates a new shot service
func NewShotService(repo *repository.Repository) *ShotService {
	return &ShotService{
		repo: repo,
	}
}

// CreateShot records a shot against an existing game. The owner's user ID is
// copied from the game, and the trajectory blob is stored verbatim.
func (s *ShotService) CreateShot(ctx context.Context, req *models.ShotCreateRequest) (*models.Shot, error) {
	game, err := s.repo.GetGame(ctx, req.GameID)
	if err != nil {
		return nil, err
	}

	shot := &models.Shot{
		UserID:     game.UserID,
		GameID:     game.ID,
		Angle:      req.Angle,
		Power:      req.Power,
		ReleaseX:   req.ReleaseX,
		ReleaseY:   req.ReleaseY,
		Made:       *req.Made,
		ShotType:   req.ShotType,
		Distance:   req.Distance,
		Trajectory: req.Trajectory,
		ShotNumber: req.ShotNumber,
	}
	if err := s.repo.CreateShot(ctx, shot); err != nil {
		return nil, err
	}
	return shot, nil
}

// GetShot retrieves a shot with its trajectory
func (s *ShotService) GetShot(ctx context.Context, id uint) (*models.Shot, error) {
	return s.repo.GetShot(ctx, id)
}

// ListGameShots retrieves an existing game's shots ordered by shot number
func (s *ShotService) ListGameShots(ctx context.Context, gameID uint) ([]models.Shot, error) {
	if _, err := s.repo.GetGame(ctx, gameID); err != nil {
		return nil, err
	}
	return s.repo.ListGameShots(ctx, gameID)
}

// GetShotChart aggregates a user's shots for heat-map rendering, optionally
// restricted to games of one mode
func (s *ShotService) GetShotChart(ctx context.Context, userID uint, gameMode string) (*models.ShotChart, error) {
	shots, err := s.repo.ListUserShots(ctx, userID, gameMode)
	if err != nil {
		return nil, err
	}

	chart := &models.ShotChart{
		TotalShots: len(shots),
		ByPosition: make([]models.ShotChartPosition, 0, len(shots)),
	}
	for _, shot := range shots {
		if shot.Made {
			chart.Made++
		} else {
			chart.Missed++
		}
		chart.ByPosition = append(chart.ByPosition, models.ShotChartPosition{
			X:        shot.ReleaseX,
			Y:        shot.ReleaseY,
			Made:     shot.Made,
			ShotType: shot.ShotType,
		})
	}
	return chart, nil
}
