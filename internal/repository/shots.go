package repository

import (
	"context"
	"errors"

	"swish-api/internal/models"

	"gorm.io/gorm"
)

// CreateShot inserts a new shot record
func (r *Repository) CreateShot(ctx context.Context, shot *models.Shot) error {
	return r.db.WithContext(ctx).Create(shot).Error
}

// GetShot retrieves a shot by ID, trajectory included
func (r *Repository) GetShot(ctx context.Context, id uint) (*models.Shot, error) {
	var shot models.Shot
	err := r.db.WithContext(ctx).First(&shot, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrShotNotFound
		}
		return nil, err
	}
	return &shot, nil
}

// ListGameShots retrieves all shots for a game ordered by shot number
func (r *Repository) ListGameShots(ctx context.Context, gameID uint) ([]models.Shot, error) {
	var shots []models.Shot
	err := r.db.WithContext(ctx).
		Where("game_id = ?", gameID).
		Order("shot_number ASC").
		Find(&shots).Error
	return shots, err
}

// ListUserShots retrieves a user's shots, optionally restricted to games of
// one mode (requires a join to games)
func (r *Repository) ListUserShots(ctx context.Context, userID uint, gameMode string) ([]models.Shot, error) {
	q := r.db.WithContext(ctx).Where("shots.user_id = ?", userID)
	if gameMode != "" {
		q = q.Joins("JOIN games ON games.id = shots.game_id").
			Where("games.game_mode = ?", gameMode)
	}

	var shots []models.Shot
	err := q.Find(&shots).Error
	return shots, err
}

// BulkInsertShots efficiently inserts multiple shots (used by the seeder)
func (r *Repository) BulkInsertShots(ctx context.Context, shots []models.Shot, batchSize int) error {
	return r.db.WithContext(ctx).CreateInBatches(shots, batchSize).Error
}
