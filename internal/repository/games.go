package repository

import (
	"context"
	"errors"

	"swish-api/internal/models"

	"gorm.io/gorm"
)

// CreateGame inserts a new game with zeroed counters
func (r *Repository) CreateGame(ctx context.Context, game *models.Game) error {
	return r.db.WithContext(ctx).Create(game).Error
}

// GetGame retrieves a game by ID
func (r *Repository) GetGame(ctx context.Context, id uint) (*models.Game, error) {
	var game models.Game
	err := r.db.WithContext(ctx).First(&game, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrGameNotFound
		}
		return nil, err
	}
	return &game, nil
}

// GetGameWithShots retrieves a game and its shots ordered by shot number
func (r *Repository) GetGameWithShots(ctx context.Context, id uint) (*models.Game, error) {
	var game models.Game
	err := r.db.WithContext(ctx).
		Preload("Shots", func(db *gorm.DB) *gorm.DB {
			return db.Order("shot_number ASC")
		}).
		First(&game, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrGameNotFound
		}
		return nil, err
	}
	return &game, nil
}

// UpdateGame applies a partial update to a game. On the transition from
// completed=false to completed=true the owning user's cumulative stats are
// incremented exactly once; the guard is a conditional UPDATE on the
// completed flag, so two concurrent completions cannot double-count.
// Returns the updated game and whether this call performed the transition.
func (r *Repository) UpdateGame(ctx context.Context, id uint, upd *models.GameUpdateRequest) (*models.Game, bool, error) {
	var game models.Game
	completedNow := false

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&game, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.ErrGameNotFound
			}
			return err
		}

		wasCompleted := game.Completed
		cols := upd.Apply(&game)
		if len(cols) == 0 {
			return nil
		}

		if upd.RequestsCompletion() && !wasCompleted {
			res := tx.Model(&game).Where("completed = ?", false).
				Select(cols).Updates(&game)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				// A concurrent update completed the game first. Apply the
				// remaining fields but leave the rollup to that update.
				return tx.Model(&game).Select(cols).Updates(&game).Error
			}
			completedNow = true
			return rollupUserStats(tx, &game)
		}

		return tx.Model(&game).Select(cols).Updates(&game).Error
	})
	if err != nil {
		return nil, false, err
	}
	return &game, completedNow, nil
}

// rollupUserStats folds a finished game into the owner's cumulative stats.
// Runs inside the completion transaction; uses SQL expressions so the
// increments are atomic per row.
func rollupUserStats(tx *gorm.DB, game *models.Game) error {
	return tx.Model(&models.User{}).Where("id = ?", game.UserID).
		Updates(map[string]interface{}{
			"total_games": gorm.Expr("total_games + 1"),
			"total_shots": gorm.Expr("total_shots + ?", game.ShotsTaken),
			"total_makes": gorm.Expr("total_makes + ?", game.ShotsMade),
			"total_score": gorm.Expr("total_score + ?", game.Score),
			"best_streak": gorm.Expr(
				"CASE WHEN best_streak < ? THEN ? ELSE best_streak END",
				game.MaxStreak, game.MaxStreak,
			),
		}).Error
}

// ListUserGames retrieves a user's games, newest first, optionally filtered
// by game mode
func (r *Repository) ListUserGames(ctx context.Context, userID uint, gameMode string, limit int) ([]models.Game, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if gameMode != "" {
		q = q.Where("game_mode = ?", gameMode)
	}

	var games []models.Game
	err := q.Order("created_at DESC").Limit(limit).Find(&games).Error
	return games, err
}

// DeleteGame removes a game; its shots cascade. Prior stat rollups on the
// owning user are not reversed.
func (r *Repository) DeleteGame(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Game{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return models.ErrGameNotFound
	}
	return nil
}

// BulkInsertGames efficiently inserts multiple games (used by the seeder)
func (r *Repository) BulkInsertGames(ctx context.Context, games []models.Game, batchSize int) error {
	return r.db.WithContext(ctx).CreateInBatches(games, batchSize).Error
}
