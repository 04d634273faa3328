package repository

import (
	"context"

	"swish-api/internal/models"
)

// RankedGame is a completed game joined with its owner's username, as read
// by the leaderboard query
type RankedGame struct {
	models.Game
	Username string
}

// GetTopGames retrieves completed games for an exact mode and difficulty,
// ordered by score descending. The order among equal scores is whatever the
// database returns and is not part of the contract.
func (r *Repository) GetTopGames(ctx context.Context, gameMode, difficulty string, limit int) ([]RankedGame, error) {
	var rows []RankedGame
	err := r.db.WithContext(ctx).
		Model(&models.Game{}).
		Select("games.*, users.username AS username").
		Joins("JOIN users ON users.id = games.user_id").
		Where("games.game_mode = ?", gameMode).
		Where("games.difficulty = ?", difficulty).
		Where("games.completed = ?", true).
		Order("games.score DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}
