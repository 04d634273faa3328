package service

import (
	"context"

	"swish-api/internal/models"
	"swish-api/internal/repository"
)

const (
	// DefaultLeaderboardLimit caps per-mode leaderboards when the caller
	// does not supply a limit
	DefaultLeaderboardLimit = 100

	// DefaultTopPlayersLimit caps the global top-players list
	DefaultTopPlayersLimit = 50
)

// LeaderboardService handles ranked reads over completed games and user
// totals
type LeaderboardService struct {
	repo *repository.Repository
}

// NewLeaderboardService creates a new leaderboard service
func NewLeaderboardService(repo *repository.Repository) *LeaderboardService {
	return &LeaderboardService{
		repo: repo,
	}
}

// GetLeaderboard returns the ranked list of completed games for one mode and
// difficulty, ordered by score descending. Ranks are dense (1, 2, 3, ...):
// tied scores receive consecutive ranks in result order.
func (s *LeaderboardService) GetLeaderboard(ctx context.Context, gameMode, difficulty string, limit int) (*models.LeaderboardResponse, error) {
	if limit <= 0 {
		limit = DefaultLeaderboardLimit
	}

	rows, err := s.repo.GetTopGames(ctx, gameMode, difficulty, limit)
	if err != nil {
		return nil, err
	}

	entries := make([]models.LeaderboardEntry, 0, len(rows))
	for i := range rows {
		row := &rows[i]
		entries = append(entries, models.LeaderboardEntry{
			Rank:       i + 1,
			Username:   row.Username,
			Score:      row.Score,
			Accuracy:   row.Accuracy(),
			GameMode:   row.GameMode,
			Difficulty: row.Difficulty,
			ShotsMade:  row.ShotsMade,
			ShotsTaken: row.ShotsTaken,
			MaxStreak:  row.MaxStreak,
		})
	}

	return &models.LeaderboardResponse{
		GameMode:   gameMode,
		Difficulty: difficulty,
		Entries:    entries,
	}, nil
}

// GetTopPlayers returns users ranked by total score descending, dense rank
// from 1
func (s *LeaderboardService) GetTopPlayers(ctx context.Context, limit int) ([]models.TopPlayerEntry, error) {
	if limit <= 0 {
		limit = DefaultTopPlayersLimit
	}

	users, err := s.repo.GetTopUsers(ctx, limit)
	if err != nil {
		return nil, err
	}

	entries := make([]models.TopPlayerEntry, 0, len(users))
	for i := range users {
		user := &users[i]
		entries = append(entries, models.TopPlayerEntry{
			Rank:       i + 1,
			Username:   user.Username,
			TotalScore: user.TotalScore,
			TotalGames: user.TotalGames,
			Accuracy:   user.Accuracy(),
			BestStreak: user.BestStreak,
		})
	}
	return entries, nil
}
