package service

import (
	"context"
	"log"

	"swish-api/internal/models"
	"swish-api/internal/repository"
	"swish-api/internal/worker"
)

// GameService handles business logic for game sessions
type GameService struct {
	repo      *repository.Repository
	eventPool *worker.Pool
}

// NewGameService creates a new game service. The event pool is optional;
// without it, completion events are simply not published.
func NewGameService(repo *repository.Repository, eventPool *worker.Pool) *GameService {
	return &GameService{
		repo:      repo,
		eventPool: eventPool,
	}
}

// CreateGame starts a new game for an existing user with zeroed counters
func (s *GameService) CreateGame(ctx context.Context, userID uint, req *models.GameCreateRequest) (*models.Game, error) {
	if _, err := s.repo.GetUser(ctx, userID); err != nil {
		return nil, err
	}

	difficulty := req.Difficulty
	if difficulty == "" {
		difficulty = models.DifficultyMedium
	}

	game := &models.Game{
		UserID:     userID,
		GameMode:   req.GameMode,
		Difficulty: difficulty,
	}
	if err := s.repo.CreateGame(ctx, game); err != nil {
		return nil, err
	}
	return game, nil
}

// GetGameWithShots retrieves a game and its shots ordered by shot number
func (s *GameService) GetGameWithShots(ctx context.Context, id uint) (*models.Game, error) {
	return s.repo.GetGameWithShots(ctx, id)
}

// UpdateGame applies a partial update. When the update completes the game,
// the owner's stats are rolled up (once) and a completion event is queued
// for the live leaderboard feed.
func (s *GameService) UpdateGame(ctx context.Context, id uint, req *models.GameUpdateRequest) (*models.Game, error) {
	game, completedNow, err := s.repo.UpdateGame(ctx, id, req)
	if err != nil {
		return nil, err
	}

	if completedNow && s.eventPool != nil {
		s.queueCompletionEvent(ctx, game)
	}
	return game, nil
}

// queueCompletionEvent submits the event to the dispatch pool. Failures are
// logged only; the update has already committed.
func (s *GameService) queueCompletionEvent(ctx context.Context, game *models.Game) {
	username := ""
	if user, err := s.repo.GetUser(ctx, game.UserID); err == nil {
		username = user.Username
	}

	event := models.CompletionEvent{
		Type:       "game_completed",
		GameID:     game.ID,
		UserID:     game.UserID,
		Username:   username,
		GameMode:   game.GameMode,
		Difficulty: game.Difficulty,
		Score:      game.Score,
	}
	if err := s.eventPool.Submit(event); err != nil {
		log.Printf("dropping completion event for game %d: %v", game.ID, err)
	}
}

// ListUserGames retrieves an existing user's games, newest first
func (s *GameService) ListUserGames(ctx context.Context, userID uint, gameMode string, limit int) ([]models.Game, error) {
	if _, err := s.repo.GetUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.repo.ListUserGames(ctx, userID, gameMode, limit)
}

// DeleteGame removes a game and its shots. The owner's cumulative stats are
// left as they are.
func (s *GameService) DeleteGame(ctx context.Context, id uint) error {
	return s.repo.DeleteGame(ctx, id)
}
