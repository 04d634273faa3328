package handlers

import (
	"swish-api/internal/models"
	"swish-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

// LeaderboardHandler handles HTTP requests for leaderboards
type LeaderboardHandler struct {
	service *service.LeaderboardService
}

// NewLeaderboardHandler creates a new leaderboard handler
func NewLeaderboardHandler(service *service.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{
		service: service,
	}
}

// GetLeaderboard handles GET /leaderboard/:game_mode?difficulty=medium&limit=100
func (h *LeaderboardHandler) GetLeaderboard(c *fiber.Ctx) error {
	gameMode := c.Params("game_mode")
	if gameMode == "" {
		return badRequest(c, "Game mode cannot be empty", nil)
	}

	difficulty := c.Query("difficulty", models.DifficultyMedium)
	limit := c.QueryInt("limit", service.DefaultLeaderboardLimit)

	leaderboard, err := h.service.GetLeaderboard(c.Context(), gameMode, difficulty, limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(leaderboard)
}

// GetTopPlayers handles GET /leaderboard/global/top-players?limit=50
func (h *LeaderboardHandler) GetTopPlayers(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", service.DefaultTopPlayersLimit)

	players, err := h.service.GetTopPlayers(c.Context(), limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(players)
}
