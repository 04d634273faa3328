package handlers

import (
	"swish-api/internal/models"
	"swish-api/internal/repository"

	"github.com/gofiber/fiber/v2"
)

// HealthHandler handles the service banner and liveness endpoints
type HealthHandler struct {
	repo      *repository.Repository
	publisher *repository.EventPublisher
}

// NewHealthHandler creates a new health handler. The publisher is optional.
func NewHealthHandler(repo *repository.Repository, publisher *repository.EventPublisher) *HealthHandler {
	return &HealthHandler{
		repo:      repo,
		publisher: publisher,
	}
}

// Banner handles GET /
func (h *HealthHandler) Banner(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "Welcome to Swish API",
		"version": "1.0.0",
		"endpoints": []string{
			"POST /users/",
			"GET /users/:id",
			"GET /users/username/:username",
			"GET /users/:id/stats",
			"POST /games/?user_id=",
			"GET /games/:id",
			"PATCH /games/:id",
			"GET /games/user/:user_id",
			"DELETE /games/:id",
			"POST /shots/",
			"GET /shots/:id",
			"GET /shots/game/:game_id",
			"GET /shots/user/:user_id/chart",
			"GET /leaderboard/:game_mode",
			"GET /leaderboard/global/top-players",
			"GET /health",
			"WS /ws",
		},
	})
}

// Health handles GET /health
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	if err := h.repo.Ping(c.Context()); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(models.ErrorResponse{
			Error:   "Health check failed",
			Message: err.Error(),
		})
	}
	if h.publisher != nil {
		if err := h.publisher.Ping(c.Context()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(models.ErrorResponse{
				Error:   "Health check failed",
				Message: err.Error(),
			})
		}
	}
	return c.JSON(fiber.Map{
		"status": "healthy",
	})
}
