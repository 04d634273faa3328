package handlers

import (
	"swish-api/internal/models"
	"swish-api/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ShotHandler handles HTTP requests for shot records
type ShotHandler struct {
	service   *service.ShotService
	validator *validator.Validate
}

// NewShotHandler creates a new shot handler
func NewShotHandler(service *service.ShotService) *ShotHandler {
	return &ShotHandler{
		service:   service,
		validator: validator.New(),
	}
}

// CreateShot handles POST /shots/
func (h *ShotHandler) CreateShot(c *fiber.Ctx) error {
	var req models.ShotCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body", err)
	}
	if err := h.validator.Struct(&req); err != nil {
		return badRequest(c, "Validation failed", err)
	}

	shot, err := h.service.CreateShot(c.Context(), &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(shot.ToResponse())
}

// GetShot handles GET /shots/:id, trajectory included
func (h *ShotHandler) GetShot(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return badRequest(c, "Invalid shot id", err)
	}

	shot, err := h.service.GetShot(c.Context(), uint(id))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(shot.ToResponseWithTrajectory())
}

// GetGameShots handles GET /shots/game/:game_id
func (h *ShotHandler) GetGameShots(c *fiber.Ctx) error {
	gameID, err := c.ParamsInt("game_id")
	if err != nil || gameID <= 0 {
		return badRequest(c, "Invalid game id", err)
	}

	shots, err := h.service.ListGameShots(c.Context(), uint(gameID))
	if err != nil {
		return respondError(c, err)
	}

	resp := make([]models.ShotResponse, 0, len(shots))
	for i := range shots {
		resp = append(resp, shots[i].ToResponse())
	}
	return c.JSON(resp)
}

// GetShotChart handles GET /shots/user/:user_id/chart?game_mode=
func (h *ShotHandler) GetShotChart(c *fiber.Ctx) error {
	userID, err := c.ParamsInt("user_id")
	if err != nil || userID <= 0 {
		return badRequest(c, "Invalid user id", err)
	}

	chart, err := h.service.GetShotChart(c.Context(), uint(userID), c.Query("game_mode"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(chart)
}
