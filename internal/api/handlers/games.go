package handlers

import (
	"swish-api/internal/models"
	"swish-api/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// GameHandler handles HTTP requests for game sessions
type GameHandler struct {
	service   *service.GameService
	validator *validator.Validate
}

// NewGameHandler creates a new game handler
func NewGameHandler(service *service.GameService) *GameHandler {
	return &GameHandler{
		service:   service,
		validator: validator.New(),
	}
}

// CreateGame handles POST /games/?user_id={id}
func (h *GameHandler) CreateGame(c *fiber.Ctx) error {
	userID := c.QueryInt("user_id")
	if userID <= 0 {
		return badRequest(c, "Missing or invalid user_id query parameter", nil)
	}

	var req models.GameCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body", err)
	}
	if err := h.validator.Struct(&req); err != nil {
		return badRequest(c, "Validation failed", err)
	}

	game, err := h.service.CreateGame(c.Context(), uint(userID), &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(game.ToResponse())
}

// GetGame handles GET /games/:id, returning the game with its shots
func (h *GameHandler) GetGame(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return badRequest(c, "Invalid game id", err)
	}

	game, err := h.service.GetGameWithShots(c.Context(), uint(id))
	if err != nil {
		return respondError(c, err)
	}

	resp := models.GameWithShots{
		GameResponse: game.ToResponse(),
		Shots:        make([]models.ShotResponse, 0, len(game.Shots)),
	}
	for i := range game.Shots {
		resp.Shots = append(resp.Shots, game.Shots[i].ToResponse())
	}
	return c.JSON(resp)
}

// UpdateGame handles PATCH /games/:id
func (h *GameHandler) UpdateGame(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return badRequest(c, "Invalid game id", err)
	}

	var req models.GameUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body", err)
	}
	if err := h.validator.Struct(&req); err != nil {
		return badRequest(c, "Validation failed", err)
	}

	game, err := h.service.UpdateGame(c.Context(), uint(id), &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(game.ToResponse())
}

// GetUserGames handles GET /games/user/:user_id?game_mode=&limit=20
func (h *GameHandler) GetUserGames(c *fiber.Ctx) error {
	userID, err := c.ParamsInt("user_id")
	if err != nil || userID <= 0 {
		return badRequest(c, "Invalid user id", err)
	}

	gameMode := c.Query("game_mode")
	limit := c.QueryInt("limit", 20)
	if limit <= 0 {
		limit = 20
	}

	games, err := h.service.ListUserGames(c.Context(), uint(userID), gameMode, limit)
	if err != nil {
		return respondError(c, err)
	}

	resp := make([]models.GameResponse, 0, len(games))
	for i := range games {
		resp = append(resp, games[i].ToResponse())
	}
	return c.JSON(resp)
}

// DeleteGame handles DELETE /games/:id
func (h *GameHandler) DeleteGame(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return badRequest(c, "Invalid game id", err)
	}

	if err := h.service.DeleteGame(c.Context(), uint(id)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Game deleted successfully",
	})
}
