package handlers

import (
	"swish-api/internal/models"
	"swish-api/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// UserHandler handles HTTP requests for user accounts
type UserHandler struct {
	service   *service.UserService
	validator *validator.Validate
}

// NewUserHandler creates a new user handler
func NewUserHandler(service *service.UserService) *UserHandler {
	return &UserHandler{
		service:   service,
		validator: validator.New(),
	}
}

// CreateUser handles POST /users/
func (h *UserHandler) CreateUser(c *fiber.Ctx) error {
	var req models.UserCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body", err)
	}
	if err := h.validator.Struct(&req); err != nil {
		return badRequest(c, "Validation failed", err)
	}

	user, err := h.service.CreateUser(c.Context(), &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(user.ToResponse())
}

// GetUser handles GET /users/:id
func (h *UserHandler) GetUser(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return badRequest(c, "Invalid user id", err)
	}

	user, err := h.service.GetUser(c.Context(), uint(id))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user.ToResponse())
}

// GetUserByUsername handles GET /users/username/:username
func (h *UserHandler) GetUserByUsername(c *fiber.Ctx) error {
	username := c.Params("username")
	if username == "" {
		return badRequest(c, "Username cannot be empty", nil)
	}

	user, err := h.service.GetUserByUsername(c.Context(), username)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user.ToResponse())
}

// GetUserStats handles GET /users/:id/stats
func (h *UserHandler) GetUserStats(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return badRequest(c, "Invalid user id", err)
	}

	stats, err := h.service.GetUserStats(c.Context(), uint(id))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(stats)
}
