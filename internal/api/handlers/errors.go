package handlers

import (
	"errors"

	"swish-api/internal/models"

	"github.com/gofiber/fiber/v2"
)

// respondError translates a domain error into the wire contract: 404 for
// missing entities, 400 for a username collision, 500 otherwise.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, models.ErrUserNotFound),
		errors.Is(err, models.ErrGameNotFound),
		errors.Is(err, models.ErrShotNotFound):
		return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse{
			Error:   "Not found",
			Message: err.Error(),
		})

	case errors.Is(err, models.ErrUsernameTaken):
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error:   "Conflict",
			Message: err.Error(),
		})

	default:
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{
			Error:   "Internal server error",
			Message: err.Error(),
		})
	}
}

// badRequest writes a 400 with a structured message
func badRequest(c *fiber.Ctx, reason string, err error) error {
	resp := models.ErrorResponse{Error: reason}
	if err != nil {
		resp.Message = err.Error()
	}
	return c.Status(fiber.StatusBadRequest).JSON(resp)
}
