package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/loftchat/loftchat-backend/internal/httpx"
	"github.com/loftchat/loftchat-backend/internal/service"
)

// mapServiceError translates the service sentinels into HTTP responses.
// Anything unexpected is a generic 500 carrying only the given code.
func mapServiceError(c *fiber.Ctx, err error, code string) error {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		return httpx.BadRequest(c, "invalid_input", "Invalid input")
	case errors.Is(err, service.ErrForbidden):
		return httpx.Forbidden(c, "forbidden", "Forbidden")
	case errors.Is(err, service.ErrNotFound):
		return httpx.NotFound(c, "not_found", "Not found")
	default:
		return httpx.Internal(c, code)
	}
}
