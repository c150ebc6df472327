package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// respondError maps a port error onto the HTTP taxonomy: NotFound 404,
// Forbidden 403, InvalidTransition and validation failures 400, everything
// else a generic 500. Errors cross the service bus as messages, so the
// mapping matches on the stable error strings.
func respondError(c *fiber.Ctx, err error) error {
	msg := err.Error()

	switch {
	case strings.Contains(msg, "not found"):
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Error:   "not_found",
			Message: "Resource not found",
		})
	case strings.Contains(msg, "not authorized"):
		return c.Status(fiber.StatusForbidden).JSON(ErrorResponse{
			Error:   "forbidden",
			Message: "You are not allowed to do that",
		})
	case strings.Contains(msg, "invalid status transition"):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_transition",
			Message: trimServiceError(msg),
		})
	case strings.Contains(msg, "invalid email or password"):
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
			Error:   "unauthorized",
			Message: "Invalid email or password",
		})
	case strings.Contains(msg, "required"),
		strings.Contains(msg, "invalid email format"),
		strings.Contains(msg, "password must"),
		strings.Contains(msg, "already exists"),
		strings.Contains(msg, "invalid invite token"),
		strings.Contains(msg, "invite expired"):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "validation_error",
			Message: trimServiceError(msg),
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error:   "internal_error",
			Message: "Something went wrong",
		})
	}
}

// trimServiceError strips the adapter's "x service call failed:" wrapping so
// clients see only the domain message.
func trimServiceError(msg string) string {
	const marker = "service call failed: "
	if i := strings.Index(msg, marker); i >= 0 {
		return msg[i+len(marker):]
	}
	return msg
}
