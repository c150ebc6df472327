package api

import (
	"github.com/example/task-manager/modules/auth"
	"github.com/gofiber/fiber/v2"
)

// register handles POST /api/auth/register.
func (m *APIModule) register(c *fiber.Ctx) error {
	var body RegisterBody
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}

	resp, err := m.auth.Register(c.Context(), &auth.RegisterRequest{
		Name:     body.Name,
		Email:    body.Email,
		Password: body.Password,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// login handles POST /api/auth/login.
func (m *APIModule) login(c *fiber.Ctx) error {
	var body LoginBody
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}

	resp, err := m.auth.Login(c.Context(), &auth.LoginRequest{
		Email:    body.Email,
		Password: body.Password,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// refresh handles POST /api/auth/refresh.
func (m *APIModule) refresh(c *fiber.Ctx) error {
	var body RefreshBody
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if body.RefreshToken == "" {
		return badRequest(c, "Refresh token is required")
	}

	resp, err := m.auth.Refresh(c.Context(), body.RefreshToken)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
			Error:   "unauthorized",
			Message: "Invalid or expired refresh token",
		})
	}
	return c.JSON(resp)
}

// currentUser handles GET /api/auth/me.
func (m *APIModule) currentUser(c *fiber.Ctx) error {
	resp, err := m.auth.GetUser(c.Context(), currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
		Error:   "invalid_request",
		Message: message,
	})
}
