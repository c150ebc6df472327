package api

import (
	"github.com/example/task-manager/modules/audit"
	"github.com/gofiber/fiber/v2"
)

// summary handles GET /api/analytics.
func (m *APIModule) summary(c *fiber.Ctx) error {
	resp, err := m.analytics.Summary(c.Context(), currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// dashboard handles GET /api/analytics/dashboard.
func (m *APIModule) dashboard(c *fiber.Ctx) error {
	resp, err := m.analytics.Dashboard(c.Context(), currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// auditLogs handles GET /api/audit-logs.
func (m *APIModule) auditLogs(c *fiber.Ctx) error {
	resp, err := m.audit.Query(c.Context(), &audit.QueryRequest{
		UserID: currentUserID(c),
		Action: c.Query("action"),
		Page:   c.QueryInt("page", 1),
		Limit:  c.QueryInt("limit", 10),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}
