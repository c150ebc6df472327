// Package api is the driving adapter: the REST surface over the auth, task,
// friends, analytics, and audit modules.
package api

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/example/task-manager/modules/analytics"
	"github.com/example/task-manager/modules/audit"
	"github.com/example/task-manager/modules/auth"
	"github.com/example/task-manager/modules/friends"
	"github.com/example/task-manager/modules/task"
	"github.com/go-monolith/mono"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// APIModule exposes the REST endpoints and calls the domain modules through
// their ports.
type APIModule struct {
	app       *fiber.App
	addr      string
	auth      auth.AuthPort
	tasks     task.TaskPort
	friends   friends.FriendsPort
	analytics analytics.AnalyticsPort
	audit     audit.AuditPort
}

// Compile-time interface checks.
var _ mono.Module = (*APIModule)(nil)
var _ mono.DependentModule = (*APIModule)(nil)
var _ mono.HealthCheckableModule = (*APIModule)(nil)

// NewModule creates a new APIModule.
func NewModule() *APIModule {
	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":3000"
	}
	return &APIModule{addr: addr}
}

// Name returns the module name.
func (m *APIModule) Name() string {
	return "api"
}

// Dependencies returns the modules the API fronts.
func (m *APIModule) Dependencies() []string {
	return []string{"auth", "task", "friends", "analytics", "audit"}
}

// SetDependencyServiceContainer receives dependency service containers.
func (m *APIModule) SetDependencyServiceContainer(dependency string, container mono.ServiceContainer) {
	switch dependency {
	case "auth":
		m.auth = auth.NewAuthAdapter(container)
	case "task":
		m.tasks = task.NewTaskAdapter(container)
	case "friends":
		m.friends = friends.NewFriendsAdapter(container)
	case "analytics":
		m.analytics = analytics.NewAnalyticsAdapter(container)
	case "audit":
		m.audit = audit.NewAuditAdapter(container)
	}
}

// Start initializes the Fiber HTTP server.
func (m *APIModule) Start(_ context.Context) error {
	if m.auth == nil || m.tasks == nil || m.friends == nil || m.analytics == nil || m.audit == nil {
		return fmt.Errorf("api module dependencies not set")
	}

	m.app = fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          customErrorHandler,
	})

	m.app.Use(recover.New())
	if origin := os.Getenv("FRONTEND_URL"); origin != "" {
		m.app.Use(cors.New(cors.Config{AllowOrigins: origin}))
	}

	m.setupRoutes()

	// Server availability is verified via Health().
	go func() {
		if err := m.app.Listen(m.addr); err != nil {
			log.Printf("[api] HTTP server error: %v", err)
		}
	}()

	log.Printf("[api] HTTP server started on %s", m.addr)
	return nil
}

// Stop shuts down the Fiber HTTP server.
func (m *APIModule) Stop(_ context.Context) error {
	if m.app == nil {
		return nil
	}
	log.Println("[api] Shutting down HTTP server...")
	return m.app.Shutdown()
}

// Health returns the health status of the module.
func (m *APIModule) Health(_ context.Context) mono.HealthStatus {
	return mono.HealthStatus{
		Healthy: m.app != nil,
		Message: "operational",
		Details: map[string]any{"addr": m.addr},
	}
}

// setupRoutes configures all HTTP routes.
func (m *APIModule) setupRoutes() {
	m.app.Get("/health", m.healthHandler)

	api := m.app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/register", m.register)
	authGroup.Post("/login", m.login)
	authGroup.Post("/refresh", m.refresh)
	authGroup.Get("/me", m.requireAuth, m.currentUser)

	tasks := api.Group("/tasks", m.requireAuth)
	tasks.Post("/", m.createTask)
	tasks.Get("/", m.listTasks)
	tasks.Get("/:id", m.getTask)
	tasks.Put("/:id", m.updateTask)
	tasks.Delete("/:id", m.deleteTask)
	tasks.Post("/:id/generate-subtasks", m.generateSubtasks)
	tasks.Post("/:id/subtasks", m.createSubTask)
	tasks.Get("/:id/subtasks", m.listSubTasks)
	tasks.Put("/:id/subtasks/:subtaskId", m.updateSubTask)
	tasks.Delete("/:id/subtasks/:subtaskId", m.deleteSubTask)
	tasks.Post("/:id/subtasks/:subtaskId/workers", m.assignWorker)

	api.Get("/analytics", m.requireAuth, m.summary)
	api.Get("/analytics/dashboard", m.requireAuth, m.dashboard)
	api.Get("/audit-logs", m.requireAuth, m.auditLogs)

	friendsGroup := api.Group("/friends", m.requireAuth)
	friendsGroup.Get("/", m.listFriends)
	friendsGroup.Post("/invite", m.inviteFriend)
	friendsGroup.Delete("/:friendId", m.removeFriend)
	friendsGroup.Get("/:friendId/activity", m.friendActivity)

	invites := api.Group("/invites", m.requireAuth)
	invites.Get("/", m.inviteInbox)
	invites.Post("/accept", m.acceptInvite)
}

// healthHandler handles GET /health.
func (m *APIModule) healthHandler(c *fiber.Ctx) error {
	return c.JSON(HealthResponse{
		Status:  "healthy",
		Details: map[string]any{"module": "api", "addr": m.addr},
	})
}

// customErrorHandler handles Fiber errors.
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(ErrorResponse{
		Error:   "server_error",
		Message: message,
	})
}
