package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/example/task-manager/modules/analytics"
	"github.com/example/task-manager/modules/api"
	"github.com/example/task-manager/modules/audit"
	"github.com/example/task-manager/modules/auth"
	"github.com/example/task-manager/modules/friends"
	"github.com/example/task-manager/modules/ml"
	"github.com/example/task-manager/modules/notification"
	"github.com/example/task-manager/modules/task"
	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"
)

const shutdownTimeout = 30 * time.Second

func main() {
	log.Println("=== Task Manager ===")

	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(shutdownTimeout),
		mono.WithLogLevel(mono.LogLevelInfo),
		mono.WithLogFormat(mono.LogFormatText),
	)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}

	// Order: independent modules first, then modules with dependencies.
	app.Register(auth.NewModule())         // accounts and JWT validation
	app.Register(audit.NewModule())        // append-only audit trail
	app.Register(ml.NewModule())           // subtask generation client
	app.Register(notification.NewModule()) // event consumer, delivery stubbed
	app.Register(friends.NewModule())      // invites and friendships (depends on auth)
	app.Register(task.NewModule())         // core workflow (depends on friends, ml, audit)
	app.Register(analytics.NewModule())    // derived metrics (depends on task tables)
	app.Register(api.NewModule())          // REST surface

	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	printStartupInfo()

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		shutdownTimeout,
		map[string]gfshutdown.Operation{
			"mono-app": func(ctx context.Context) error {
				log.Println("Graceful shutdown initiated...")
				return app.Stop(ctx)
			},
		},
	)

	exitCode := <-wait
	log.Printf("Application exited with code: %d", exitCode)
	os.Exit(exitCode)
}

func printStartupInfo() {
	log.Println("")
	log.Println("Application started successfully!")
	log.Println("")
	log.Println("REST API Endpoints (http://localhost:3000):")
	log.Println("  POST   /api/auth/register                        - Create an account")
	log.Println("  POST   /api/auth/login                           - Get a token pair")
	log.Println("  POST   /api/auth/refresh                         - Rotate tokens")
	log.Println("  GET    /api/auth/me                              - Current user")
	log.Println("  POST   /api/tasks                                - Create a task")
	log.Println("  GET    /api/tasks                                - List tasks (filters, search, paging)")
	log.Println("  GET    /api/tasks/:id                            - Get a task")
	log.Println("  PUT    /api/tasks/:id                            - Update fields / move status")
	log.Println("  DELETE /api/tasks/:id                            - Soft-delete a task")
	log.Println("  POST   /api/tasks/:id/generate-subtasks          - Generate subtasks from description")
	log.Println("  POST   /api/tasks/:id/subtasks                   - Add a subtask")
	log.Println("  GET    /api/tasks/:id/subtasks                   - List subtasks")
	log.Println("  PUT    /api/tasks/:id/subtasks/:subtaskId        - Update a subtask")
	log.Println("  DELETE /api/tasks/:id/subtasks/:subtaskId        - Delete a subtask")
	log.Println("  POST   /api/tasks/:id/subtasks/:subtaskId/workers - Assign a worker")
	log.Println("  GET    /api/analytics                            - Task summary")
	log.Println("  GET    /api/analytics/dashboard                  - Dashboard aggregates")
	log.Println("  GET    /api/audit-logs                           - Audit trail (filter by action)")
	log.Println("  GET    /api/friends                              - List friends")
	log.Println("  POST   /api/friends/invite                       - Send an invite link")
	log.Println("  DELETE /api/friends/:friendId                    - Remove a friend")
	log.Println("  GET    /api/friends/:friendId/activity           - Friend task activity")
	log.Println("  GET    /api/invites                              - Pending invites for me")
	log.Println("  POST   /api/invites/accept                       - Accept an invite token")
	log.Println("  GET    /health                                   - Health check")
	log.Println("")
	log.Println("Press Ctrl+C to shutdown gracefully")
}
