// Package friends manages invite links, friendship edges, and collaborator
// resolution for shared tasks.
package friends

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/example/task-manager/events"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// FriendsModule provides friendship and invite services.
type FriendsModule struct {
	db          *gorm.DB
	repo        *Repository
	authPort    AuthUserPort
	eventBus    mono.EventBus
	dbPath      string
	frontendURL string
}

// Compile-time interface checks.
var _ mono.Module = (*FriendsModule)(nil)
var _ mono.ServiceProviderModule = (*FriendsModule)(nil)
var _ mono.DependentModule = (*FriendsModule)(nil)
var _ mono.EventEmitterModule = (*FriendsModule)(nil)
var _ mono.HealthCheckableModule = (*FriendsModule)(nil)

// NewModule creates a new FriendsModule.
func NewModule() *FriendsModule {
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "task_manager.db"
	}
	frontendURL := os.Getenv("FRONTEND_URL")
	if frontendURL == "" {
		frontendURL = "http://localhost:3000"
	}
	return &FriendsModule{dbPath: dbPath, frontendURL: frontendURL}
}

// Name returns the module name.
func (m *FriendsModule) Name() string {
	return "friends"
}

// Dependencies returns the modules friends depends on.
func (m *FriendsModule) Dependencies() []string {
	return []string{"auth"}
}

// SetDependencyServiceContainer receives dependency service containers.
func (m *FriendsModule) SetDependencyServiceContainer(dep string, container mono.ServiceContainer) {
	if dep == "auth" {
		m.authPort = newAuthUserPort(container)
	}
}

// SetEventBus receives the event bus for publishing friend events.
func (m *FriendsModule) SetEventBus(bus mono.EventBus) {
	m.eventBus = bus
}

// EmitEvents declares the events this module publishes.
func (m *FriendsModule) EmitEvents() []mono.BaseEventDefinition {
	return []mono.BaseEventDefinition{
		events.FriendInviteCreatedV1.ToBase(),
		events.FriendAddedV1.ToBase(),
	}
}

// RegisterServices registers the friends request-reply services.
func (m *FriendsModule) RegisterServices(container mono.ServiceContainer) error {
	services := map[string]error{
		"invite":                helper.RegisterTypedRequestReplyService(container, "invite", json.Unmarshal, json.Marshal, m.inviteFriend),
		"accept-invite":         helper.RegisterTypedRequestReplyService(container, "accept-invite", json.Unmarshal, json.Marshal, m.acceptInvite),
		"list":                  helper.RegisterTypedRequestReplyService(container, "list", json.Unmarshal, json.Marshal, m.listFriends),
		"remove":                helper.RegisterTypedRequestReplyService(container, "remove", json.Unmarshal, json.Marshal, m.removeFriend),
		"invite-inbox":          helper.RegisterTypedRequestReplyService(container, "invite-inbox", json.Unmarshal, json.Marshal, m.inviteInbox),
		"resolve-collaborators": helper.RegisterTypedRequestReplyService(container, "resolve-collaborators", json.Unmarshal, json.Marshal, m.resolveCollaborators),
		"is-friend":             helper.RegisterTypedRequestReplyService(container, "is-friend", json.Unmarshal, json.Marshal, m.isFriend),
	}
	for name, err := range services {
		if err != nil {
			return fmt.Errorf("failed to register %s service: %w", name, err)
		}
	}

	log.Printf("[friends] Registered services: services.friends.{invite,accept-invite,list,remove,invite-inbox,resolve-collaborators,is-friend}")
	return nil
}

// Start opens the database and migrates the friendship schema.
func (m *FriendsModule) Start(_ context.Context) error {
	logLevel := logger.Silent
	if os.Getenv("DB_DEBUG") == "true" {
		logLevel = logger.Info
	}

	db, err := gorm.Open(sqlite.Open(m.dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	m.db = db

	if err := m.db.AutoMigrate(&Friend{}, &Invite{}); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	m.repo = NewRepository(m.db)

	log.Println("[friends] Module started")
	return nil
}

// Stop closes the database connection.
func (m *FriendsModule) Stop(_ context.Context) error {
	if m.db == nil {
		return nil
	}

	sqlDB, err := m.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	log.Println("[friends] Module stopped")
	return nil
}

// Health performs a health check on the friends module.
func (m *FriendsModule) Health(ctx context.Context) mono.HealthStatus {
	if m.db == nil {
		return mono.HealthStatus{Healthy: false, Message: "database not initialized"}
	}

	sqlDB, err := m.db.DB()
	if err != nil {
		return mono.HealthStatus{Healthy: false, Message: fmt.Sprintf("failed to get sql.DB: %v", err)}
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return mono.HealthStatus{Healthy: false, Message: fmt.Sprintf("database ping failed: %v", err)}
	}

	return mono.HealthStatus{Healthy: true, Message: "operational"}
}
