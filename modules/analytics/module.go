// Package analytics derives per-user task metrics: totals, status breakdown,
// completion time, and reopen rate.
package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/example/task-manager/events"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// AnalyticsModule provides analytics services over the task tables.
type AnalyticsModule struct {
	db        *gorm.DB
	service   *AnalyticsService
	dbPath    string
	redisAddr string
}

// Compile-time interface checks.
var _ mono.Module = (*AnalyticsModule)(nil)
var _ mono.ServiceProviderModule = (*AnalyticsModule)(nil)
var _ mono.DependentModule = (*AnalyticsModule)(nil)
var _ mono.EventConsumerModule = (*AnalyticsModule)(nil)
var _ mono.HealthCheckableModule = (*AnalyticsModule)(nil)

// NewModule creates a new AnalyticsModule.
func NewModule() *AnalyticsModule {
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "task_manager.db"
	}
	return &AnalyticsModule{dbPath: dbPath, redisAddr: os.Getenv("REDIS_ADDR")}
}

// Name returns the module name.
func (m *AnalyticsModule) Name() string {
	return "analytics"
}

// Dependencies returns the modules analytics depends on. The task module
// must migrate its tables before analytics reads them.
func (m *AnalyticsModule) Dependencies() []string {
	return []string{"task"}
}

// SetDependencyServiceContainer receives dependency service containers.
// Analytics reads the task tables directly, so no ports are wired.
func (m *AnalyticsModule) SetDependencyServiceContainer(_ string, _ mono.ServiceContainer) {}

// RegisterServices registers the summary and dashboard request-reply services.
func (m *AnalyticsModule) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, "summary", json.Unmarshal, json.Marshal, m.summary,
	); err != nil {
		return fmt.Errorf("failed to register summary service: %w", err)
	}
	if err := helper.RegisterTypedRequestReplyService(
		container, "dashboard", json.Unmarshal, json.Marshal, m.dashboard,
	); err != nil {
		return fmt.Errorf("failed to register dashboard service: %w", err)
	}

	log.Printf("[analytics] Registered services: services.analytics.{summary,dashboard}")
	return nil
}

// RegisterEventConsumers subscribes to the task mutations that change a
// user's aggregates, invalidating that user's cache.
func (m *AnalyticsModule) RegisterEventConsumers(registry mono.EventRegistry) error {
	if err := helper.RegisterTypedEventConsumer(registry, events.TaskCreatedV1, m.handleTaskCreated, m); err != nil {
		return fmt.Errorf("failed to register TaskCreated consumer: %w", err)
	}
	if err := helper.RegisterTypedEventConsumer(registry, events.TaskStatusUpdatedV1, m.handleTaskStatusUpdated, m); err != nil {
		return fmt.Errorf("failed to register TaskStatusUpdated consumer: %w", err)
	}
	if err := helper.RegisterTypedEventConsumer(registry, events.TaskSoftDeletedV1, m.handleTaskSoftDeleted, m); err != nil {
		return fmt.Errorf("failed to register TaskSoftDeleted consumer: %w", err)
	}

	log.Printf("[analytics] Registered event consumers: TaskCreated, TaskStatusUpdated, TaskSoftDeleted")
	return nil
}

func (m *AnalyticsModule) handleTaskCreated(ctx context.Context, event events.TaskCreatedEvent, _ *mono.Msg) error {
	m.service.Invalidate(ctx, event.OwnerID)
	return nil
}

func (m *AnalyticsModule) handleTaskStatusUpdated(ctx context.Context, event events.TaskStatusUpdatedEvent, _ *mono.Msg) error {
	m.service.Invalidate(ctx, event.OwnerID)
	return nil
}

func (m *AnalyticsModule) handleTaskSoftDeleted(ctx context.Context, event events.TaskSoftDeletedEvent, _ *mono.Msg) error {
	m.service.Invalidate(ctx, event.OwnerID)
	return nil
}

// summary handles the summary service request.
func (m *AnalyticsModule) summary(ctx context.Context, req SummaryRequest, _ *mono.Msg) (SummaryResponse, error) {
	resp, err := m.service.Summary(ctx, req.UserID)
	if err != nil {
		return SummaryResponse{}, err
	}
	return *resp, nil
}

// dashboard handles the dashboard service request.
func (m *AnalyticsModule) dashboard(ctx context.Context, req DashboardRequest, _ *mono.Msg) (DashboardResponse, error) {
	resp, err := m.service.Dashboard(ctx, req.UserID)
	if err != nil {
		return DashboardResponse{}, err
	}
	return *resp, nil
}

// Start opens the database read path and the optional Redis cache.
func (m *AnalyticsModule) Start(ctx context.Context) error {
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

	var client *redis.Client
	if m.redisAddr != "" {
		client = redis.NewClient(&redis.Options{Addr: m.redisAddr})
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("[analytics] Redis unavailable at %s, caching disabled: %v", m.redisAddr, err)
			_ = client.Close()
			client = nil
		}
	}

	m.service = NewAnalyticsService(NewRepository(m.db), NewCache(client))

	log.Println("[analytics] Module started")
	return nil
}

// Stop closes the Redis and database connections.
func (m *AnalyticsModule) Stop(_ context.Context) error {
	if m.service != nil {
		if err := m.service.cache.Close(); err != nil {
			log.Printf("[analytics] Warning: failed to close Redis client: %v", err)
		}
	}

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

	log.Println("[analytics] Module stopped")
	return nil
}

// Health performs a health check on the analytics module.
func (m *AnalyticsModule) Health(ctx context.Context) mono.HealthStatus {
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

	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{"cache": m.service.cache.Enabled()},
	}
}
