// Package audit provides the append-only audit log module: a fire-and-forget
// recorder port for business modules and a paginated read path for the API.
package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	domain "github.com/example/task-manager/domain/audit"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// AuditModule provides audit log services.
type AuditModule struct {
	db     *gorm.DB
	repo   *Repository
	dbPath string
}

// Compile-time interface checks.
var _ mono.Module = (*AuditModule)(nil)
var _ mono.ServiceProviderModule = (*AuditModule)(nil)
var _ mono.HealthCheckableModule = (*AuditModule)(nil)

// NewModule creates a new AuditModule.
func NewModule() *AuditModule {
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "task_manager.db"
	}
	return &AuditModule{dbPath: dbPath}
}

// Name returns the module name.
func (m *AuditModule) Name() string {
	return "audit"
}

// RegisterServices registers the record and query request-reply services.
func (m *AuditModule) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, "record", json.Unmarshal, json.Marshal, m.recordEntry,
	); err != nil {
		return fmt.Errorf("failed to register record service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "query", json.Unmarshal, json.Marshal, m.queryEntries,
	); err != nil {
		return fmt.Errorf("failed to register query service: %w", err)
	}

	log.Printf("[audit] Registered services: services.audit.{record,query}")
	return nil
}

// Start opens the database and migrates the audit log schema.
func (m *AuditModule) Start(_ context.Context) error {
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

	if err := m.db.AutoMigrate(&domain.Entry{}); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	m.repo = NewRepository(m.db)

	log.Println("[audit] Module started")
	return nil
}

// Stop closes the database connection.
func (m *AuditModule) Stop(_ context.Context) error {
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

	log.Println("[audit] Module stopped")
	return nil
}

// Health performs a health check on the audit module.
func (m *AuditModule) Health(ctx context.Context) mono.HealthStatus {
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
		Details: map[string]any{"driver": "sqlite", "path": m.dbPath},
	}
}
