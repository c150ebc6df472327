// Package task implements the task lifecycle: ownership, the Pending /
// In Progress / Completed workflow, subtasks, collaborators, and soft delete.
package task

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	domain "github.com/example/task-manager/domain/task"
	"github.com/example/task-manager/events"
	"github.com/example/task-manager/modules/audit"
	"github.com/example/task-manager/modules/friends"
	"github.com/example/task-manager/modules/ml"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TaskModule provides task lifecycle services.
type TaskModule struct {
	db       *gorm.DB
	service  *TaskService
	friends  CollaboratorResolver
	ml       SubtaskGenerator
	recorder audit.Recorder
	eventBus mono.EventBus
	dbPath   string
}

// Compile-time interface checks.
var _ mono.Module = (*TaskModule)(nil)
var _ mono.ServiceProviderModule = (*TaskModule)(nil)
var _ mono.DependentModule = (*TaskModule)(nil)
var _ mono.EventEmitterModule = (*TaskModule)(nil)
var _ mono.HealthCheckableModule = (*TaskModule)(nil)

// NewModule creates a new TaskModule.
func NewModule() *TaskModule {
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "task_manager.db"
	}
	return &TaskModule{dbPath: dbPath}
}

// Name returns the module name.
func (m *TaskModule) Name() string {
	return "task"
}

// Dependencies returns the modules task depends on.
func (m *TaskModule) Dependencies() []string {
	return []string{"friends", "ml", "audit"}
}

// SetDependencyServiceContainer receives dependency service containers.
func (m *TaskModule) SetDependencyServiceContainer(dep string, container mono.ServiceContainer) {
	switch dep {
	case "friends":
		m.friends = friends.NewFriendsAdapter(container)
	case "ml":
		m.ml = ml.NewMLAdapter(container)
	case "audit":
		m.recorder = audit.NewAuditAdapter(container)
	}
}

// SetEventBus receives the event bus for publishing task events.
func (m *TaskModule) SetEventBus(bus mono.EventBus) {
	m.eventBus = bus
}

// EmitEvents declares the events this module publishes.
func (m *TaskModule) EmitEvents() []mono.BaseEventDefinition {
	return []mono.BaseEventDefinition{
		events.TaskCreatedV1.ToBase(),
		events.TaskStatusUpdatedV1.ToBase(),
		events.TaskSoftDeletedV1.ToBase(),
		events.SubtasksGeneratedV1.ToBase(),
	}
}

// RegisterServices registers the task request-reply services.
func (m *TaskModule) RegisterServices(container mono.ServiceContainer) error {
	services := map[string]error{
		"create":            helper.RegisterTypedRequestReplyService(container, "create", json.Unmarshal, json.Marshal, m.createTask),
		"get":               helper.RegisterTypedRequestReplyService(container, "get", json.Unmarshal, json.Marshal, m.getTask),
		"list":              helper.RegisterTypedRequestReplyService(container, "list", json.Unmarshal, json.Marshal, m.listTasks),
		"update":            helper.RegisterTypedRequestReplyService(container, "update", json.Unmarshal, json.Marshal, m.updateTask),
		"delete":            helper.RegisterTypedRequestReplyService(container, "delete", json.Unmarshal, json.Marshal, m.deleteTask),
		"create-subtask":    helper.RegisterTypedRequestReplyService(container, "create-subtask", json.Unmarshal, json.Marshal, m.createSubTask),
		"list-subtasks":     helper.RegisterTypedRequestReplyService(container, "list-subtasks", json.Unmarshal, json.Marshal, m.listSubTasks),
		"update-subtask":    helper.RegisterTypedRequestReplyService(container, "update-subtask", json.Unmarshal, json.Marshal, m.updateSubTask),
		"assign-worker":     helper.RegisterTypedRequestReplyService(container, "assign-worker", json.Unmarshal, json.Marshal, m.assignWorker),
		"delete-subtask":    helper.RegisterTypedRequestReplyService(container, "delete-subtask", json.Unmarshal, json.Marshal, m.deleteSubTask),
		"generate-subtasks": helper.RegisterTypedRequestReplyService(container, "generate-subtasks", json.Unmarshal, json.Marshal, m.generateSubtasks),
		"friend-activity":   helper.RegisterTypedRequestReplyService(container, "friend-activity", json.Unmarshal, json.Marshal, m.friendActivity),
	}
	for name, err := range services {
		if err != nil {
			return fmt.Errorf("failed to register %s service: %w", name, err)
		}
	}

	log.Printf("[task] Registered services: services.task.{create,get,list,update,delete,create-subtask,list-subtasks,update-subtask,assign-worker,delete-subtask,generate-subtasks,friend-activity}")
	return nil
}

// createTask handles the create service request.
func (m *TaskModule) createTask(ctx context.Context, req CreateTaskRequest, _ *mono.Msg) (TaskResponse, error) {
	resp, err := m.service.Create(ctx, &req)
	if err != nil {
		return TaskResponse{}, err
	}
	return *resp, nil
}

// getTask handles the get service request.
func (m *TaskModule) getTask(ctx context.Context, req GetTaskRequest, _ *mono.Msg) (TaskResponse, error) {
	resp, err := m.service.Get(ctx, req.UserID, req.TaskID)
	if err != nil {
		return TaskResponse{}, err
	}
	return *resp, nil
}

// listTasks handles the list service request.
func (m *TaskModule) listTasks(ctx context.Context, req ListTasksRequest, _ *mono.Msg) (ListTasksResponse, error) {
	resp, err := m.service.List(ctx, &req)
	if err != nil {
		return ListTasksResponse{}, err
	}
	return *resp, nil
}

// updateTask handles the update service request.
func (m *TaskModule) updateTask(ctx context.Context, req UpdateTaskRequest, _ *mono.Msg) (TaskResponse, error) {
	resp, err := m.service.Update(ctx, &req)
	if err != nil {
		return TaskResponse{}, err
	}
	return *resp, nil
}

// deleteTask handles the delete service request.
func (m *TaskModule) deleteTask(ctx context.Context, req DeleteTaskRequest, _ *mono.Msg) (DeleteTaskResponse, error) {
	if err := m.service.Delete(ctx, req.UserID, req.TaskID); err != nil {
		return DeleteTaskResponse{}, err
	}
	return DeleteTaskResponse{Deleted: true}, nil
}

// createSubTask handles the create-subtask service request.
func (m *TaskModule) createSubTask(ctx context.Context, req CreateSubTaskRequest, _ *mono.Msg) (SubTaskResponse, error) {
	resp, err := m.service.CreateSubTask(ctx, &req)
	if err != nil {
		return SubTaskResponse{}, err
	}
	return *resp, nil
}

// listSubTasks handles the list-subtasks service request.
func (m *TaskModule) listSubTasks(ctx context.Context, req ListSubTasksRequest, _ *mono.Msg) (ListSubTasksResponse, error) {
	resp, err := m.service.ListSubTasks(ctx, req.UserID, req.TaskID)
	if err != nil {
		return ListSubTasksResponse{}, err
	}
	return *resp, nil
}

// updateSubTask handles the update-subtask service request.
func (m *TaskModule) updateSubTask(ctx context.Context, req UpdateSubTaskRequest, _ *mono.Msg) (SubTaskResponse, error) {
	resp, err := m.service.UpdateSubTask(ctx, &req)
	if err != nil {
		return SubTaskResponse{}, err
	}
	return *resp, nil
}

// assignWorker handles the assign-worker service request.
func (m *TaskModule) assignWorker(ctx context.Context, req AssignWorkerRequest, _ *mono.Msg) (AssignWorkerResponse, error) {
	if err := m.service.AssignWorker(ctx, &req); err != nil {
		return AssignWorkerResponse{}, err
	}
	return AssignWorkerResponse{Assigned: true}, nil
}

// deleteSubTask handles the delete-subtask service request.
func (m *TaskModule) deleteSubTask(ctx context.Context, req DeleteSubTaskRequest, _ *mono.Msg) (DeleteSubTaskResponse, error) {
	if err := m.service.DeleteSubTask(ctx, &req); err != nil {
		return DeleteSubTaskResponse{}, err
	}
	return DeleteSubTaskResponse{Deleted: true}, nil
}

// generateSubtasks handles the generate-subtasks service request.
func (m *TaskModule) generateSubtasks(ctx context.Context, req GenerateSubtasksRequest, _ *mono.Msg) (GenerateSubtasksResponse, error) {
	resp, err := m.service.GenerateSubtasks(ctx, &req)
	if err != nil {
		return GenerateSubtasksResponse{}, err
	}
	return *resp, nil
}

// friendActivity handles the friend-activity service request.
func (m *TaskModule) friendActivity(ctx context.Context, req FriendActivityRequest, _ *mono.Msg) (FriendActivityResponse, error) {
	resp, err := m.service.FriendActivity(ctx, req.UserID, req.FriendID)
	if err != nil {
		return FriendActivityResponse{}, err
	}
	return *resp, nil
}

// Start opens the database, migrates the task schema, and wires the service.
func (m *TaskModule) Start(_ context.Context) error {
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

	if err := m.db.AutoMigrate(
		&domain.Task{}, &domain.SubTask{}, &domain.Collaborator{}, &domain.SubTaskWorker{},
	); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	m.service = NewTaskService(NewRepository(m.db), m.friends, m.ml, m.recorder, m.eventBus)

	log.Println("[task] Module started")
	return nil
}

// Stop drains in-flight audit writes and closes the database connection.
func (m *TaskModule) Stop(_ context.Context) error {
	if d, ok := m.recorder.(interface{ Drain() }); ok {
		d.Drain()
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

	log.Println("[task] Module stopped")
	return nil
}

// Health performs a health check on the task module.
func (m *TaskModule) Health(ctx context.Context) mono.HealthStatus {
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
