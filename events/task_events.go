package events

import (
	"time"

	"github.com/go-monolith/mono/pkg/helper"
)

// TaskCreatedEvent is emitted when a new task is created.
type TaskCreatedEvent struct {
	TaskID    string    `json:"task_id"`
	Title     string    `json:"title"`
	OwnerID   string    `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TaskCreatedV1 is the typed event definition for task creation.
// Subject: events.task.v1.task-created
var TaskCreatedV1 = helper.EventDefinition[TaskCreatedEvent](
	"task", "TaskCreated", "v1",
)

// TaskStatusUpdatedEvent is emitted when a task crosses a workflow edge.
type TaskStatusUpdatedEvent struct {
	TaskID    string    `json:"task_id"`
	OwnerID   string    `json:"owner_id"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TaskStatusUpdatedV1 is the typed event definition for status changes.
// Subject: events.task.v1.task-status-updated
var TaskStatusUpdatedV1 = helper.EventDefinition[TaskStatusUpdatedEvent](
	"task", "TaskStatusUpdated", "v1",
)

// TaskSoftDeletedEvent is emitted when a task is soft-deleted.
type TaskSoftDeletedEvent struct {
	TaskID    string    `json:"task_id"`
	OwnerID   string    `json:"owner_id"`
	DeletedAt time.Time `json:"deleted_at"`
}

// TaskSoftDeletedV1 is the typed event definition for soft deletion.
// Subject: events.task.v1.task-soft-deleted
var TaskSoftDeletedV1 = helper.EventDefinition[TaskSoftDeletedEvent](
	"task", "TaskSoftDeleted", "v1",
)

// SubtasksGeneratedEvent is emitted when subtasks were generated for a task.
type SubtasksGeneratedEvent struct {
	TaskID      string    `json:"task_id"`
	OwnerID     string    `json:"owner_id"`
	Count       int       `json:"count"`
	GeneratedAt time.Time `json:"generated_at"`
}

// SubtasksGeneratedV1 is the typed event definition for subtask generation.
// Subject: events.task.v1.subtasks-generated
var SubtasksGeneratedV1 = helper.EventDefinition[SubtasksGeneratedEvent](
	"task", "SubtasksGenerated", "v1",
)
