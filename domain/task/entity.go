package task

import "time"

// Status represents the lifecycle state of a task.
type Status string

const (
	StatusPending    Status = "Pending"
	StatusInProgress Status = "In Progress"
	StatusCompleted  Status = "Completed"
)

// Priority represents the urgency of a task.
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// Task is the core domain entity. The owner never changes after creation;
// collaborators are tracked separately and never gain ownership.
type Task struct {
	ID          string     `gorm:"primarykey;size:36" json:"id"`
	OwnerID     string     `gorm:"size:36;not null;index" json:"owner_id"`
	Title       string     `gorm:"size:200;not null" json:"title"`
	Description string     `gorm:"size:2000" json:"description"`
	Priority    Priority   `gorm:"size:10;not null;default:Medium" json:"priority"`
	Status      Status     `gorm:"size:20;not null;index" json:"status"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	ReopenedAt  *time.Time `json:"reopened_at,omitempty"`
	IsDeleted   bool       `gorm:"not null;default:false;index" json:"-"`
	DeletedAt   *time.Time `json:"-"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// TableName returns the table name for the Task entity.
func (Task) TableName() string {
	return "tasks"
}

// SubTask belongs to exactly one parent task.
type SubTask struct {
	ID          string     `gorm:"primarykey;size:36" json:"id"`
	TaskID      string     `gorm:"size:36;not null;index" json:"task_id"`
	Title       string     `gorm:"size:200;not null" json:"title"`
	Description string     `gorm:"size:2000" json:"description"`
	Status      Status     `gorm:"size:20;not null" json:"status"`
	SortOrder   int        `gorm:"not null;default:0" json:"order"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// TableName returns the table name for the SubTask entity.
func (SubTask) TableName() string {
	return "subtasks"
}

// Collaborator links a user to a task with read and limited-write access.
type Collaborator struct {
	TaskID    string    `gorm:"primarykey;size:36" json:"task_id"`
	UserID    string    `gorm:"primarykey;size:36" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the table name for the Collaborator entity.
func (Collaborator) TableName() string {
	return "task_collaborators"
}

// SubTaskWorker links a user to a subtask as an assigned worker.
type SubTaskWorker struct {
	SubTaskID string    `gorm:"primarykey;size:36" json:"subtask_id"`
	UserID    string    `gorm:"primarykey;size:36" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the table name for the SubTaskWorker entity.
func (SubTaskWorker) TableName() string {
	return "subtask_workers"
}
