package task

import (
	"time"

	domain "github.com/example/task-manager/domain/task"
)

// CreateTaskRequest is the request for creating a task.
type CreateTaskRequest struct {
	OwnerID       string     `json:"owner_id"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Priority      string     `json:"priority"`
	DueDate       *time.Time `json:"due_date,omitempty"`
	Collaborators []string   `json:"collaborators,omitempty"`
}

// GetTaskRequest is the request for fetching a single task.
type GetTaskRequest struct {
	UserID string `json:"user_id"`
	TaskID string `json:"task_id"`
}

// ListTasksRequest is the request for listing tasks visible to a user.
type ListTasksRequest struct {
	UserID   string `json:"user_id"`
	Status   string `json:"status,omitempty"`
	Priority string `json:"priority,omitempty"`
	Search   string `json:"search,omitempty"`
	Page     int    `json:"page"`
	Limit    int    `json:"limit"`
	Sort     string `json:"sort,omitempty"`
}

// UpdateTaskRequest is the request for a partial task update. Nil fields are
// left untouched; a non-nil Status is always treated as a requested workflow
// transition.
type UpdateTaskRequest struct {
	UserID      string     `json:"user_id"`
	TaskID      string     `json:"task_id"`
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	Priority    *string    `json:"priority,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Status      *string    `json:"status,omitempty"`
}

// DeleteTaskRequest is the request for soft-deleting a task.
type DeleteTaskRequest struct {
	UserID string `json:"user_id"`
	TaskID string `json:"task_id"`
}

// DeleteTaskResponse is the response for soft-deleting a task.
type DeleteTaskResponse struct {
	Deleted bool `json:"deleted"`
}

// SubTaskResponse is a single subtask in a task representation.
type SubTaskResponse struct {
	ID          string     `json:"id"`
	TaskID      string     `json:"task_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Order       int        `json:"order"`
	Workers     []string   `json:"workers,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// TaskResponse is the full task representation returned to callers.
type TaskResponse struct {
	ID            string            `json:"id"`
	OwnerID       string            `json:"owner_id"`
	Title         string            `json:"title"`
	Description   string            `json:"description"`
	Priority      string            `json:"priority"`
	Status        string            `json:"status"`
	DueDate       *time.Time        `json:"due_date,omitempty"`
	StartedAt     *time.Time        `json:"started_at,omitempty"`
	CompletedAt   *time.Time        `json:"completed_at,omitempty"`
	ReopenedAt    *time.Time        `json:"reopened_at,omitempty"`
	Collaborators []string          `json:"collaborators,omitempty"`
	Subtasks      []SubTaskResponse `json:"subtasks,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// ListTasksResponse is the paginated task list.
type ListTasksResponse struct {
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	TotalTasks int64          `json:"total_tasks"`
	TotalPages int            `json:"total_pages"`
	Tasks      []TaskResponse `json:"tasks"`
}

// CreateSubTaskRequest is the request for adding a subtask to a task.
type CreateSubTaskRequest struct {
	UserID      string `json:"user_id"`
	TaskID      string `json:"task_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Order       int    `json:"order"`
}

// ListSubTasksRequest is the request for listing a task's subtasks.
type ListSubTasksRequest struct {
	UserID string `json:"user_id"`
	TaskID string `json:"task_id"`
}

// ListSubTasksResponse is the ordered subtask list.
type ListSubTasksResponse struct {
	Subtasks []SubTaskResponse `json:"subtasks"`
}

// UpdateSubTaskRequest is the request for a partial subtask update.
type UpdateSubTaskRequest struct {
	UserID      string  `json:"user_id"`
	TaskID      string  `json:"task_id"`
	SubTaskID   string  `json:"subtask_id"`
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty"`
	Order       *int    `json:"order,omitempty"`
}

// AssignWorkerRequest is the request for assigning a worker to a subtask.
type AssignWorkerRequest struct {
	UserID    string `json:"user_id"`
	TaskID    string `json:"task_id"`
	SubTaskID string `json:"subtask_id"`
	WorkerID  string `json:"worker_id"`
}

// AssignWorkerResponse is the response for assigning a worker.
type AssignWorkerResponse struct {
	Assigned bool `json:"assigned"`
}

// DeleteSubTaskRequest is the request for deleting a subtask.
type DeleteSubTaskRequest struct {
	UserID    string `json:"user_id"`
	TaskID    string `json:"task_id"`
	SubTaskID string `json:"subtask_id"`
}

// DeleteSubTaskResponse is the response for deleting a subtask.
type DeleteSubTaskResponse struct {
	Deleted bool `json:"deleted"`
}

// GenerateSubtasksRequest is the request for generating subtasks from the
// task's description.
type GenerateSubtasksRequest struct {
	UserID string `json:"user_id"`
	TaskID string `json:"task_id"`
}

// GenerateSubtasksResponse carries the persisted generated subtasks.
type GenerateSubtasksResponse struct {
	Count    int               `json:"count"`
	Subtasks []SubTaskResponse `json:"subtasks"`
}

// FriendActivityRequest is the request for a friend's recent task activity.
type FriendActivityRequest struct {
	UserID   string `json:"user_id"`
	FriendID string `json:"friend_id"`
}

// FriendActivityResponse groups a friend's recently completed and upcoming tasks.
type FriendActivityResponse struct {
	RecentCompleted []TaskResponse `json:"recent_completed"`
	Upcoming        []TaskResponse `json:"upcoming"`
}

func toSubTaskResponse(st *domain.SubTask, workers []string) SubTaskResponse {
	return SubTaskResponse{
		ID:          st.ID,
		TaskID:      st.TaskID,
		Title:       st.Title,
		Description: st.Description,
		Status:      string(st.Status),
		Order:       st.SortOrder,
		Workers:     workers,
		CompletedAt: st.CompletedAt,
		CreatedAt:   st.CreatedAt,
	}
}

func toTaskResponse(t *domain.Task) TaskResponse {
	return TaskResponse{
		ID:          t.ID,
		OwnerID:     t.OwnerID,
		Title:       t.Title,
		Description: t.Description,
		Priority:    string(t.Priority),
		Status:      string(t.Status),
		DueDate:     t.DueDate,
		StartedAt:   t.StartedAt,
		CompletedAt: t.CompletedAt,
		ReopenedAt:  t.ReopenedAt,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}
