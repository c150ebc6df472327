package task

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// TaskPort defines the interface other modules use to access tasks.
type TaskPort interface {
	Create(ctx context.Context, req *CreateTaskRequest) (*TaskResponse, error)
	Get(ctx context.Context, userID, taskID string) (*TaskResponse, error)
	List(ctx context.Context, req *ListTasksRequest) (*ListTasksResponse, error)
	Update(ctx context.Context, req *UpdateTaskRequest) (*TaskResponse, error)
	Delete(ctx context.Context, userID, taskID string) error
	CreateSubTask(ctx context.Context, req *CreateSubTaskRequest) (*SubTaskResponse, error)
	ListSubTasks(ctx context.Context, userID, taskID string) (*ListSubTasksResponse, error)
	UpdateSubTask(ctx context.Context, req *UpdateSubTaskRequest) (*SubTaskResponse, error)
	AssignWorker(ctx context.Context, req *AssignWorkerRequest) error
	DeleteSubTask(ctx context.Context, req *DeleteSubTaskRequest) error
	GenerateSubtasks(ctx context.Context, req *GenerateSubtasksRequest) (*GenerateSubtasksResponse, error)
	FriendActivity(ctx context.Context, userID, friendID string) (*FriendActivityResponse, error)
}

// taskAdapter wraps ServiceContainer for cross-module communication.
type taskAdapter struct {
	container mono.ServiceContainer
}

// NewTaskAdapter creates an adapter for the task module's services.
func NewTaskAdapter(container mono.ServiceContainer) TaskPort {
	if container == nil {
		panic("task adapter requires non-nil ServiceContainer")
	}
	return &taskAdapter{container: container}
}

func call[Req, Resp any](ctx context.Context, container mono.ServiceContainer, name string, req *Req) (*Resp, error) {
	var resp Resp
	if err := helper.CallRequestReplyService(
		ctx, container, name, json.Marshal, json.Unmarshal, req, &resp,
	); err != nil {
		return nil, fmt.Errorf("%s service call failed: %w", name, err)
	}
	return &resp, nil
}

// Create creates a task via the create service.
func (a *taskAdapter) Create(ctx context.Context, req *CreateTaskRequest) (*TaskResponse, error) {
	return call[CreateTaskRequest, TaskResponse](ctx, a.container, "create", req)
}

// Get fetches a task via the get service.
func (a *taskAdapter) Get(ctx context.Context, userID, taskID string) (*TaskResponse, error) {
	req := GetTaskRequest{UserID: userID, TaskID: taskID}
	return call[GetTaskRequest, TaskResponse](ctx, a.container, "get", &req)
}

// List lists tasks via the list service.
func (a *taskAdapter) List(ctx context.Context, req *ListTasksRequest) (*ListTasksResponse, error) {
	return call[ListTasksRequest, ListTasksResponse](ctx, a.container, "list", req)
}

// Update applies a partial update via the update service.
func (a *taskAdapter) Update(ctx context.Context, req *UpdateTaskRequest) (*TaskResponse, error) {
	return call[UpdateTaskRequest, TaskResponse](ctx, a.container, "update", req)
}

// Delete soft-deletes a task via the delete service.
func (a *taskAdapter) Delete(ctx context.Context, userID, taskID string) error {
	req := DeleteTaskRequest{UserID: userID, TaskID: taskID}
	_, err := call[DeleteTaskRequest, DeleteTaskResponse](ctx, a.container, "delete", &req)
	return err
}

// CreateSubTask adds a subtask via the create-subtask service.
func (a *taskAdapter) CreateSubTask(ctx context.Context, req *CreateSubTaskRequest) (*SubTaskResponse, error) {
	return call[CreateSubTaskRequest, SubTaskResponse](ctx, a.container, "create-subtask", req)
}

// ListSubTasks lists subtasks via the list-subtasks service.
func (a *taskAdapter) ListSubTasks(ctx context.Context, userID, taskID string) (*ListSubTasksResponse, error) {
	req := ListSubTasksRequest{UserID: userID, TaskID: taskID}
	return call[ListSubTasksRequest, ListSubTasksResponse](ctx, a.container, "list-subtasks", &req)
}

// UpdateSubTask edits a subtask via the update-subtask service.
func (a *taskAdapter) UpdateSubTask(ctx context.Context, req *UpdateSubTaskRequest) (*SubTaskResponse, error) {
	return call[UpdateSubTaskRequest, SubTaskResponse](ctx, a.container, "update-subtask", req)
}

// AssignWorker assigns a worker via the assign-worker service.
func (a *taskAdapter) AssignWorker(ctx context.Context, req *AssignWorkerRequest) error {
	_, err := call[AssignWorkerRequest, AssignWorkerResponse](ctx, a.container, "assign-worker", req)
	return err
}

// DeleteSubTask removes a subtask via the delete-subtask service.
func (a *taskAdapter) DeleteSubTask(ctx context.Context, req *DeleteSubTaskRequest) error {
	_, err := call[DeleteSubTaskRequest, DeleteSubTaskResponse](ctx, a.container, "delete-subtask", req)
	return err
}

// GenerateSubtasks regenerates subtasks via the generate-subtasks service.
func (a *taskAdapter) GenerateSubtasks(ctx context.Context, req *GenerateSubtasksRequest) (*GenerateSubtasksResponse, error) {
	return call[GenerateSubtasksRequest, GenerateSubtasksResponse](ctx, a.container, "generate-subtasks", req)
}

// FriendActivity fetches a friend's activity via the friend-activity service.
func (a *taskAdapter) FriendActivity(ctx context.Context, userID, friendID string) (*FriendActivityResponse, error) {
	req := FriendActivityRequest{UserID: userID, FriendID: friendID}
	return call[FriendActivityRequest, FriendActivityResponse](ctx, a.container, "friend-activity", &req)
}
