package task

import (
	"context"
	"log"
	"math"
	"time"

	auditdomain "github.com/example/task-manager/domain/audit"
	domain "github.com/example/task-manager/domain/task"
	"github.com/example/task-manager/events"
	"github.com/example/task-manager/modules/audit"
	"github.com/go-monolith/mono"
	"github.com/google/uuid"
)

const friendActivityLimit = 5

// CollaboratorResolver is the slice of the friends module the task service
// needs: accepted-friend filtering for collaborators and friendship checks.
type CollaboratorResolver interface {
	ResolveCollaborators(ctx context.Context, ownerID string, candidates []string) ([]string, error)
	IsFriend(ctx context.Context, userID, friendID string) (bool, error)
}

// SubtaskGenerator is the slice of the ml module the task service needs.
type SubtaskGenerator interface {
	GenerateSubtasks(ctx context.Context, description string) ([]string, error)
}

// TaskService orchestrates the task lifecycle: ownership rules, the status
// workflow, timestamp stamping, audit recording, and event publication.
type TaskService struct {
	repo     *Repository
	friends  CollaboratorResolver
	ml       SubtaskGenerator
	recorder audit.Recorder
	eventBus mono.EventBus
}

// NewTaskService creates a new TaskService.
func NewTaskService(repo *Repository, friends CollaboratorResolver, ml SubtaskGenerator, recorder audit.Recorder, bus mono.EventBus) *TaskService {
	return &TaskService{repo: repo, friends: friends, ml: ml, recorder: recorder, eventBus: bus}
}

// Create persists a new Pending task owned by the requester. Requested
// collaborators are filtered to accepted friends; subtask generation runs
// when a description is present and its failure never fails the creation.
func (s *TaskService) Create(ctx context.Context, req *CreateTaskRequest) (*TaskResponse, error) {
	if req.Title == "" {
		return nil, domain.ErrTitleRequired
	}

	priority := domain.Priority(req.Priority)
	if priority == "" {
		priority = domain.PriorityMedium
	}

	var collaborators []string
	if len(req.Collaborators) > 0 {
		resolved, err := s.friends.ResolveCollaborators(ctx, req.OwnerID, req.Collaborators)
		if err != nil {
			log.Printf("[task] Failed to resolve collaborators for new task: %v", err)
		} else {
			collaborators = resolved
		}
	}

	now := time.Now()
	t := &domain.Task{
		ID:          uuid.New().String(),
		OwnerID:     req.OwnerID,
		Title:       req.Title,
		Description: req.Description,
		Priority:    priority,
		Status:      domain.StatusPending,
		DueDate:     req.DueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	var subtasks []domain.SubTask
	if req.Description != "" {
		titles, err := s.ml.GenerateSubtasks(ctx, req.Description)
		if err != nil {
			log.Printf("[task] Subtask generation failed for new task: %v", err)
		} else {
			subtasks = buildSubtasks(t.ID, titles, 0, now)
		}
	}

	if err := s.repo.Create(t, collaborators, subtasks); err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, req.OwnerID, t.ID, auditdomain.ActionTaskCreated)
	if len(subtasks) > 0 {
		s.recorder.Record(ctx, req.OwnerID, t.ID, auditdomain.ActionSubtasksGenerated)
	}

	s.publishCreated(t)
	if len(subtasks) > 0 {
		s.publishSubtasksGenerated(t, len(subtasks))
	}

	resp := toTaskResponse(t)
	resp.Collaborators = collaborators
	for i := range subtasks {
		resp.Subtasks = append(resp.Subtasks, toSubTaskResponse(&subtasks[i], nil))
	}
	return &resp, nil
}

// Get returns a task visible to the requester: its owner or a collaborator.
// Anyone else gets NotFound, not Forbidden, so task IDs leak nothing.
func (s *TaskService) Get(ctx context.Context, userID, taskID string) (*TaskResponse, error) {
	t, err := s.fetchVisible(taskID, userID)
	if err != nil {
		return nil, err
	}

	resp := toTaskResponse(t)
	if resp.Collaborators, err = s.repo.Collaborators(taskID); err != nil {
		return nil, err
	}

	subtasks, err := s.repo.SubTasks(taskID)
	if err != nil {
		return nil, err
	}
	for i := range subtasks {
		workers, err := s.repo.Workers(subtasks[i].ID)
		if err != nil {
			return nil, err
		}
		resp.Subtasks = append(resp.Subtasks, toSubTaskResponse(&subtasks[i], workers))
	}
	return &resp, nil
}

// List returns the tasks the requester owns or collaborates on.
func (s *TaskService) List(_ context.Context, req *ListTasksRequest) (*ListTasksResponse, error) {
	page := req.Page
	if page < 1 {
		page = 1
	}
	limit := req.Limit
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	tasks, total, err := s.repo.List(ListFilter{
		UserID:   req.UserID,
		Status:   domain.Status(req.Status),
		Priority: domain.Priority(req.Priority),
		Search:   req.Search,
		Offset:   (page - 1) * limit,
		Limit:    limit,
		SortDesc: req.Sort != "asc",
	})
	if err != nil {
		return nil, err
	}

	resp := &ListTasksResponse{
		Page:       page,
		Limit:      limit,
		TotalTasks: total,
		TotalPages: int(math.Ceil(float64(total) / float64(limit))),
		Tasks:      make([]TaskResponse, 0, len(tasks)),
	}
	for i := range tasks {
		resp.Tasks = append(resp.Tasks, toTaskResponse(&tasks[i]))
	}
	return resp, nil
}

// Update applies a partial edit to an owned task. A requested status must
// cross a valid workflow edge; the matching lifecycle timestamp is stamped
// and everything is persisted as one atomic update.
func (s *TaskService) Update(ctx context.Context, req *UpdateTaskRequest) (*TaskResponse, error) {
	t, err := s.fetchOwned(req.TaskID, req.UserID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	fields := map[string]any{}

	if req.Title != nil {
		if *req.Title == "" {
			return nil, domain.ErrTitleRequired
		}
		fields["title"] = *req.Title
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Priority != nil {
		fields["priority"] = domain.Priority(*req.Priority)
	}
	if req.DueDate != nil {
		fields["due_date"] = *req.DueDate
	}

	var statusChanged bool
	from := t.Status
	if req.Status != nil {
		next := domain.Status(*req.Status)
		if !domain.IsValidTransition(t.Status, next) {
			return nil, &domain.InvalidTransitionError{From: t.Status, To: next}
		}
		stamps := domain.StampsFor(t.Status, next, now)
		fields["status"] = next
		if stamps.StartedAt != nil {
			fields["started_at"] = *stamps.StartedAt
		}
		if stamps.CompletedAt != nil {
			fields["completed_at"] = *stamps.CompletedAt
		}
		if stamps.ReopenedAt != nil {
			fields["reopened_at"] = *stamps.ReopenedAt
		}
		statusChanged = true
	}

	if len(fields) == 0 {
		resp := toTaskResponse(t)
		return &resp, nil
	}
	fields["updated_at"] = now

	if err := s.repo.UpdateFields(t.ID, fields); err != nil {
		return nil, err
	}

	if statusChanged {
		to := domain.Status(*req.Status)
		s.recorder.Record(ctx, req.UserID, t.ID, auditdomain.StatusUpdatedAction(string(from), string(to)))
		s.publishStatusUpdated(t, from, to, now)
	} else {
		s.recorder.Record(ctx, req.UserID, t.ID, auditdomain.ActionTaskFieldsUpdated)
	}

	updated, err := s.repo.FindByID(t.ID)
	if err != nil {
		return nil, err
	}
	resp := toTaskResponse(updated)
	return &resp, nil
}

// Delete soft-deletes an owned task. The row survives for analytics
// exclusion and the audit trail.
func (s *TaskService) Delete(ctx context.Context, userID, taskID string) error {
	t, err := s.fetchOwned(taskID, userID)
	if err != nil {
		return err
	}

	now := time.Now()
	if err := s.repo.SoftDelete(t.ID, now); err != nil {
		return err
	}

	s.recorder.Record(ctx, userID, t.ID, auditdomain.ActionTaskSoftDeleted)
	s.publishSoftDeleted(t, now)
	return nil
}

// CreateSubTask adds a subtask to an owned task.
func (s *TaskService) CreateSubTask(_ context.Context, req *CreateSubTaskRequest) (*SubTaskResponse, error) {
	if req.Title == "" {
		return nil, domain.ErrTitleRequired
	}
	if _, err := s.fetchOwned(req.TaskID, req.UserID); err != nil {
		return nil, err
	}

	now := time.Now()
	st := &domain.SubTask{
		ID:          uuid.New().String(),
		TaskID:      req.TaskID,
		Title:       req.Title,
		Description: req.Description,
		Status:      domain.StatusPending,
		SortOrder:   req.Order,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.CreateSubTask(st); err != nil {
		return nil, err
	}
	resp := toSubTaskResponse(st, nil)
	return &resp, nil
}

// ListSubTasks returns a task's subtasks in order; visible to the owner and
// collaborators.
func (s *TaskService) ListSubTasks(_ context.Context, userID, taskID string) (*ListSubTasksResponse, error) {
	if _, err := s.fetchVisible(taskID, userID); err != nil {
		return nil, err
	}

	subtasks, err := s.repo.SubTasks(taskID)
	if err != nil {
		return nil, err
	}
	resp := &ListSubTasksResponse{Subtasks: make([]SubTaskResponse, 0, len(subtasks))}
	for i := range subtasks {
		workers, err := s.repo.Workers(subtasks[i].ID)
		if err != nil {
			return nil, err
		}
		resp.Subtasks = append(resp.Subtasks, toSubTaskResponse(&subtasks[i], workers))
	}
	return resp, nil
}

// UpdateSubTask applies a partial edit to a subtask. The task owner and
// assigned workers may edit; moving to Completed stamps completedAt, moving
// anywhere else clears it.
func (s *TaskService) UpdateSubTask(_ context.Context, req *UpdateSubTaskRequest) (*SubTaskResponse, error) {
	t, err := s.fetchVisible(req.TaskID, req.UserID)
	if err != nil {
		return nil, err
	}
	st, err := s.repo.FindSubTask(req.TaskID, req.SubTaskID)
	if err != nil {
		return nil, err
	}

	if t.OwnerID != req.UserID {
		isWorker, err := s.repo.IsWorker(st.ID, req.UserID)
		if err != nil {
			return nil, err
		}
		if !isWorker {
			return nil, domain.ErrForbidden
		}
	}

	now := time.Now()
	fields := map[string]any{}

	if req.Title != nil {
		if *req.Title == "" {
			return nil, domain.ErrTitleRequired
		}
		fields["title"] = *req.Title
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Order != nil {
		fields["sort_order"] = *req.Order
	}
	if req.Status != nil {
		next := domain.Status(*req.Status)
		fields["status"] = next
		if next == domain.StatusCompleted {
			fields["completed_at"] = now
		} else {
			fields["completed_at"] = nil
		}
	}

	if len(fields) > 0 {
		fields["updated_at"] = now
		if err := s.repo.UpdateSubTaskFields(st.ID, fields); err != nil {
			return nil, err
		}
	}

	updated, err := s.repo.FindSubTask(req.TaskID, req.SubTaskID)
	if err != nil {
		return nil, err
	}
	workers, err := s.repo.Workers(updated.ID)
	if err != nil {
		return nil, err
	}
	resp := toSubTaskResponse(updated, workers)
	return &resp, nil
}

// AssignWorker links a user to a subtask; owner-only.
func (s *TaskService) AssignWorker(_ context.Context, req *AssignWorkerRequest) error {
	if _, err := s.fetchOwned(req.TaskID, req.UserID); err != nil {
		return err
	}
	st, err := s.repo.FindSubTask(req.TaskID, req.SubTaskID)
	if err != nil {
		return err
	}
	return s.repo.AssignWorker(st.ID, req.WorkerID)
}

// DeleteSubTask removes a subtask; owner-only.
func (s *TaskService) DeleteSubTask(_ context.Context, req *DeleteSubTaskRequest) error {
	if _, err := s.fetchOwned(req.TaskID, req.UserID); err != nil {
		return err
	}
	st, err := s.repo.FindSubTask(req.TaskID, req.SubTaskID)
	if err != nil {
		return err
	}
	return s.repo.DeleteSubTask(st.ID)
}

// GenerateSubtasks regenerates subtasks from an owned task's description.
// Unlike the create-time path, the caller asked for this explicitly, so an
// upstream failure is surfaced.
func (s *TaskService) GenerateSubtasks(ctx context.Context, req *GenerateSubtasksRequest) (*GenerateSubtasksResponse, error) {
	t, err := s.fetchOwned(req.TaskID, req.UserID)
	if err != nil {
		return nil, err
	}
	if t.Description == "" {
		return nil, domain.ErrDescriptionRequired
	}

	titles, err := s.ml.GenerateSubtasks(ctx, t.Description)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.SubTasks(t.ID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	subtasks := buildSubtasks(t.ID, titles, len(existing), now)
	resp := &GenerateSubtasksResponse{Count: len(subtasks)}
	for i := range subtasks {
		if err := s.repo.CreateSubTask(&subtasks[i]); err != nil {
			return nil, err
		}
		resp.Subtasks = append(resp.Subtasks, toSubTaskResponse(&subtasks[i], nil))
	}

	if len(subtasks) > 0 {
		s.recorder.Record(ctx, req.UserID, t.ID, auditdomain.ActionSubtasksGenerated)
		s.publishSubtasksGenerated(t, len(subtasks))
	}
	return resp, nil
}

// FriendActivity returns a friend's recently completed and upcoming tasks.
// Only accepted friends may look.
func (s *TaskService) FriendActivity(ctx context.Context, userID, friendID string) (*FriendActivityResponse, error) {
	ok, err := s.friends.IsFriend(ctx, userID, friendID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrForbidden
	}

	completed, err := s.repo.RecentCompleted(friendID, friendActivityLimit)
	if err != nil {
		return nil, err
	}
	upcoming, err := s.repo.Upcoming(friendID, time.Now(), friendActivityLimit)
	if err != nil {
		return nil, err
	}

	resp := &FriendActivityResponse{
		RecentCompleted: make([]TaskResponse, 0, len(completed)),
		Upcoming:        make([]TaskResponse, 0, len(upcoming)),
	}
	for i := range completed {
		resp.RecentCompleted = append(resp.RecentCompleted, toTaskResponse(&completed[i]))
	}
	for i := range upcoming {
		resp.Upcoming = append(resp.Upcoming, toTaskResponse(&upcoming[i]))
	}
	return resp, nil
}

// fetchOwned returns the task only for its owner. Everyone else, including
// collaborators, gets NotFound.
func (s *TaskService) fetchOwned(taskID, userID string) (*domain.Task, error) {
	t, err := s.repo.FindByID(taskID)
	if err != nil {
		return nil, err
	}
	if t.OwnerID != userID {
		return nil, domain.ErrTaskNotFound
	}
	return t, nil
}

// fetchVisible returns the task for its owner or a collaborator.
func (s *TaskService) fetchVisible(taskID, userID string) (*domain.Task, error) {
	t, err := s.repo.FindByID(taskID)
	if err != nil {
		return nil, err
	}
	if t.OwnerID == userID {
		return t, nil
	}
	isCollab, err := s.repo.IsCollaborator(taskID, userID)
	if err != nil {
		return nil, err
	}
	if !isCollab {
		return nil, domain.ErrTaskNotFound
	}
	return t, nil
}

func buildSubtasks(taskID string, titles []string, startOrder int, now time.Time) []domain.SubTask {
	subtasks := make([]domain.SubTask, 0, len(titles))
	for i, title := range titles {
		if title == "" {
			continue
		}
		subtasks = append(subtasks, domain.SubTask{
			ID:        uuid.New().String(),
			TaskID:    taskID,
			Title:     title,
			Status:    domain.StatusPending,
			SortOrder: startOrder + i,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}
	return subtasks
}

func (s *TaskService) publishCreated(t *domain.Task) {
	if s.eventBus == nil {
		return
	}
	event := events.TaskCreatedEvent{TaskID: t.ID, Title: t.Title, OwnerID: t.OwnerID, CreatedAt: t.CreatedAt}
	if err := events.TaskCreatedV1.Publish(s.eventBus, event, nil); err != nil {
		log.Printf("[task] Warning: failed to publish TaskCreated event: %v", err)
	}
}

func (s *TaskService) publishStatusUpdated(t *domain.Task, from, to domain.Status, at time.Time) {
	if s.eventBus == nil {
		return
	}
	event := events.TaskStatusUpdatedEvent{TaskID: t.ID, OwnerID: t.OwnerID, From: string(from), To: string(to), UpdatedAt: at}
	if err := events.TaskStatusUpdatedV1.Publish(s.eventBus, event, nil); err != nil {
		log.Printf("[task] Warning: failed to publish TaskStatusUpdated event: %v", err)
	}
}

func (s *TaskService) publishSoftDeleted(t *domain.Task, at time.Time) {
	if s.eventBus == nil {
		return
	}
	event := events.TaskSoftDeletedEvent{TaskID: t.ID, OwnerID: t.OwnerID, DeletedAt: at}
	if err := events.TaskSoftDeletedV1.Publish(s.eventBus, event, nil); err != nil {
		log.Printf("[task] Warning: failed to publish TaskSoftDeleted event: %v", err)
	}
}

func (s *TaskService) publishSubtasksGenerated(t *domain.Task, count int) {
	if s.eventBus == nil {
		return
	}
	event := events.SubtasksGeneratedEvent{TaskID: t.ID, OwnerID: t.OwnerID, Count: count, GeneratedAt: time.Now()}
	if err := events.SubtasksGeneratedV1.Publish(s.eventBus, event, nil); err != nil {
		log.Printf("[task] Warning: failed to publish SubtasksGenerated event: %v", err)
	}
}
