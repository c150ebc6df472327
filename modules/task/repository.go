package task

import (
	"errors"
	"fmt"
	"strings"
	"time"

	domain "github.com/example/task-manager/domain/task"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ListFilter narrows and pages a task list query. Zero values mean no filter.
type ListFilter struct {
	UserID   string
	Status   domain.Status
	Priority domain.Priority
	Search   string
	Offset   int
	Limit    int
	SortDesc bool
}

// Repository handles task persistence using GORM. Soft-deleted tasks are
// invisible to every read path.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new task Repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a task together with its collaborator rows and any
// pre-generated subtasks in one transaction.
func (r *Repository) Create(task *domain.Task, collaborators []string, subtasks []domain.SubTask) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(task).Error; err != nil {
			return err
		}
		for _, userID := range collaborators {
			row := domain.Collaborator{TaskID: task.ID, UserID: userID, CreatedAt: time.Now()}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error; err != nil {
				return err
			}
		}
		if len(subtasks) > 0 {
			if err := tx.Create(&subtasks).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

// FindByID retrieves a non-deleted task by ID.
func (r *Repository) FindByID(taskID string) (*domain.Task, error) {
	var task domain.Task
	err := r.db.First(&task, "id = ? AND is_deleted = ?", taskID, false).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return &task, nil
}

// IsCollaborator reports whether userID is a collaborator on taskID.
func (r *Repository) IsCollaborator(taskID, userID string) (bool, error) {
	var count int64
	err := r.db.Model(&domain.Collaborator{}).
		Where("task_id = ? AND user_id = ?", taskID, userID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check collaborator: %w", err)
	}
	return count > 0, nil
}

// Collaborators returns the collaborator user IDs for a task.
func (r *Repository) Collaborators(taskID string) ([]string, error) {
	var ids []string
	err := r.db.Model(&domain.Collaborator{}).
		Where("task_id = ?", taskID).
		Pluck("user_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load collaborators: %w", err)
	}
	return ids, nil
}

// List returns the non-deleted tasks the user owns or collaborates on,
// filtered and paginated.
func (r *Repository) List(f ListFilter) ([]domain.Task, int64, error) {
	query := r.db.Model(&domain.Task{}).
		Where("is_deleted = ?", false).
		Where("owner_id = ? OR id IN (?)", f.UserID,
			r.db.Model(&domain.Collaborator{}).Select("task_id").Where("user_id = ?", f.UserID))

	if f.Status != "" {
		query = query.Where("status = ?", f.Status)
	}
	if f.Priority != "" {
		query = query.Where("priority = ?", f.Priority)
	}
	if f.Search != "" {
		pattern := "%" + strings.ToLower(f.Search) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count tasks: %w", err)
	}

	order := "created_at ASC"
	if f.SortDesc {
		order = "created_at DESC"
	}

	var tasks []domain.Task
	err := query.Order(order).Offset(f.Offset).Limit(f.Limit).Find(&tasks).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, total, nil
}

// UpdateFields applies a partial update to a task in a single statement.
func (r *Repository) UpdateFields(taskID string, fields map[string]any) error {
	err := r.db.Model(&domain.Task{}).
		Where("id = ? AND is_deleted = ?", taskID, false).
		Updates(fields).Error
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	return nil
}

// SoftDelete marks a task deleted without removing the row.
func (r *Repository) SoftDelete(taskID string, now time.Time) error {
	return r.UpdateFields(taskID, map[string]any{
		"is_deleted": true,
		"deleted_at": now,
		"updated_at": now,
	})
}

// SubTasks returns a task's subtasks in sort order.
func (r *Repository) SubTasks(taskID string) ([]domain.SubTask, error) {
	var subtasks []domain.SubTask
	err := r.db.
		Where("task_id = ?", taskID).
		Order("sort_order ASC, created_at ASC").
		Find(&subtasks).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list subtasks: %w", err)
	}
	return subtasks, nil
}

// CreateSubTask persists a subtask.
func (r *Repository) CreateSubTask(st *domain.SubTask) error {
	if err := r.db.Create(st).Error; err != nil {
		return fmt.Errorf("failed to create subtask: %w", err)
	}
	return nil
}

// FindSubTask retrieves a subtask scoped to its parent task.
func (r *Repository) FindSubTask(taskID, subTaskID string) (*domain.SubTask, error) {
	var st domain.SubTask
	err := r.db.First(&st, "id = ? AND task_id = ?", subTaskID, taskID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrSubTaskNotFound
		}
		return nil, fmt.Errorf("failed to find subtask: %w", err)
	}
	return &st, nil
}

// UpdateSubTaskFields applies a partial update to a subtask.
func (r *Repository) UpdateSubTaskFields(subTaskID string, fields map[string]any) error {
	err := r.db.Model(&domain.SubTask{}).
		Where("id = ?", subTaskID).
		Updates(fields).Error
	if err != nil {
		return fmt.Errorf("failed to update subtask: %w", err)
	}
	return nil
}

// DeleteSubTask removes a subtask and its worker assignments.
func (r *Repository) DeleteSubTask(subTaskID string) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("sub_task_id = ?", subTaskID).Delete(&domain.SubTaskWorker{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", subTaskID).Delete(&domain.SubTask{}).Error
	})
	if err != nil {
		return fmt.Errorf("failed to delete subtask: %w", err)
	}
	return nil
}

// AssignWorker links a worker to a subtask. Re-assigning is a no-op.
func (r *Repository) AssignWorker(subTaskID, userID string) error {
	row := domain.SubTaskWorker{SubTaskID: subTaskID, UserID: userID, CreatedAt: time.Now()}
	if err := r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to assign worker: %w", err)
	}
	return nil
}

// IsWorker reports whether userID is assigned to the subtask.
func (r *Repository) IsWorker(subTaskID, userID string) (bool, error) {
	var count int64
	err := r.db.Model(&domain.SubTaskWorker{}).
		Where("sub_task_id = ? AND user_id = ?", subTaskID, userID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check worker: %w", err)
	}
	return count > 0, nil
}

// Workers returns the worker user IDs assigned to a subtask.
func (r *Repository) Workers(subTaskID string) ([]string, error) {
	var ids []string
	err := r.db.Model(&domain.SubTaskWorker{}).
		Where("sub_task_id = ?", subTaskID).
		Pluck("user_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load workers: %w", err)
	}
	return ids, nil
}

// RecentCompleted returns a user's most recently completed non-deleted tasks.
func (r *Repository) RecentCompleted(userID string, limit int) ([]domain.Task, error) {
	var tasks []domain.Task
	err := r.db.
		Where("owner_id = ? AND is_deleted = ? AND status = ?", userID, false, domain.StatusCompleted).
		Order("completed_at DESC").
		Limit(limit).
		Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query completed tasks: %w", err)
	}
	return tasks, nil
}

// Upcoming returns a user's not-yet-completed tasks with a due date at or
// after now, nearest first.
func (r *Repository) Upcoming(userID string, now time.Time, limit int) ([]domain.Task, error) {
	var tasks []domain.Task
	err := r.db.
		Where("owner_id = ? AND is_deleted = ? AND status != ? AND due_date >= ?",
			userID, false, domain.StatusCompleted, now).
		Order("due_date ASC").
		Limit(limit).
		Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query upcoming tasks: %w", err)
	}
	return tasks, nil
}
