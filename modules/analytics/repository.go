package analytics

import (
	"fmt"

	domain "github.com/example/task-manager/domain/task"
	"gorm.io/gorm"
)

// Repository reads task aggregates for one user. It never writes; the task
// module owns the tables.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new analytics Repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) userTasks(userID string) *gorm.DB {
	return r.db.Model(&domain.Task{}).
		Where("owner_id = ? AND is_deleted = ?", userID, false)
}

// CountTasks returns the user's non-deleted task count.
func (r *Repository) CountTasks(userID string) (int64, error) {
	var count int64
	if err := r.userTasks(userID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count tasks: %w", err)
	}
	return count, nil
}

// StatusCounts returns the user's task count per status.
func (r *Repository) StatusCounts(userID string) (map[domain.Status]int64, error) {
	var rows []struct {
		Status domain.Status
		Count  int64
	}
	err := r.userTasks(userID).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to group tasks by status: %w", err)
	}

	counts := make(map[domain.Status]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

// CompletionPairs returns the started/completed timestamp pairs of tasks
// where both are set. Tasks missing either are excluded entirely.
func (r *Repository) CompletionPairs(userID string) ([]CompletionPair, error) {
	var tasks []domain.Task
	err := r.userTasks(userID).
		Where("started_at IS NOT NULL AND completed_at IS NOT NULL").
		Select("started_at, completed_at").
		Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query completion pairs: %w", err)
	}

	pairs := make([]CompletionPair, 0, len(tasks))
	for _, t := range tasks {
		pairs = append(pairs, CompletionPair{StartedAt: *t.StartedAt, CompletedAt: *t.CompletedAt})
	}
	return pairs, nil
}

// CountEverCompleted returns the number of tasks completed at least once,
// regardless of current status. A reopened task keeps its completed_at, so
// it still counts here while no longer counting in the status breakdown.
func (r *Repository) CountEverCompleted(userID string) (int64, error) {
	var count int64
	err := r.userTasks(userID).
		Where("completed_at IS NOT NULL").
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count completed tasks: %w", err)
	}
	return count, nil
}

// CountReopened returns the number of tasks ever reopened, regardless of
// current status.
func (r *Repository) CountReopened(userID string) (int64, error) {
	var count int64
	err := r.userTasks(userID).
		Where("reopened_at IS NOT NULL").
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count reopened tasks: %w", err)
	}
	return count, nil
}
