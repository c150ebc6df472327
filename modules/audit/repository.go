package audit

import (
	"fmt"

	domain "github.com/example/task-manager/domain/audit"
	"gorm.io/gorm"
)

// Repository handles audit log persistence using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new audit Repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Insert appends an entry to the log. Entries are never updated or deleted.
func (r *Repository) Insert(entry *domain.Entry) error {
	if err := r.db.Create(entry).Error; err != nil {
		return fmt.Errorf("failed to insert audit entry: %w", err)
	}
	return nil
}

// Query returns a user's entries newest-first, optionally filtered by exact
// action string, with offset/limit pagination. The second return value is the
// total number of entries matching the filter.
func (r *Repository) Query(userID, action string, offset, limit int) ([]domain.Entry, int64, error) {
	q := r.db.Model(&domain.Entry{}).Where("user_id = ?", userID)
	if action != "" {
		q = q.Where("action = ?", action)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count audit entries: %w", err)
	}

	var entries []domain.Entry
	if err := q.Order("created_at DESC").Offset(offset).Limit(limit).Find(&entries).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to query audit entries: %w", err)
	}
	return entries, total, nil
}
