// Package audit defines the append-only audit log entry and its action taxonomy.
package audit

import (
	"fmt"
	"time"
)

// Entry is an immutable audit record. Entries are only ever inserted; nothing
// in the system updates or deletes them.
type Entry struct {
	ID        string    `gorm:"primarykey;size:36" json:"id"`
	UserID    string    `gorm:"size:36;not null;index" json:"user_id"`
	TaskID    string    `gorm:"size:36;not null;index" json:"task_id"`
	Action    string    `gorm:"size:120;not null;index" json:"action"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the table name for the Entry entity.
func (Entry) TableName() string {
	return "audit_logs"
}

// Action labels recorded by the recorder. The audit query surface filters on
// exact strings, so these must stay stable between releases.
const (
	ActionTaskCreated       = "TASK_CREATED"
	ActionTaskFieldsUpdated = "TASK_FIELDS_UPDATED"
	ActionTaskSoftDeleted   = "TASK_SOFT_DELETED"
	ActionSubtasksGenerated = "SUBTASKS_GENERATED"
)

// StatusUpdatedAction returns the label for a status change with the crossed
// edge embedded, e.g. "TASK_STATUS_UPDATED: Pending → In Progress".
func StatusUpdatedAction(from, to string) string {
	return fmt.Sprintf("TASK_STATUS_UPDATED: %s → %s", from, to)
}
