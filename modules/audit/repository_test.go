package audit

import (
	"context"
	"testing"
	"time"

	domain "github.com/example/task-manager/domain/audit"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&domain.Entry{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func insertEntry(t *testing.T, repo *Repository, userID, taskID, action string, at time.Time) {
	t.Helper()

	err := repo.Insert(&domain.Entry{
		ID:        uuid.New().String(),
		UserID:    userID,
		TaskID:    taskID,
		Action:    action,
		CreatedAt: at,
	})
	if err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
}

func TestRepository_QueryNewestFirst(t *testing.T) {
	repo := NewRepository(setupTestDB(t))

	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	insertEntry(t, repo, "user-1", "task-1", domain.ActionTaskCreated, base)
	insertEntry(t, repo, "user-1", "task-1", domain.StatusUpdatedAction("Pending", "In Progress"), base.Add(time.Minute))
	insertEntry(t, repo, "user-1", "task-1", domain.ActionTaskSoftDeleted, base.Add(2*time.Minute))

	entries, total, err := repo.Query("user-1", "", 0, 10)
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if total != 3 {
		t.Errorf("total = %d, want 3", total)
	}
	if len(entries) != 3 {
		t.Fatalf("len(entries) = %d, want 3", len(entries))
	}
	if entries[0].Action != domain.ActionTaskSoftDeleted {
		t.Errorf("first entry = %q, want newest (%q)", entries[0].Action, domain.ActionTaskSoftDeleted)
	}
	if entries[2].Action != domain.ActionTaskCreated {
		t.Errorf("last entry = %q, want oldest (%q)", entries[2].Action, domain.ActionTaskCreated)
	}
}

func TestRepository_QueryFilters(t *testing.T) {
	repo := NewRepository(setupTestDB(t))

	now := time.Now()
	insertEntry(t, repo, "user-1", "task-1", domain.ActionTaskCreated, now)
	insertEntry(t, repo, "user-1", "task-2", domain.ActionTaskCreated, now)
	insertEntry(t, repo, "user-1", "task-1", domain.ActionTaskFieldsUpdated, now)
	insertEntry(t, repo, "user-2", "task-3", domain.ActionTaskCreated, now)

	t.Run("by exact action", func(t *testing.T) {
		entries, total, err := repo.Query("user-1", domain.ActionTaskCreated, 0, 10)
		if err != nil {
			t.Fatalf("Query() error = %v", err)
		}
		if total != 2 || len(entries) != 2 {
			t.Errorf("got total=%d len=%d, want 2/2", total, len(entries))
		}
	})

	t.Run("scoped to user", func(t *testing.T) {
		entries, total, err := repo.Query("user-2", "", 0, 10)
		if err != nil {
			t.Fatalf("Query() error = %v", err)
		}
		if total != 1 || len(entries) != 1 {
			t.Errorf("got total=%d len=%d, want 1/1", total, len(entries))
		}
	})

	t.Run("pagination", func(t *testing.T) {
		entries, total, err := repo.Query("user-1", "", 2, 2)
		if err != nil {
			t.Fatalf("Query() error = %v", err)
		}
		if total != 3 {
			t.Errorf("total = %d, want 3", total)
		}
		if len(entries) != 1 {
			t.Errorf("len(entries) = %d, want 1", len(entries))
		}
	})
}

func TestQueryEntriesHandler_Defaults(t *testing.T) {
	m := &AuditModule{repo: NewRepository(setupTestDB(t))}

	insertEntry(t, m.repo, "user-1", "task-1", domain.ActionTaskCreated, time.Now())

	resp, err := m.queryEntries(context.Background(), QueryRequest{UserID: "user-1"}, nil)
	if err != nil {
		t.Fatalf("queryEntries() error = %v", err)
	}
	if resp.Page != 1 || resp.Limit != 10 {
		t.Errorf("defaults = page %d limit %d, want 1/10", resp.Page, resp.Limit)
	}
	if resp.TotalLogs != 1 || resp.TotalPages != 1 {
		t.Errorf("totals = %d logs %d pages, want 1/1", resp.TotalLogs, resp.TotalPages)
	}
}

func TestRecordEntryHandler(t *testing.T) {
	m := &AuditModule{repo: NewRepository(setupTestDB(t))}

	resp, err := m.recordEntry(context.Background(), RecordRequest{
		UserID: "user-1",
		TaskID: "task-1",
		Action: domain.ActionTaskCreated,
	}, nil)
	if err != nil {
		t.Fatalf("recordEntry() error = %v", err)
	}
	if resp.ID == "" {
		t.Error("expected generated entry ID")
	}

	entries, total, err := m.repo.Query("user-1", domain.ActionTaskCreated, 0, 10)
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if total != 1 {
		t.Fatalf("total = %d, want 1", total)
	}
	if entries[0].CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be stamped")
	}
}
