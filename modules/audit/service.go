package audit

import (
	"context"
	"time"

	domain "github.com/example/task-manager/domain/audit"
	"github.com/go-monolith/mono"
	"github.com/google/uuid"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

// recordEntry handles the record service request with a synchronous insert.
// Fire-and-forget semantics live on the caller side (see RecorderAdapter):
// the insert error returned here is logged and swallowed there, never
// propagated into the triggering business operation.
func (m *AuditModule) recordEntry(_ context.Context, req RecordRequest, _ *mono.Msg) (RecordResponse, error) {
	entry := &domain.Entry{
		ID:        uuid.New().String(),
		UserID:    req.UserID,
		TaskID:    req.TaskID,
		Action:    req.Action,
		CreatedAt: time.Now(),
	}
	if err := m.repo.Insert(entry); err != nil {
		return RecordResponse{}, err
	}
	return RecordResponse{ID: entry.ID}, nil
}

// queryEntries handles the query service request: a user's entries
// newest-first, optionally filtered by exact action string.
func (m *AuditModule) queryEntries(_ context.Context, req QueryRequest, _ *mono.Msg) (QueryResponse, error) {
	page := req.Page
	if page < 1 {
		page = defaultPage
	}
	limit := req.Limit
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	entries, total, err := m.repo.Query(req.UserID, req.Action, (page-1)*limit, limit)
	if err != nil {
		return QueryResponse{}, err
	}

	logs := make([]EntryResponse, 0, len(entries))
	for _, e := range entries {
		logs = append(logs, EntryResponse{
			ID:        e.ID,
			UserID:    e.UserID,
			TaskID:    e.TaskID,
			Action:    e.Action,
			CreatedAt: e.CreatedAt,
		})
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return QueryResponse{
		Page:       page,
		Limit:      limit,
		TotalLogs:  total,
		TotalPages: totalPages,
		Logs:       logs,
	}, nil
}
