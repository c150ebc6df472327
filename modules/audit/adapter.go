package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// Recorder is the port business modules use to append audit entries.
// Record never blocks the caller's success path and never reports failure:
// the task mutation is the source of truth, the audit trail is best-effort.
type Recorder interface {
	Record(ctx context.Context, userID, taskID, action string)
}

// AuditPort exposes the audit read path to driving adapters.
type AuditPort interface {
	Query(ctx context.Context, req *QueryRequest) (*QueryResponse, error)
}

const recordTimeout = 5 * time.Second

// auditAdapter wraps ServiceContainer for cross-module communication.
// It implements both Recorder and AuditPort.
type auditAdapter struct {
	container mono.ServiceContainer
	pending   sync.WaitGroup
}

// NewAuditAdapter creates an adapter for the audit module's services.
// container is the audit module's ServiceContainer received via
// SetDependencyServiceContainer.
func NewAuditAdapter(container mono.ServiceContainer) *auditAdapter {
	if container == nil {
		panic("audit adapter requires non-nil ServiceContainer")
	}
	return &auditAdapter{container: container}
}

// Record dispatches an audit write on a detached goroutine. The caller's
// context is deliberately not used: the write outlives the request that
// triggered it, and its failure is logged here, never surfaced.
func (a *auditAdapter) Record(_ context.Context, userID, taskID, action string) {
	a.pending.Add(1)
	go func() {
		defer a.pending.Done()
		defer func() {
			if r := recover(); r != nil {
				log.Printf("[audit] Record panic for task %s: %v", taskID, r)
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
		defer cancel()

		req := RecordRequest{UserID: userID, TaskID: taskID, Action: action}
		var resp RecordResponse
		if err := helper.CallRequestReplyService(
			ctx, a.container, "record", json.Marshal, json.Unmarshal, &req, &resp,
		); err != nil {
			log.Printf("[audit] Failed to record %q for task %s: %v", action, taskID, err)
		}
	}()
}

// Drain blocks until every dispatched audit write has finished. Callers use
// it during shutdown so in-flight entries are not lost.
func (a *auditAdapter) Drain() {
	a.pending.Wait()
}

// Query reads a user's audit log via the query service.
func (a *auditAdapter) Query(ctx context.Context, req *QueryRequest) (*QueryResponse, error) {
	var resp QueryResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "query", json.Marshal, json.Unmarshal, req, &resp,
	); err != nil {
		return nil, fmt.Errorf("query service call failed: %w", err)
	}
	return &resp, nil
}
