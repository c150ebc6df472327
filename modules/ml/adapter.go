package ml

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// MLPort defines the interface for subtask generation.
type MLPort interface {
	GenerateSubtasks(ctx context.Context, description string) ([]string, error)
}

// mlAdapter wraps ServiceContainer for cross-module communication.
type mlAdapter struct {
	container mono.ServiceContainer
}

// NewMLAdapter creates an adapter for the ml module's services.
func NewMLAdapter(container mono.ServiceContainer) MLPort {
	if container == nil {
		panic("ml adapter requires non-nil ServiceContainer")
	}
	return &mlAdapter{container: container}
}

// GenerateSubtasks generates subtask titles via the generate service.
func (a *mlAdapter) GenerateSubtasks(ctx context.Context, description string) ([]string, error) {
	req := GenerateRequest{Description: description}
	var resp GenerateResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "generate", json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return nil, fmt.Errorf("generate service call failed: %w", err)
	}
	return resp.Subtasks, nil
}
