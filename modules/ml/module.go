// Package ml wraps the external AI subtask-generation service behind a
// request-reply service and a typed port. The upstream is a black box over
// HTTP; its failures never propagate past the callers that chose to use it.
package ml

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

const (
	defaultBaseURL = "http://localhost:8000"
	defaultTimeout = 5 * time.Second
)

// MLModule provides subtask generation via the external ML service.
type MLModule struct {
	client *Client
}

// Compile-time interface checks.
var _ mono.Module = (*MLModule)(nil)
var _ mono.ServiceProviderModule = (*MLModule)(nil)

// NewModule creates a new MLModule configured from the environment.
// ML_BASE_URL sets the service address, ML_TIMEOUT_SECONDS the client timeout.
func NewModule() *MLModule {
	baseURL := os.Getenv("ML_BASE_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	timeout := defaultTimeout
	if v := os.Getenv("ML_TIMEOUT_SECONDS"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			timeout = time.Duration(secs) * time.Second
		}
	}

	return &MLModule{client: NewClient(baseURL, timeout)}
}

// Name returns the module name.
func (m *MLModule) Name() string {
	return "ml"
}

// RegisterServices registers the generate request-reply service.
func (m *MLModule) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, "generate", json.Unmarshal, json.Marshal, m.generate,
	); err != nil {
		return fmt.Errorf("failed to register generate service: %w", err)
	}

	log.Printf("[ml] Registered services: services.ml.generate")
	return nil
}

// generate handles the generate service request.
func (m *MLModule) generate(ctx context.Context, req GenerateRequest, _ *mono.Msg) (GenerateResponse, error) {
	titles, err := m.client.GenerateSubtasks(ctx, req.Description)
	if err != nil {
		return GenerateResponse{}, err
	}
	return GenerateResponse{Count: len(titles), Subtasks: titles}, nil
}

// Start logs the configured upstream.
func (m *MLModule) Start(_ context.Context) error {
	log.Printf("[ml] Module started (upstream: %s)", m.client.baseURL)
	return nil
}

// Stop is a no-op; the module holds no long-lived resources.
func (m *MLModule) Stop(_ context.Context) error {
	log.Println("[ml] Module stopped")
	return nil
}
