package analytics

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// AnalyticsPort defines the interface other modules use to access analytics.
type AnalyticsPort interface {
	Summary(ctx context.Context, userID string) (*SummaryResponse, error)
	Dashboard(ctx context.Context, userID string) (*DashboardResponse, error)
}

// analyticsAdapter wraps ServiceContainer for cross-module communication.
type analyticsAdapter struct {
	container mono.ServiceContainer
}

// NewAnalyticsAdapter creates an adapter for the analytics module's services.
func NewAnalyticsAdapter(container mono.ServiceContainer) AnalyticsPort {
	if container == nil {
		panic("analytics adapter requires non-nil ServiceContainer")
	}
	return &analyticsAdapter{container: container}
}

// Summary fetches a user's summary via the summary service.
func (a *analyticsAdapter) Summary(ctx context.Context, userID string) (*SummaryResponse, error) {
	req := SummaryRequest{UserID: userID}
	var resp SummaryResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "summary", json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return nil, fmt.Errorf("summary service call failed: %w", err)
	}
	return &resp, nil
}

// Dashboard fetches a user's dashboard via the dashboard service.
func (a *analyticsAdapter) Dashboard(ctx context.Context, userID string) (*DashboardResponse, error) {
	req := DashboardRequest{UserID: userID}
	var resp DashboardResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "dashboard", json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return nil, fmt.Errorf("dashboard service call failed: %w", err)
	}
	return &resp, nil
}
