package auth

import (
	"context"
	"encoding/json"
	"fmt"

	domain "github.com/example/task-manager/domain/user"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// AuthPort defines the interface other modules use to access auth.
type AuthPort interface {
	Register(ctx context.Context, req *RegisterRequest) (*RegisterResponse, error)
	Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*LoginResponse, error)
	ValidateToken(ctx context.Context, token string) (*domain.Claims, error)
	GetUser(ctx context.Context, userID string) (*GetUserResponse, error)
}

// authAdapter wraps ServiceContainer for cross-module communication.
type authAdapter struct {
	container mono.ServiceContainer
}

// NewAuthAdapter creates an adapter for the auth module's services.
func NewAuthAdapter(container mono.ServiceContainer) AuthPort {
	if container == nil {
		panic("auth adapter requires non-nil ServiceContainer")
	}
	return &authAdapter{container: container}
}

// Register creates an account via the register service.
func (a *authAdapter) Register(ctx context.Context, req *RegisterRequest) (*RegisterResponse, error) {
	var resp RegisterResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "register", json.Marshal, json.Unmarshal, req, &resp,
	); err != nil {
		return nil, fmt.Errorf("register service call failed: %w", err)
	}
	return &resp, nil
}

// Login authenticates via the login service.
func (a *authAdapter) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	var resp LoginResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "login", json.Marshal, json.Unmarshal, req, &resp,
	); err != nil {
		return nil, fmt.Errorf("login service call failed: %w", err)
	}
	return &resp, nil
}

// Refresh rotates tokens via the refresh service.
func (a *authAdapter) Refresh(ctx context.Context, refreshToken string) (*LoginResponse, error) {
	req := RefreshRequest{RefreshToken: refreshToken}
	var resp LoginResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "refresh", json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return nil, fmt.Errorf("refresh service call failed: %w", err)
	}
	return &resp, nil
}

// ValidateToken validates an access token and returns its claims.
func (a *authAdapter) ValidateToken(ctx context.Context, token string) (*domain.Claims, error) {
	req := ValidateTokenRequest{Token: token}
	var resp ValidateTokenResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "validate-token", json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return nil, fmt.Errorf("validate-token service call failed: %w", err)
	}
	if !resp.Valid {
		return nil, fmt.Errorf("token validation failed: %s", resp.Error)
	}
	return &domain.Claims{UserID: resp.UserID, Email: resp.Email}, nil
}

// GetUser fetches a user by ID via the get-user service.
func (a *authAdapter) GetUser(ctx context.Context, userID string) (*GetUserResponse, error) {
	req := GetUserRequest{UserID: userID}
	var resp GetUserResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "get-user", json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return nil, fmt.Errorf("get-user service call failed: %w", err)
	}
	return &resp, nil
}
