// Package auth provides account registration, login, and JWT validation.
package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	domain "github.com/example/task-manager/domain/user"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// AuthModule provides authentication services.
type AuthModule struct {
	db      *gorm.DB
	service *AuthService
	dbPath  string
}

// Compile-time interface checks.
var _ mono.Module = (*AuthModule)(nil)
var _ mono.ServiceProviderModule = (*AuthModule)(nil)
var _ mono.HealthCheckableModule = (*AuthModule)(nil)

// NewModule creates a new AuthModule.
func NewModule() *AuthModule {
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "task_manager.db"
	}
	return &AuthModule{dbPath: dbPath}
}

// Name returns the module name.
func (m *AuthModule) Name() string {
	return "auth"
}

// RegisterServices registers the auth request-reply services.
func (m *AuthModule) RegisterServices(container mono.ServiceContainer) error {
	services := map[string]error{
		"register":       helper.RegisterTypedRequestReplyService(container, "register", json.Unmarshal, json.Marshal, m.register),
		"login":          helper.RegisterTypedRequestReplyService(container, "login", json.Unmarshal, json.Marshal, m.login),
		"refresh":        helper.RegisterTypedRequestReplyService(container, "refresh", json.Unmarshal, json.Marshal, m.refresh),
		"validate-token": helper.RegisterTypedRequestReplyService(container, "validate-token", json.Unmarshal, json.Marshal, m.validateToken),
		"get-user":       helper.RegisterTypedRequestReplyService(container, "get-user", json.Unmarshal, json.Marshal, m.getUser),
	}
	for name, err := range services {
		if err != nil {
			return fmt.Errorf("failed to register %s service: %w", name, err)
		}
	}

	log.Printf("[auth] Registered services: services.auth.{register,login,refresh,validate-token,get-user}")
	return nil
}

// register handles the register service request.
func (m *AuthModule) register(ctx context.Context, req RegisterRequest, _ *mono.Msg) (RegisterResponse, error) {
	user, err := m.service.Register(ctx, req.Name, req.Email, req.Password)
	if err != nil {
		return RegisterResponse{}, err
	}
	return RegisterResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}, nil
}

// login handles the login service request.
func (m *AuthModule) login(ctx context.Context, req LoginRequest, _ *mono.Msg) (LoginResponse, error) {
	pair, err := m.service.Login(ctx, req.Email, req.Password)
	if err != nil {
		return LoginResponse{}, err
	}
	return LoginResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    pair.ExpiresIn,
		TokenType:    pair.TokenType,
	}, nil
}

// refresh handles the refresh service request.
func (m *AuthModule) refresh(ctx context.Context, req RefreshRequest, _ *mono.Msg) (LoginResponse, error) {
	pair, err := m.service.RefreshTokens(ctx, req.RefreshToken)
	if err != nil {
		return LoginResponse{}, err
	}
	return LoginResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    pair.ExpiresIn,
		TokenType:    pair.TokenType,
	}, nil
}

// validateToken handles the validate-token service request. Validation
// failures are reported in-band so callers can distinguish an invalid token
// from a transport failure.
func (m *AuthModule) validateToken(ctx context.Context, req ValidateTokenRequest, _ *mono.Msg) (ValidateTokenResponse, error) {
	claims, err := m.service.ValidateToken(ctx, req.Token)
	if err != nil {
		return ValidateTokenResponse{Valid: false, Error: err.Error()}, nil
	}
	return ValidateTokenResponse{
		Valid:  true,
		UserID: claims.UserID,
		Email:  claims.Email,
	}, nil
}

// getUser handles the get-user service request.
func (m *AuthModule) getUser(ctx context.Context, req GetUserRequest, _ *mono.Msg) (GetUserResponse, error) {
	user, err := m.service.GetUser(ctx, req.UserID)
	if err != nil {
		return GetUserResponse{}, err
	}
	return GetUserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}, nil
}

// Start opens the database, migrates the user schema, and wires the service.
func (m *AuthModule) Start(_ context.Context) error {
	logLevel := logger.Silent
	if os.Getenv("DB_DEBUG") == "true" {
		logLevel = logger.Info
	}

	db, err := gorm.Open(sqlite.Open(m.dbPath), &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	m.db = db

	if err := db.AutoMigrate(&domain.User{}); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	repo := NewUserRepository(db)
	m.service = NewAuthService(repo, NewPasswordHasher(), NewJWTManager(JWTConfigFromEnv()))

	log.Println("[auth] Module started")
	return nil
}

// Stop closes the database connection.
func (m *AuthModule) Stop(_ context.Context) error {
	if m.db == nil {
		return nil
	}
	sqlDB, err := m.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	log.Println("[auth] Module stopped")
	return nil
}

// Health performs a health check on the auth module.
func (m *AuthModule) Health(ctx context.Context) mono.HealthStatus {
	if m.db == nil {
		return mono.HealthStatus{Healthy: false, Message: "database not initialized"}
	}
	sqlDB, err := m.db.DB()
	if err != nil {
		return mono.HealthStatus{Healthy: false, Message: fmt.Sprintf("failed to get sql.DB: %v", err)}
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return mono.HealthStatus{Healthy: false, Message: fmt.Sprintf("database ping failed: %v", err)}
	}
	return mono.HealthStatus{Healthy: true, Message: "operational"}
}
