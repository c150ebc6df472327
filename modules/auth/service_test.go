package auth

import (
	"context"
	"errors"
	"testing"

	domain "github.com/example/task-manager/domain/user"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupService(t *testing.T) *AuthService {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&domain.User{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return NewAuthService(NewUserRepository(db), NewPasswordHasher(), NewJWTManager(testJWTConfig()))
}

func TestAuthService_Register(t *testing.T) {
	s := setupService(t)
	ctx := context.Background()

	t.Run("valid registration", func(t *testing.T) {
		user, err := s.Register(ctx, "Alice", "alice@example.com", "password123")
		if err != nil {
			t.Fatalf("Register() error = %v", err)
		}
		if user.ID == "" {
			t.Error("expected generated user ID")
		}
		if user.PasswordHash == "password123" {
			t.Error("password stored in plaintext")
		}
	})

	t.Run("duplicate email", func(t *testing.T) {
		if _, err := s.Register(ctx, "Alice Again", "alice@example.com", "password123"); !errors.Is(err, ErrUserExists) {
			t.Errorf("Register() error = %v, want ErrUserExists", err)
		}
	})

	tests := []struct {
		name     string
		userName string
		email    string
		password string
		wantErr  error
	}{
		{"missing name", "", "bob@example.com", "password123", ErrNameRequired},
		{"bad email", "Bob", "not-an-email", "password123", ErrInvalidEmail},
		{"short password", "Bob", "bob@example.com", "short", ErrWeakPassword},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := s.Register(ctx, tt.userName, tt.email, tt.password); !errors.Is(err, tt.wantErr) {
				t.Errorf("Register() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestAuthService_LoginAndValidate(t *testing.T) {
	s := setupService(t)
	ctx := context.Background()

	user, err := s.Register(ctx, "Alice", "alice@example.com", "password123")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	pair, err := s.Login(ctx, "alice@example.com", "password123")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if pair.TokenType != "Bearer" {
		t.Errorf("TokenType = %q, want Bearer", pair.TokenType)
	}

	claims, err := s.ValidateToken(ctx, pair.AccessToken)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}
	if claims.UserID != user.ID {
		t.Errorf("claims.UserID = %q, want %q", claims.UserID, user.ID)
	}

	t.Run("wrong password", func(t *testing.T) {
		if _, err := s.Login(ctx, "alice@example.com", "wrong-password"); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("Login() error = %v, want ErrInvalidCredentials", err)
		}
	})

	t.Run("unknown email", func(t *testing.T) {
		if _, err := s.Login(ctx, "nobody@example.com", "password123"); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("Login() error = %v, want ErrInvalidCredentials", err)
		}
	})

	t.Run("refresh rotates tokens", func(t *testing.T) {
		rotated, err := s.RefreshTokens(ctx, pair.RefreshToken)
		if err != nil {
			t.Fatalf("RefreshTokens() error = %v", err)
		}
		if _, err := s.ValidateToken(ctx, rotated.AccessToken); err != nil {
			t.Errorf("rotated access token invalid: %v", err)
		}
	})
}
