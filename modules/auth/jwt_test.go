package auth

import (
	"testing"
	"time"
)

func testJWTConfig() JWTConfig {
	return JWTConfig{
		SecretKey:            "test-secret",
		AccessTokenDuration:  time.Minute,
		RefreshTokenDuration: time.Hour,
		Issuer:               "task-manager-test",
	}
}

func TestJWTManager_GenerateAndValidate(t *testing.T) {
	m := NewJWTManager(testJWTConfig())

	token, err := m.GenerateAccessToken("user-1", "alice@example.com")
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}

	claims, err := m.ValidateAccessToken(token)
	if err != nil {
		t.Fatalf("ValidateAccessToken() error = %v", err)
	}
	if claims.UserID != "user-1" {
		t.Errorf("UserID = %q, want user-1", claims.UserID)
	}
	if claims.Email != "alice@example.com" {
		t.Errorf("Email = %q, want alice@example.com", claims.Email)
	}
}

func TestJWTManager_RejectsWrongTokenType(t *testing.T) {
	m := NewJWTManager(testJWTConfig())

	refresh, err := m.GenerateRefreshToken("user-1", "alice@example.com")
	if err != nil {
		t.Fatalf("GenerateRefreshToken() error = %v", err)
	}

	if _, err := m.ValidateAccessToken(refresh); err != ErrInvalidToken {
		t.Errorf("ValidateAccessToken(refresh token) error = %v, want ErrInvalidToken", err)
	}

	access, err := m.GenerateAccessToken("user-1", "alice@example.com")
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}
	if _, err := m.ValidateRefreshToken(access); err != ErrInvalidToken {
		t.Errorf("ValidateRefreshToken(access token) error = %v, want ErrInvalidToken", err)
	}
}

func TestJWTManager_RejectsExpiredToken(t *testing.T) {
	cfg := testJWTConfig()
	cfg.AccessTokenDuration = -time.Minute
	m := NewJWTManager(cfg)

	token, err := m.GenerateAccessToken("user-1", "alice@example.com")
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}

	if _, err := m.ValidateAccessToken(token); err != ErrExpiredToken {
		t.Errorf("ValidateAccessToken(expired) error = %v, want ErrExpiredToken", err)
	}
}

func TestJWTManager_RejectsForeignSignature(t *testing.T) {
	m := NewJWTManager(testJWTConfig())

	other := testJWTConfig()
	other.SecretKey = "different-secret"
	token, err := NewJWTManager(other).GenerateAccessToken("user-1", "alice@example.com")
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}

	if _, err := m.ValidateAccessToken(token); err != ErrInvalidToken {
		t.Errorf("ValidateAccessToken(foreign signature) error = %v, want ErrInvalidToken", err)
	}
}
