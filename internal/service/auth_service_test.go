package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/nkhatri/splitkaro/internal/auth"
)

func newAuthService(t *testing.T) *AuthService {
	t.Helper()
	store := newTestStore(t)
	authenticator := auth.NewPasswordAuthenticator(store)
	jwtManager := auth.NewJWTManager("test-secret-key-for-unit-tests", time.Hour)
	return NewAuthService(authenticator, jwtManager, store)
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	result, err := svc.Register(ctx, "alice@example.com", "Alice", "correct-horse")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if result.User.ID == "" {
		t.Fatal("expected user ID to be generated")
	}
	if result.Token == "" {
		t.Fatal("expected a session token")
	}

	t.Run("login with the registered password", func(t *testing.T) {
		result, err := svc.Login(ctx, "alice@example.com", "correct-horse")
		if err != nil {
			t.Fatalf("Login failed: %v", err)
		}
		if result.User.Email != "alice@example.com" {
			t.Errorf("email = %s, want alice@example.com", result.User.Email)
		}
	})

	t.Run("login with a wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, "alice@example.com", "wrong-password")
		if !errors.Is(err, auth.ErrInvalidCredentials) {
			t.Errorf("err = %v, want ErrInvalidCredentials", err)
		}
	})

	t.Run("duplicate email", func(t *testing.T) {
		_, err := svc.Register(ctx, "alice@example.com", "Alice Again", "another-pass")
		if !errors.Is(err, auth.ErrEmailExists) {
			t.Errorf("err = %v, want ErrEmailExists", err)
		}
	})

	t.Run("weak password", func(t *testing.T) {
		_, err := svc.Register(ctx, "bob@example.com", "Bob", "short")
		if !errors.Is(err, auth.ErrWeakPassword) {
			t.Errorf("err = %v, want ErrWeakPassword", err)
		}
	})
}
