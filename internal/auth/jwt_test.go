package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/nkhatri/splitkaro/internal/models"
)

func TestJWTRoundTrip(t *testing.T) {
	manager := NewJWTManager("test-secret-key-for-unit-tests", time.Hour)
	user := &models.User{ID: "u1", Email: "alice@example.com"}

	token, err := manager.Generate(user)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	claims, err := manager.Validate(token)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if claims.UserID != user.ID || claims.Email != user.Email {
		t.Errorf("claims = %s/%s, want %s/%s", claims.UserID, claims.Email, user.ID, user.Email)
	}
}

func TestJWTDefaultTTL(t *testing.T) {
	// A zero lifetime falls back to the default instead of issuing
	// already-expired tokens.
	manager := NewJWTManager("test-secret-key-for-unit-tests", 0)

	token, err := manager.Generate(&models.User{ID: "u1", Email: "alice@example.com"})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	claims, err := manager.Validate(token)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl < DefaultTokenTTL-time.Minute || ttl > DefaultTokenTTL {
		t.Errorf("token lifetime = %v, want about %v", ttl, DefaultTokenTTL)
	}
}

func TestJWTValidateRejects(t *testing.T) {
	manager := NewJWTManager("test-secret-key-for-unit-tests", time.Hour)
	user := &models.User{ID: "u1", Email: "alice@example.com"}

	otherSecret, err := NewJWTManager("a-different-secret-entirely", time.Hour).Generate(user)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	wrongIssuer := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "someone-else",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	wrongIssuerToken, err := wrongIssuer.SignedString([]byte("test-secret-key-for-unit-tests"))
	if err != nil {
		t.Fatalf("SignedString failed: %v", err)
	}

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-token"},
		{"wrong secret", otherSecret},
		{"wrong issuer", wrongIssuerToken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := manager.Validate(tt.token); !errors.Is(err, ErrInvalidToken) {
				t.Errorf("Validate = %v, want ErrInvalidToken", err)
			}
		})
	}
}
