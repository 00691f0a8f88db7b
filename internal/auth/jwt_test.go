package auth_test

import (
	"testing"
	"time"

	"github.com/jobtrackhq/jobtrack/internal/auth"
)

func TestGenerateAndVerifyToken(t *testing.T) {
	m := auth.NewManager("test-secret-key", time.Hour)

	raw, err := m.GenerateToken("user-123", "Sam Doe")

	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	claims, err := m.VerifyToken(raw)

	if err != nil {
		t.Fatalf("verify token: %v", err)
	}

	if claims.UserID != "user-123" {
		t.Fatalf("got userId %q, want %q", claims.UserID, "user-123")
	}

	if claims.Name != "Sam Doe" {
		t.Fatalf("got name %q, want %q", claims.Name, "Sam Doe")
	}
}

func TestVerifyToken_WrongSecret(t *testing.T) {
	issuer := auth.NewManager("secret-one", time.Hour)
	verifier := auth.NewManager("secret-two", time.Hour)

	raw, err := issuer.GenerateToken("user-123", "Sam Doe")

	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	if _, err := verifier.VerifyToken(raw); err == nil {
		t.Fatalf("expected verification to fail with a different secret")
	}
}

func TestVerifyToken_Expired(t *testing.T) {
	m := auth.NewManager("test-secret-key", -time.Minute)

	raw, err := m.GenerateToken("user-123", "Sam Doe")

	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	if _, err := m.VerifyToken(raw); err == nil {
		t.Fatalf("expected expired token to be rejected")
	}
}

func TestVerifyToken_Malformed(t *testing.T) {
	m := auth.NewManager("test-secret-key", time.Hour)

	for _, raw := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := m.VerifyToken(raw); err == nil {
			t.Fatalf("expected malformed token %q to be rejected", raw)
		}
	}
}
