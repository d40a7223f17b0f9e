package util

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestJWTManagerIssueAndParse(t *testing.T) {
	manager := NewJWTManager("top-secret", time.Minute)

	userID := uuid.New()
	username := "chef"
	token, expiresAt, err := manager.Issue(userID, "chef@example.com", &username)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token to be non-empty")
	}
	if !expiresAt.After(time.Now()) {
		t.Fatalf("expected expiry in the future")
	}

	claims, err := manager.Parse(token)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if claims.UserID != userID {
		t.Fatalf("expected user id %s, got %s", userID, claims.UserID)
	}
	if claims.Username == nil || *claims.Username != username {
		t.Fatalf("expected username claim to be set")
	}
	if claims.ID == "" {
		t.Fatalf("expected token id to be set")
	}
}

func TestJWTManagerParseExpiredToken(t *testing.T) {
	manager := NewJWTManager("secret", time.Minute)
	issued := time.Now().Add(-2 * time.Minute)
	manager.now = func() time.Time { return issued }

	token, _, err := manager.Issue(uuid.New(), "user@example.com", nil)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	manager.now = time.Now
	if _, err := manager.Parse(token); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestJWTManagerRejectsForeignSecret(t *testing.T) {
	issuer := NewJWTManager("one", time.Minute)
	verifier := NewJWTManager("two", time.Minute)

	token, _, err := issuer.Issue(uuid.New(), "user@example.com", nil)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	if _, err := verifier.Parse(token); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
	if _, err := verifier.Parse("not-a-token"); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for garbage, got %v", err)
	}
}
