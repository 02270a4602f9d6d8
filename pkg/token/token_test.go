package token

import (
	"testing"
	"time"
)

func TestIssueAndParse(t *testing.T) {
	m := NewManager("test-secret", time.Minute)

	tok, err := m.Issue("user-123")
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}
	if tok == "" {
		t.Fatal("expected non-empty token")
	}

	userID, err := m.Parse(tok)
	if err != nil {
		t.Fatalf("failed to parse token: %v", err)
	}
	if userID != "user-123" {
		t.Errorf("expected user-123, got %s", userID)
	}
}

func TestParseExpiredToken(t *testing.T) {
	m := NewManager("test-secret", -time.Minute)

	tok, err := m.Issue("user-123")
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	if _, err := m.Parse(tok); err == nil {
		t.Fatal("expected error for expired token, got nil")
	}
}

func TestParseWrongSecret(t *testing.T) {
	issuer := NewManager("secret-a", time.Minute)
	verifier := NewManager("secret-b", time.Minute)

	tok, err := issuer.Issue("user-123")
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	if _, err := verifier.Parse(tok); err == nil {
		t.Fatal("expected error for wrong secret, got nil")
	}
}

func TestParseGarbage(t *testing.T) {
	m := NewManager("test-secret", time.Minute)

	if _, err := m.Parse("not-a-token"); err == nil {
		t.Fatal("expected error for garbage token, got nil")
	}
}

func TestDefaultTTLApplied(t *testing.T) {
	m := NewManager("test-secret", 0)
	if m.ttl != DefaultTTL {
		t.Errorf("expected default TTL %v, got %v", DefaultTTL, m.ttl)
	}
}
