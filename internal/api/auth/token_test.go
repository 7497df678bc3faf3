package auth

// NOTE: Tests cannot use t.Parallel() due to shared package state.

import (
	"errors"
	"strings"
	"testing"

	"github.com/dvera/barrioliga/internal/config"
)

func setupTokenTest(t *testing.T) {
	t.Helper()

	cfg := &config.Config{}
	cfg.App.SecretKey = "test-secret-key"
	Init(cfg, nil)

	t.Cleanup(func() {
		Init(nil, nil)
	})
}

func TestIssueAndParseToken(t *testing.T) {
	setupTokenTest(t)

	token, err := IssueToken("admin")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	if !strings.Contains(token, ".") {
		t.Fatalf("expected payload.signature shape, got %q", token)
	}

	claims, err := ParseToken(token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.Username != "admin" {
		t.Errorf("username = %q, want admin", claims.Username)
	}
}

func TestParseToken_TamperedSignature(t *testing.T) {
	setupTokenTest(t)

	token, err := IssueToken("admin")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	tampered := token[:len(token)-2] + "xx"
	if _, err := ParseToken(tampered); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestParseToken_TamperedPayload(t *testing.T) {
	setupTokenTest(t)

	token, err := IssueToken("admin")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	parts := strings.SplitN(token, ".", 2)
	tampered := "x" + parts[0] + "." + parts[1]
	if _, err := ParseToken(tampered); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestParseToken_Malformed(t *testing.T) {
	setupTokenTest(t)

	if _, err := ParseToken("no-dot-here"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestIssueToken_RequiresConfig(t *testing.T) {
	Init(nil, nil)

	if _, err := IssueToken("admin"); err == nil {
		t.Fatal("expected error without configuration")
	}
}
