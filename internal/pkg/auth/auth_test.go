package auth

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"
)

func TestHMACStrategyRoundTrip(t *testing.T) {
	strategy := NewHMACStrategy("secret", Options{TTL: time.Hour})

	token, err := strategy.IssueToken("user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	userID, err := strategy.ParseToken(token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if userID != "user-1" {
		t.Errorf("user id = %q, want user-1", userID)
	}
}

func TestHMACStrategyRejectsEmptyUser(t *testing.T) {
	strategy := NewHMACStrategy("secret", Options{TTL: time.Hour})
	if _, err := strategy.IssueToken(""); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected invalid token, got %v", err)
	}
}

func TestHMACStrategyRejectsExpiredToken(t *testing.T) {
	strategy := NewHMACStrategy("secret", Options{TTL: time.Hour})
	payload := fmt.Sprintf("user-1:%d", time.Now().Add(-time.Minute).Unix())
	token := base64.StdEncoding.EncodeToString([]byte(payload + ":" + strategy.sign(payload)))

	if _, err := strategy.ParseToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected invalid token, got %v", err)
	}
}

func TestHMACStrategyRejectsTamperedToken(t *testing.T) {
	strategy := NewHMACStrategy("secret", Options{TTL: time.Hour})
	token, err := strategy.IssueToken("user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	raw, _ := base64.StdEncoding.DecodeString(token)
	tampered := strings.Replace(string(raw), "user-1", "user-2", 1)
	forged := base64.StdEncoding.EncodeToString([]byte(tampered))

	if _, err := strategy.ParseToken(forged); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected invalid token, got %v", err)
	}
}

func TestHMACStrategyRejectsWrongSecret(t *testing.T) {
	issuer := NewHMACStrategy("secret-a", Options{TTL: time.Hour})
	verifier := NewHMACStrategy("secret-b", Options{TTL: time.Hour})

	token, err := issuer.IssueToken("user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := verifier.ParseToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected invalid token, got %v", err)
	}
}

func TestHMACStrategyRejectsGarbage(t *testing.T) {
	strategy := NewHMACStrategy("secret", Options{TTL: time.Hour})
	for _, token := range []string{"", "not-base64!!", base64.StdEncoding.EncodeToString([]byte("one:two"))} {
		if _, err := strategy.ParseToken(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("ParseToken(%q): expected invalid token, got %v", token, err)
		}
	}
}

func TestBcryptHasher(t *testing.T) {
	hasher := NewBcryptHasher(4)

	hash, err := hasher.Hash("hunter2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hash == "hunter2" {
		t.Fatal("hash equals plaintext")
	}
	if err := hasher.Compare(hash, "hunter2"); err != nil {
		t.Errorf("correct password rejected: %v", err)
	}
	if err := hasher.Compare(hash, "wrong"); err == nil {
		t.Error("wrong password accepted")
	}
}
