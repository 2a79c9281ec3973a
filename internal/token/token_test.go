package token

import (
	"errors"
	"testing"
	"time"
)

const testSecret = "test-secret"

func TestSignVerify_RoundTrip(t *testing.T) {
	s := NewSigner(testSecret)

	id := Identity{UserName: "alice", Email: "alice@example.com", UserType: "driver"}
	tok, err := s.Sign(id, time.Now())
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	got, err := s.Verify(tok)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if got != id {
		t.Fatalf("identity mismatch: %+v", got)
	}
}

func TestVerify_ExpiredAfterOneDay(t *testing.T) {
	s := NewSigner(testSecret)

	tok, err := s.Sign(Identity{UserName: "bob", Email: "bob@example.com", UserType: "passenger"}, time.Now().Add(-25*time.Hour))
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	if _, err := s.Verify(tok); !errors.Is(err, ErrExpired) {
		t.Fatalf("expected ErrExpired, got %v", err)
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	tok, err := NewSigner(testSecret).Sign(Identity{UserName: "bob", Email: "bob@example.com", UserType: "driver"}, time.Now())
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	if _, err := NewSigner("other-secret").Verify(tok); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
}

func TestVerify_Garbage(t *testing.T) {
	if _, err := NewSigner(testSecret).Verify("not-a-token"); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
}

func TestVerify_EmptyEmailRejected(t *testing.T) {
	s := NewSigner(testSecret)

	tok, err := s.Sign(Identity{UserName: "ghost"}, time.Now())
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	if _, err := s.Verify(tok); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
}
