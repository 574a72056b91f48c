package auth

import (
	"testing"
	"time"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	secret := "test_secret"
	now := time.Unix(1700000000, 0)

	tok, err := IssueSessionToken(secret, 42, "student", 6, time.Hour, now)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	claims, err := VerifySessionToken(tok, secret, now.Add(5*time.Minute))
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	id, err := claims.SubjectID()
	if err != nil {
		t.Fatalf("subject: %v", err)
	}
	if id != 42 {
		t.Fatalf("expected subject 42, got %d", id)
	}
	if claims.Username != "student" || claims.Mask != 6 {
		t.Fatalf("claims mismatch: %+v", claims)
	}
	if claims.ID == "" {
		t.Fatalf("expected a jti")
	}
}

func TestVerifySessionToken_Expired(t *testing.T) {
	secret := "test_secret"
	now := time.Unix(1700000000, 0)

	tok, err := IssueSessionToken(secret, 1, "admin", 7, time.Hour, now)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := VerifySessionToken(tok, secret, now.Add(2*time.Hour)); err == nil {
		t.Fatalf("expected expiry error")
	}
}

func TestVerifySessionToken_WrongSecret(t *testing.T) {
	now := time.Unix(1700000000, 0)
	tok, err := IssueSessionToken("secret_a", 1, "admin", 7, time.Hour, now)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := VerifySessionToken(tok, "secret_b", now); err == nil {
		t.Fatalf("expected signature error")
	}
}
