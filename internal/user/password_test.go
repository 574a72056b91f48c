package user

import "testing"

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("student123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !CheckPassword(hash, "student123") {
		t.Fatalf("expected match")
	}
	if CheckPassword(hash, "student124") {
		t.Fatalf("expected mismatch")
	}
}
