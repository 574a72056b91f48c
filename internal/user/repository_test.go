package user

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestIsUniqueViolation(t *testing.T) {
	dup := &pgconn.PgError{Code: "23505", ConstraintName: "users_username_key"}
	if !IsUniqueViolation(dup) {
		t.Fatalf("expected unique violation detected")
	}
	if !IsUniqueViolation(fmt.Errorf("insert user: %w", dup)) {
		t.Fatalf("expected wrapped unique violation detected")
	}
	if IsUniqueViolation(&pgconn.PgError{Code: "23503"}) {
		t.Fatalf("foreign-key violation is not a duplicate")
	}
	if IsUniqueViolation(errors.New("connection refused")) {
		t.Fatalf("plain error is not a duplicate")
	}
	if IsUniqueViolation(nil) {
		t.Fatalf("nil error is not a duplicate")
	}
}
