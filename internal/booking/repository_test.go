package booking

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// testTx begins a transaction against TEST_DATABASE_URL and rolls it back
// when the test ends, so fixtures never leak between runs. Skipped unless
// the variable points at a migrated database.
func testTx(t *testing.T) (context.Context, pgx.Tx) {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set; point it at a migrated database to run")
	}
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	tx, err := pool.Begin(ctx)
	if err != nil {
		pool.Close()
		t.Fatalf("begin: %v", err)
	}
	t.Cleanup(func() {
		_ = tx.Rollback(ctx)
		pool.Close()
	})
	return ctx, tx
}

// seedResource inserts a user, a space, and one resource, returning the
// user and resource ids.
func seedResource(ctx context.Context, t *testing.T, tx pgx.Tx) (userID, resourceID int64) {
	t.Helper()
	if err := tx.QueryRow(ctx, `
INSERT INTO users (username, password_hash, permission_mask)
VALUES ('overlap-tester', 'x', 6)
RETURNING id
`).Scan(&userID); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	var spaceID int64
	if err := tx.QueryRow(ctx, `
INSERT INTO spaces (name) VALUES ('Test Space') RETURNING id
`).Scan(&spaceID); err != nil {
		t.Fatalf("seed space: %v", err)
	}
	if err := tx.QueryRow(ctx, `
INSERT INTO resources (space_id, name) VALUES ($1, 'Test Room') RETURNING id
`, spaceID).Scan(&resourceID); err != nil {
		t.Fatalf("seed resource: %v", err)
	}
	return userID, resourceID
}

func TestApprovedOverlapExists(t *testing.T) {
	ctx, tx := testTx(t)
	userID, resourceID := seedResource(ctx, t, tx)

	day := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	at := func(h, m int) time.Time { return day.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute) }

	// Approved 10:00-11:00 occupies the slot.
	approvedID, err := Insert(ctx, tx, userID, resourceID, at(10, 0), at(11, 0), 1)
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := UpdateStatus(ctx, tx, approvedID, StatusApproved); err != nil {
		t.Fatalf("approve: %v", err)
	}
	// A Pending request in the same window must not block anything.
	if _, err := Insert(ctx, tx, userID, resourceID, at(10, 0), at(11, 0), 1); err != nil {
		t.Fatalf("insert pending: %v", err)
	}

	cases := []struct {
		name       string
		start, end time.Time
		exclude    int64
		want       bool
	}{
		{"contained", at(10, 30), at(10, 45), 0, true},
		{"straddles start", at(9, 30), at(10, 30), 0, true},
		{"straddles end", at(10, 45), at(11, 30), 0, true},
		{"back-to-back after", at(11, 0), at(12, 0), 0, false},
		{"back-to-back before", at(9, 0), at(10, 0), 0, false},
		{"excludes booking under review", at(10, 0), at(11, 0), approvedID, false},
	}
	for _, tc := range cases {
		got, err := ApprovedOverlapExists(ctx, tx, resourceID, tc.start, tc.end, tc.exclude)
		if err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		if got != tc.want {
			t.Errorf("%s: overlap = %v, want %v", tc.name, got, tc.want)
		}
		// The SQL predicate and the in-memory one must agree on every
		// window that is not excluded by id.
		if tc.exclude == 0 {
			if mem := Overlaps(tc.start, tc.end, at(10, 0), at(11, 0)); mem != got {
				t.Errorf("%s: Overlaps = %v, query = %v", tc.name, mem, got)
			}
		}
	}
}

func TestApprovedOverlapExistsOtherResource(t *testing.T) {
	ctx, tx := testTx(t)
	userID, resourceID := seedResource(ctx, t, tx)

	var otherID int64
	if err := tx.QueryRow(ctx, `
INSERT INTO resources (space_id, name)
SELECT space_id, 'Other Room' FROM resources WHERE id = $1
RETURNING id
`, resourceID).Scan(&otherID); err != nil {
		t.Fatalf("seed other resource: %v", err)
	}

	start := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)
	id, err := Insert(ctx, tx, userID, resourceID, start, end, 1)
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := UpdateStatus(ctx, tx, id, StatusApproved); err != nil {
		t.Fatalf("approve: %v", err)
	}

	got, err := ApprovedOverlapExists(ctx, tx, otherID, start, end, 0)
	if err != nil {
		t.Fatalf("overlap: %v", err)
	}
	if got {
		t.Fatalf("booking on one resource must not block another")
	}
}
