package catalog

import (
	"context"
	"errors"
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

func seedSpace(ctx context.Context, t *testing.T, tx pgx.Tx, name string) int64 {
	t.Helper()
	var id int64
	if err := tx.QueryRow(ctx, `INSERT INTO spaces (name) VALUES ($1) RETURNING id`, name).Scan(&id); err != nil {
		t.Fatalf("seed space: %v", err)
	}
	return id
}

func seedResource(ctx context.Context, t *testing.T, tx pgx.Tx, spaceID int64, name string) int64 {
	t.Helper()
	var id int64
	if err := tx.QueryRow(ctx, `
INSERT INTO resources (space_id, name) VALUES ($1, $2) RETURNING id
`, spaceID, name).Scan(&id); err != nil {
		t.Fatalf("seed resource: %v", err)
	}
	return id
}

func seedBooking(ctx context.Context, t *testing.T, tx pgx.Tx, resourceID int64, status string) {
	t.Helper()
	var userID int64
	if err := tx.QueryRow(ctx, `
INSERT INTO users (username, password_hash, permission_mask)
VALUES ('cascade-tester-' || $1::text, 'x', 6)
ON CONFLICT (username) DO UPDATE SET username = users.username
RETURNING id
`, resourceID).Scan(&userID); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	start := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	if _, err := tx.Exec(ctx, `
INSERT INTO bookings (user_id, resource_id, start_time, end_time, attendees, status)
VALUES ($1, $2, $3, $4, 1, $5)
`, userID, resourceID, start, start.Add(time.Hour), status); err != nil {
		t.Fatalf("seed booking: %v", err)
	}
}

func TestResourceHasBookings(t *testing.T) {
	ctx, tx := testTx(t)
	spaceID := seedSpace(ctx, t, tx, "Guard Space")
	resourceID := seedResource(ctx, t, tx, spaceID, "Guard Room")

	has, err := ResourceHasBookings(ctx, tx, resourceID)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if has {
		t.Fatalf("fresh resource reported bookings")
	}
	if err := DeleteResource(ctx, tx, resourceID); err != nil {
		t.Fatalf("delete unreferenced resource: %v", err)
	}

	// A booking in any status, even Cancelled, keeps the resource alive.
	resourceID = seedResource(ctx, t, tx, spaceID, "Guard Room 2")
	seedBooking(ctx, t, tx, resourceID, "Cancelled")
	has, err = ResourceHasBookings(ctx, tx, resourceID)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if !has {
		t.Fatalf("cancelled booking not counted as a reference")
	}
}

func TestDeleteResourceMissing(t *testing.T) {
	ctx, tx := testTx(t)
	if err := DeleteResource(ctx, tx, 1<<40); !errors.Is(err, pgx.ErrNoRows) {
		t.Fatalf("err = %v, want pgx.ErrNoRows", err)
	}
}

func TestDeleteSpaceCascade(t *testing.T) {
	ctx, tx := testTx(t)
	spaceID := seedSpace(ctx, t, tx, "Doomed Space")
	resA := seedResource(ctx, t, tx, spaceID, "Doomed Room A")
	resB := seedResource(ctx, t, tx, spaceID, "Doomed Room B")
	seedBooking(ctx, t, tx, resA, "Approved")
	seedBooking(ctx, t, tx, resB, "Pending")

	// A sibling space must survive untouched.
	otherSpace := seedSpace(ctx, t, tx, "Bystander Space")
	otherRes := seedResource(ctx, t, tx, otherSpace, "Bystander Room")
	seedBooking(ctx, t, tx, otherRes, "Approved")

	if err := DeleteSpaceCascade(ctx, tx, spaceID); err != nil {
		t.Fatalf("cascade: %v", err)
	}

	var n int
	if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM spaces WHERE id = $1`, spaceID).Scan(&n); err != nil {
		t.Fatalf("count spaces: %v", err)
	}
	if n != 0 {
		t.Fatalf("space survived cascade")
	}
	if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM resources WHERE space_id = $1`, spaceID).Scan(&n); err != nil {
		t.Fatalf("count resources: %v", err)
	}
	if n != 0 {
		t.Fatalf("%d orphaned resources after cascade", n)
	}
	if err := tx.QueryRow(ctx, `
SELECT COUNT(*) FROM bookings WHERE resource_id IN ($1, $2)
`, resA, resB).Scan(&n); err != nil {
		t.Fatalf("count bookings: %v", err)
	}
	if n != 0 {
		t.Fatalf("%d orphaned bookings after cascade", n)
	}

	if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM bookings WHERE resource_id = $1`, otherRes).Scan(&n); err != nil {
		t.Fatalf("count bystander bookings: %v", err)
	}
	if n != 1 {
		t.Fatalf("cascade reached a sibling space")
	}
}

func TestDeleteSpaceCascadeMissing(t *testing.T) {
	ctx, tx := testTx(t)
	if err := DeleteSpaceCascade(ctx, tx, 1<<40); !errors.Is(err, pgx.ErrNoRows) {
		t.Fatalf("err = %v, want pgx.ErrNoRows", err)
	}
}
