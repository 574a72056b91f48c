package booking

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Booking struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"userId"`
	ResourceID int64     `json:"resourceId"`
	StartTime  time.Time `json:"startTime"`
	EndTime    time.Time `json:"endTime"`
	Attendees  int       `json:"attendees"`
	Status     Status    `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ListItem is a booking joined with display names for list screens.
type ListItem struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"userId"`
	Username     string    `json:"username"`
	ResourceID   int64     `json:"resourceId"`
	ResourceName string    `json:"resourceName"`
	StartTime    time.Time `json:"startTime"`
	EndTime      time.Time `json:"endTime"`
	Attendees    int       `json:"attendees"`
	Status       Status    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
}

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

func (r *Repository) ListByUser(ctx context.Context, userID int64) ([]ListItem, error) {
	const q = `
SELECT b.id, b.user_id, u.username, b.resource_id, res.name,
       b.start_time, b.end_time, b.attendees, b.status, b.created_at
FROM bookings b
JOIN users u ON u.id = b.user_id
JOIN resources res ON res.id = b.resource_id
WHERE b.user_id = $1
ORDER BY b.created_at DESC
`
	rows, err := r.db.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanListItems(rows)
}

func (r *Repository) ListAll(ctx context.Context) ([]ListItem, error) {
	const q = `
SELECT b.id, b.user_id, u.username, b.resource_id, res.name,
       b.start_time, b.end_time, b.attendees, b.status, b.created_at
FROM bookings b
JOIN users u ON u.id = b.user_id
JOIN resources res ON res.id = b.resource_id
ORDER BY b.created_at DESC
`
	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanListItems(rows)
}

// ListByStatus returns bookings in a single status. The calendar feed uses
// StatusApproved, the set non-admin callers are allowed to see; the admin
// list uses it when filtering by status.
func (r *Repository) ListByStatus(ctx context.Context, st Status) ([]ListItem, error) {
	const q = `
SELECT b.id, b.user_id, u.username, b.resource_id, res.name,
       b.start_time, b.end_time, b.attendees, b.status, b.created_at
FROM bookings b
JOIN users u ON u.id = b.user_id
JOIN resources res ON res.id = b.resource_id
WHERE b.status = $1
ORDER BY b.start_time
`
	rows, err := r.db.Query(ctx, q, string(st))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanListItems(rows)
}

func scanListItems(rows pgx.Rows) ([]ListItem, error) {
	var out []ListItem
	for rows.Next() {
		var b ListItem
		if err := rows.Scan(
			&b.ID, &b.UserID, &b.Username, &b.ResourceID, &b.ResourceName,
			&b.StartTime, &b.EndTime, &b.Attendees, &b.Status, &b.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func GetForUpdate(ctx context.Context, tx pgx.Tx, id int64) (*Booking, error) {
	const q = `
SELECT id, user_id, resource_id, start_time, end_time, attendees, status, created_at
FROM bookings
WHERE id = $1
FOR UPDATE
`
	var b Booking
	if err := tx.QueryRow(ctx, q, id).Scan(
		&b.ID, &b.UserID, &b.ResourceID, &b.StartTime, &b.EndTime, &b.Attendees, &b.Status, &b.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &b, nil
}

// ApprovedOverlapExists reports whether an Approved booking on the resource
// overlaps the half-open interval [start, end). Pending requests do not
// block; only an approval occupies the slot. excludeID skips the booking
// under review when re-checking at approval time (0 excludes nothing).
func ApprovedOverlapExists(ctx context.Context, tx pgx.Tx, resourceID int64, start, end time.Time, excludeID int64) (bool, error) {
	const q = `
SELECT EXISTS (
  SELECT 1
  FROM bookings
  WHERE resource_id = $1
    AND status = 'Approved'
    AND start_time < $3
    AND end_time > $2
    AND id <> $4
)
`
	var exists bool
	if err := tx.QueryRow(ctx, q, resourceID, start, end, excludeID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func Insert(ctx context.Context, tx pgx.Tx, userID, resourceID int64, start, end time.Time, attendees int) (int64, error) {
	const q = `
INSERT INTO bookings (user_id, resource_id, start_time, end_time, attendees, status)
VALUES ($1, $2, $3, $4, $5, 'Pending')
RETURNING id
`
	var id int64
	if err := tx.QueryRow(ctx, q, userID, resourceID, start, end, attendees).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func UpdateStatus(ctx context.Context, tx pgx.Tx, id int64, next Status) error {
	const q = `UPDATE bookings SET status = $1 WHERE id = $2`
	_, err := tx.Exec(ctx, q, string(next), id)
	return err
}

func UpdateEndTime(ctx context.Context, tx pgx.Tx, id int64, end time.Time) error {
	const q = `UPDATE bookings SET end_time = $1 WHERE id = $2`
	_, err := tx.Exec(ctx, q, end, id)
	return err
}
