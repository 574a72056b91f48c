package user

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type User struct {
	ID             int64  `json:"id"`
	Username       string `json:"username"`
	PasswordHash   string `json:"-"`
	PermissionMask int    `json:"permissionMask"`
}

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*User, error) {
	const q = `
SELECT id, username, password_hash, permission_mask
FROM users
WHERE id = $1
`
	var u User
	if err := r.db.QueryRow(ctx, q, id).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.PermissionMask); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *Repository) GetByUsername(ctx context.Context, username string) (*User, error) {
	const q = `
SELECT id, username, password_hash, permission_mask
FROM users
WHERE username = $1
`
	var u User
	if err := r.db.QueryRow(ctx, q, username).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.PermissionMask); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *Repository) List(ctx context.Context) ([]User, error) {
	const q = `
SELECT id, username, password_hash, permission_mask
FROM users
ORDER BY username
`
	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.PermissionMask); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *Repository) Create(ctx context.Context, username, passwordHash string, mask int) (*User, error) {
	const q = `
INSERT INTO users (username, password_hash, permission_mask)
VALUES ($1, $2, $3)
RETURNING id
`
	u := User{Username: username, PasswordHash: passwordHash, PermissionMask: mask}
	if err := r.db.QueryRow(ctx, q, username, passwordHash, mask).Scan(&u.ID); err != nil {
		return nil, err
	}
	return &u, nil
}

// IsUniqueViolation reports whether err is a Postgres unique-constraint
// violation. Duplicate usernames surface here from the users_username_key
// constraint rather than a pre-insert lookup.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func UpdateMask(ctx context.Context, tx pgx.Tx, id int64, mask int) error {
	const q = `UPDATE users SET permission_mask = $1 WHERE id = $2`
	_, err := tx.Exec(ctx, q, mask, id)
	return err
}
