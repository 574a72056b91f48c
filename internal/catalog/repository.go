package catalog

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Space struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
	IsHidden    bool   `json:"isHidden"`
}

type Resource struct {
	ID           int64  `json:"id"`
	SpaceID      int64  `json:"spaceId"`
	Name         string `json:"name"`
	ResourceType string `json:"resourceType"`
	Description  string `json:"description"`
	ImageURL     string `json:"imageUrl"`
	IsHidden     bool   `json:"isHidden"`
}

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// ListSpaces returns spaces for public browsing; includeHidden widens it to
// the full catalog for admin screens.
func (r *Repository) ListSpaces(ctx context.Context, includeHidden bool) ([]Space, error) {
	q := `
SELECT id, name, COALESCE(description, ''), COALESCE(image_url, ''), is_hidden
FROM spaces
`
	if !includeHidden {
		q += `WHERE is_hidden = FALSE
`
	}
	q += `ORDER BY id`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Space
	for rows.Next() {
		var s Space
		if err := rows.Scan(&s.ID, &s.Name, &s.Description, &s.ImageURL, &s.IsHidden); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *Repository) GetSpace(ctx context.Context, id int64) (*Space, error) {
	const q = `
SELECT id, name, COALESCE(description, ''), COALESCE(image_url, ''), is_hidden
FROM spaces
WHERE id = $1
`
	var s Space
	if err := r.db.QueryRow(ctx, q, id).Scan(&s.ID, &s.Name, &s.Description, &s.ImageURL, &s.IsHidden); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *Repository) ListResources(ctx context.Context, spaceID int64, includeHidden bool) ([]Resource, error) {
	q := `
SELECT id, space_id, name, COALESCE(resource_type, ''), COALESCE(description, ''), COALESCE(image_url, ''), is_hidden
FROM resources
WHERE space_id = $1
`
	if !includeHidden {
		q += `  AND is_hidden = FALSE
`
	}
	q += `ORDER BY id`

	rows, err := r.db.Query(ctx, q, spaceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Resource
	for rows.Next() {
		var res Resource
		if err := rows.Scan(&res.ID, &res.SpaceID, &res.Name, &res.ResourceType, &res.Description, &res.ImageURL, &res.IsHidden); err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

func (r *Repository) GetResource(ctx context.Context, id int64) (*Resource, error) {
	const q = `
SELECT id, space_id, name, COALESCE(resource_type, ''), COALESCE(description, ''), COALESCE(image_url, ''), is_hidden
FROM resources
WHERE id = $1
`
	var res Resource
	if err := r.db.QueryRow(ctx, q, id).Scan(&res.ID, &res.SpaceID, &res.Name, &res.ResourceType, &res.Description, &res.ImageURL, &res.IsHidden); err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *Repository) CreateSpace(ctx context.Context, s Space) (*Space, error) {
	const q = `
INSERT INTO spaces (name, description, image_url, is_hidden)
VALUES ($1, $2, $3, $4)
RETURNING id
`
	if err := r.db.QueryRow(ctx, q, s.Name, s.Description, s.ImageURL, s.IsHidden).Scan(&s.ID); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *Repository) UpdateSpace(ctx context.Context, s Space) error {
	const q = `
UPDATE spaces
SET name = $1, description = $2, image_url = $3
WHERE id = $4
`
	tag, err := r.db.Exec(ctx, q, s.Name, s.Description, s.ImageURL, s.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *Repository) ToggleSpaceHidden(ctx context.Context, id int64) (bool, error) {
	const q = `
UPDATE spaces
SET is_hidden = NOT is_hidden
WHERE id = $1
RETURNING is_hidden
`
	var hidden bool
	if err := r.db.QueryRow(ctx, q, id).Scan(&hidden); err != nil {
		return false, err
	}
	return hidden, nil
}

func (r *Repository) CreateResource(ctx context.Context, res Resource) (*Resource, error) {
	const q = `
INSERT INTO resources (space_id, name, resource_type, description, image_url, is_hidden)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id
`
	if err := r.db.QueryRow(ctx, q, res.SpaceID, res.Name, res.ResourceType, res.Description, res.ImageURL, res.IsHidden).Scan(&res.ID); err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *Repository) UpdateResource(ctx context.Context, res Resource) error {
	const q = `
UPDATE resources
SET name = $1, resource_type = $2, description = $3, image_url = $4
WHERE id = $5
`
	tag, err := r.db.Exec(ctx, q, res.Name, res.ResourceType, res.Description, res.ImageURL, res.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *Repository) ToggleResourceHidden(ctx context.Context, id int64) (bool, error) {
	const q = `
UPDATE resources
SET is_hidden = NOT is_hidden
WHERE id = $1
RETURNING is_hidden
`
	var hidden bool
	if err := r.db.QueryRow(ctx, q, id).Scan(&hidden); err != nil {
		return false, err
	}
	return hidden, nil
}

// LockResource loads a resource under FOR UPDATE, serializing concurrent
// booking writes for the same resource within the surrounding transaction.
func LockResource(ctx context.Context, tx pgx.Tx, id int64) (*Resource, error) {
	const q = `
SELECT id, space_id, name, COALESCE(resource_type, ''), COALESCE(description, ''), COALESCE(image_url, ''), is_hidden
FROM resources
WHERE id = $1
FOR UPDATE
`
	var res Resource
	if err := tx.QueryRow(ctx, q, id).Scan(&res.ID, &res.SpaceID, &res.Name, &res.ResourceType, &res.Description, &res.ImageURL, &res.IsHidden); err != nil {
		return nil, err
	}
	return &res, nil
}

// ResourceHasBookings reports whether any booking, of any status, still
// references the resource. Such resources cannot be deleted.
func ResourceHasBookings(ctx context.Context, tx pgx.Tx, id int64) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM bookings WHERE resource_id = $1)`
	var exists bool
	if err := tx.QueryRow(ctx, q, id).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func DeleteResource(ctx context.Context, tx pgx.Tx, id int64) error {
	const q = `DELETE FROM resources WHERE id = $1`
	tag, err := tx.Exec(ctx, q, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// DeleteSpaceCascade removes a space together with its resources and their
// bookings, deepest rows first. The cascade is explicit rather than delegated
// to FK actions so the full extent of the delete is visible here.
func DeleteSpaceCascade(ctx context.Context, tx pgx.Tx, id int64) error {
	if _, err := tx.Exec(ctx, `
DELETE FROM bookings
WHERE resource_id IN (SELECT id FROM resources WHERE space_id = $1)
`, id); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM resources WHERE space_id = $1`, id); err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, `DELETE FROM spaces WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
