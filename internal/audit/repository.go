package audit

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5"
)

// Insert records an administrative action inside the caller's transaction,
// so the audit row commits or rolls back with the change it describes.
func Insert(ctx context.Context, tx pgx.Tx, actorID int64, action, entity string, entityID int64, metadata any) error {
	var s *string
	if metadata != nil {
		b, _ := json.Marshal(metadata)
		str := string(b)
		s = &str
	}
	const q = `
INSERT INTO audit_logs (actor_id, action, entity, entity_id, metadata)
VALUES ($1, $2, $3, $4, CAST($5 AS jsonb))
`
	_, err := tx.Exec(ctx, q, actorID, action, entity, entityID, s)
	return err
}
