package api

import (
	"context"

	"spacebook/internal/permission"
)

// Identity is the authenticated requester, resolved once per request by the
// session middleware and passed explicitly through context. Handlers never
// consult ambient session state.
type Identity struct {
	UserID   int64
	Username string
	Mask     permission.Mask
}

type ctxKey string

const ctxKeyIdentity ctxKey = "identity"

func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, ctxKeyIdentity, id)
}

func IdentityFromContext(ctx context.Context) *Identity {
	v := ctx.Value(ctxKeyIdentity)
	if v == nil {
		return nil
	}
	id, _ := v.(*Identity)
	return id
}

// MaskFromContext returns the requester's capability mask, or the zero mask
// for anonymous requests. Used by endpoints that serve both.
func MaskFromContext(ctx context.Context) permission.Mask {
	if id := IdentityFromContext(ctx); id != nil {
		return id.Mask
	}
	return 0
}
