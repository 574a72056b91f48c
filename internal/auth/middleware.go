package auth

import (
	"net/http"
	"strings"
	"time"

	"spacebook/internal/api"
	"spacebook/internal/permission"
	"spacebook/internal/user"
	"spacebook/pkg/config"
)

// SessionAuth resolves the requester from a bearer session token and attaches
// the identity to context. The user row is reloaded on every request so that
// permission-mask changes apply immediately, not at token expiry.
func SessionAuth(cfg config.SessionConfig, users *user.Repository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := resolve(r, cfg, users)
			if !ok {
				api.WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "login required")
				return
			}
			next.ServeHTTP(w, r.WithContext(api.WithIdentity(r.Context(), id)))
		})
	}
}

// OptionalSessionAuth is SessionAuth for endpoints that also serve anonymous
// callers: a missing or invalid token proceeds with no identity (zero mask)
// instead of rejecting.
func OptionalSessionAuth(cfg config.SessionConfig, users *user.Repository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if id, ok := resolve(r, cfg, users); ok {
				r = r.WithContext(api.WithIdentity(r.Context(), id))
			}
			next.ServeHTTP(w, r)
		})
	}
}

func resolve(r *http.Request, cfg config.SessionConfig, users *user.Repository) (*api.Identity, bool) {
	raw := strings.TrimSpace(r.Header.Get("Authorization"))
	if raw == "" || !strings.HasPrefix(raw, "Bearer ") {
		return nil, false
	}

	claims, err := VerifySessionToken(strings.TrimPrefix(raw, "Bearer "), cfg.Secret, time.Now())
	if err != nil {
		return nil, false
	}
	userID, err := claims.SubjectID()
	if err != nil {
		return nil, false
	}

	u, err := users.GetByID(r.Context(), userID)
	if err != nil {
		return nil, false
	}

	return &api.Identity{
		UserID:   u.ID,
		Username: u.Username,
		Mask:     permission.Mask(u.PermissionMask),
	}, true
}
