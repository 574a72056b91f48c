package api

import (
	"net/http"

	"spacebook/internal/permission"
)

// RequireCapability rejects requests whose identity lacks the capability.
// It must run after the session middleware; a missing identity is treated
// as unauthenticated rather than merely forbidden.
func RequireCapability(c permission.Capability) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := IdentityFromContext(r.Context())
			if id == nil {
				WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "login required")
				return
			}
			if !id.Mask.Has(c) {
				WriteError(w, http.StatusForbidden, "FORBIDDEN", "insufficient permissions")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
