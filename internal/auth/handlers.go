package auth

import (
	"encoding/json"
	"net/http"
	"time"

	"spacebook/internal/api"
	"spacebook/internal/user"
	"spacebook/pkg/config"
)

type Handlers struct {
	Cfg   config.Config
	Users *user.Repository
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string    `json:"token"`
	User  user.User `json:"user"`
}

func (h Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid json")
		return
	}
	if req.Username == "" || req.Password == "" {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "username and password are required")
		return
	}

	u, err := h.Users.GetByUsername(r.Context(), req.Username)
	if err != nil || !user.CheckPassword(u.PasswordHash, req.Password) {
		// Same response for unknown user and wrong password.
		api.WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "invalid username or password")
		return
	}

	ttl := time.Duration(h.Cfg.Session.TTLHours) * time.Hour
	token, err := IssueSessionToken(h.Cfg.Session.Secret, u.ID, u.Username, u.PermissionMask, ttl, time.Now())
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}

	api.WriteJSON(w, http.StatusOK, LoginResponse{Token: token, User: *u})
}

func (h Handlers) Me(w http.ResponseWriter, r *http.Request) {
	id := api.IdentityFromContext(r.Context())
	if id == nil {
		api.WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "login required")
		return
	}
	api.WriteJSON(w, http.StatusOK, map[string]any{
		"id":             id.UserID,
		"username":       id.Username,
		"permissionMask": int(id.Mask),
		"siteName":       h.Cfg.SiteName,
	})
}
