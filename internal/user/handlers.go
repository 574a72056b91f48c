package user

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"spacebook/internal/api"
	"spacebook/internal/audit"
	"spacebook/pkg/db"
)

type Handlers struct {
	DB    *pgxpool.Pool
	Users *Repository
}

type CreateRequest struct {
	Username       string `json:"username"`
	Password       string `json:"password"`
	PermissionMask *int   `json:"permissionMask"`
}

func (h Handlers) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid json")
		return
	}
	if req.Username == "" || req.Password == "" {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "username and password cannot be empty")
		return
	}

	// New accounts default to Book+View.
	mask := 6
	if req.PermissionMask != nil {
		mask = *req.PermissionMask
	}
	if mask < 0 {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "permission mask must be non-negative")
		return
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}

	u, err := h.Users.Create(r.Context(), req.Username, hash, mask)
	if IsUniqueViolation(err) {
		api.WriteError(w, http.StatusConflict, "USERNAME_TAKEN", "username already exists")
		return
	}
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}
	api.WriteJSON(w, http.StatusCreated, u)
}

func (h Handlers) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.Users.List(r.Context())
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}
	if users == nil {
		users = []User{}
	}
	api.WriteJSON(w, http.StatusOK, map[string]any{"items": users})
}

type UpdateMaskRequest struct {
	PermissionMask int `json:"permissionMask"`
}

func (h Handlers) UpdateMask(w http.ResponseWriter, r *http.Request) {
	actor := api.IdentityFromContext(r.Context())
	if actor == nil {
		api.WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "login required")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid id")
		return
	}

	var req UpdateMaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid json")
		return
	}
	if req.PermissionMask < 0 {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "permission mask must be non-negative")
		return
	}

	target, err := h.Users.GetByID(r.Context(), id)
	if err != nil {
		api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "user not found")
		return
	}

	err = db.WithTx(r.Context(), h.DB, func(tx pgx.Tx) error {
		if err := UpdateMask(r.Context(), tx, target.ID, req.PermissionMask); err != nil {
			return err
		}
		return audit.Insert(r.Context(), tx, actor.UserID, "PERMISSIONS_CHANGED", "user", target.ID,
			map[string]any{"from": target.PermissionMask, "to": req.PermissionMask})
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "user not found")
			return
		}
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
