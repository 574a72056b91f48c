package catalog

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
	"spacebook/internal/permission"
	"spacebook/pkg/db"
)

type Handlers struct {
	DB      *pgxpool.Pool
	Catalog *Repository
}

// ListSpaces is the public space listing; hidden spaces are excluded.
func (h Handlers) ListSpaces(w http.ResponseWriter, r *http.Request) {
	spaces, err := h.Catalog.ListSpaces(r.Context(), false)
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}
	if spaces == nil {
		spaces = []Space{}
	}
	api.WriteJSON(w, http.StatusOK, map[string]any{"items": spaces})
}

// GetSpace returns one space with its resources. Hidden spaces and resources
// stay reachable by direct identifier for admins only; everyone else gets a
// not-found for a hidden space and a filtered resource list.
func (h Handlers) GetSpace(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	isAdmin := api.MaskFromContext(r.Context()).Has(permission.Admin)

	s, err := h.Catalog.GetSpace(r.Context(), id)
	if err != nil || (s.IsHidden && !isAdmin) {
		api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "space not found")
		return
	}

	resources, err := h.Catalog.ListResources(r.Context(), s.ID, isAdmin)
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}
	if resources == nil {
		resources = []Resource{}
	}
	api.WriteJSON(w, http.StatusOK, map[string]any{"space": s, "resources": resources})
}

// AdminListSpaces returns the full catalog, hidden entries included.
func (h Handlers) AdminListSpaces(w http.ResponseWriter, r *http.Request) {
	spaces, err := h.Catalog.ListSpaces(r.Context(), true)
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}

	type spaceWithResources struct {
		Space
		Resources []Resource `json:"resources"`
	}
	out := make([]spaceWithResources, 0, len(spaces))
	for _, s := range spaces {
		resources, err := h.Catalog.ListResources(r.Context(), s.ID, true)
		if err != nil {
			api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
			return
		}
		if resources == nil {
			resources = []Resource{}
		}
		out = append(out, spaceWithResources{Space: s, Resources: resources})
	}
	api.WriteJSON(w, http.StatusOK, map[string]any{"items": out})
}

type SpaceRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
}

func (h Handlers) CreateSpace(w http.ResponseWriter, r *http.Request) {
	var req SpaceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid json")
		return
	}
	if req.Name == "" {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "name is required")
		return
	}

	s, err := h.Catalog.CreateSpace(r.Context(), Space{Name: req.Name, Description: req.Description, ImageURL: req.ImageURL})
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}
	api.WriteJSON(w, http.StatusCreated, s)
}

func (h Handlers) UpdateSpace(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req SpaceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid json")
		return
	}
	if req.Name == "" {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "name is required")
		return
	}

	err := h.Catalog.UpdateSpace(r.Context(), Space{ID: id, Name: req.Name, Description: req.Description, ImageURL: req.ImageURL})
	if errors.Is(err, pgx.ErrNoRows) {
		api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "space not found")
		return
	}
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteSpace removes the space, its resources, and their bookings in one
// transaction.
func (h Handlers) DeleteSpace(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	actor := api.IdentityFromContext(r.Context())
	if actor == nil {
		api.WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "login required")
		return
	}

	err := db.WithTx(r.Context(), h.DB, func(tx pgx.Tx) error {
		if err := DeleteSpaceCascade(r.Context(), tx, id); err != nil {
			return err
		}
		return audit.Insert(r.Context(), tx, actor.UserID, "SPACE_DELETED", "space", id, nil)
	})
	if errors.Is(err, pgx.ErrNoRows) {
		api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "space not found")
		return
	}
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h Handlers) ToggleSpace(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	hidden, err := h.Catalog.ToggleSpaceHidden(r.Context(), id)
	if errors.Is(err, pgx.ErrNoRows) {
		api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "space not found")
		return
	}
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}
	api.WriteJSON(w, http.StatusOK, map[string]any{"id": id, "isHidden": hidden})
}

type ResourceRequest struct {
	SpaceID      int64  `json:"spaceId"`
	Name         string `json:"name"`
	ResourceType string `json:"resourceType"`
	Description  string `json:"description"`
	ImageURL     string `json:"imageUrl"`
}

func (h Handlers) CreateResource(w http.ResponseWriter, r *http.Request) {
	var req ResourceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid json")
		return
	}
	if req.Name == "" || req.SpaceID == 0 {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "name and spaceId are required")
		return
	}
	if _, err := h.Catalog.GetSpace(r.Context(), req.SpaceID); err != nil {
		api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "space not found")
		return
	}

	res, err := h.Catalog.CreateResource(r.Context(), Resource{
		SpaceID:      req.SpaceID,
		Name:         req.Name,
		ResourceType: req.ResourceType,
		Description:  req.Description,
		ImageURL:     req.ImageURL,
	})
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}
	api.WriteJSON(w, http.StatusCreated, res)
}

func (h Handlers) UpdateResource(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req ResourceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid json")
		return
	}
	if req.Name == "" {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "name is required")
		return
	}

	err := h.Catalog.UpdateResource(r.Context(), Resource{
		ID:           id,
		Name:         req.Name,
		ResourceType: req.ResourceType,
		Description:  req.Description,
		ImageURL:     req.ImageURL,
	})
	if errors.Is(err, pgx.ErrNoRows) {
		api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "resource not found")
		return
	}
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteResource refuses while any booking, of any status, still references
// the resource. Only the top-down space cascade removes bookings.
func (h Handlers) DeleteResource(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	actor := api.IdentityFromContext(r.Context())
	if actor == nil {
		api.WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "login required")
		return
	}

	err := db.WithTx(r.Context(), h.DB, func(tx pgx.Tx) error {
		inUse, err := ResourceHasBookings(r.Context(), tx, id)
		if err != nil {
			return err
		}
		if inUse {
			api.WriteError(w, http.StatusConflict, "RESOURCE_IN_USE", "booking records associated with this resource exist")
			return pgx.ErrTxCommitRollback
		}
		if err := DeleteResource(r.Context(), tx, id); err != nil {
			return err
		}
		return audit.Insert(r.Context(), tx, actor.UserID, "RESOURCE_DELETED", "resource", id, nil)
	})
	if err != nil {
		if errors.Is(err, pgx.ErrTxCommitRollback) {
			return
		}
		if errors.Is(err, pgx.ErrNoRows) {
			api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "resource not found")
			return
		}
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h Handlers) ToggleResource(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	hidden, err := h.Catalog.ToggleResourceHidden(r.Context(), id)
	if errors.Is(err, pgx.ErrNoRows) {
		api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "resource not found")
		return
	}
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}
	api.WriteJSON(w, http.StatusOK, map[string]any{"id": id, "isHidden": hidden})
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid id")
		return 0, false
	}
	return id, true
}
