package booking

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"spacebook/internal/api"
	"spacebook/internal/audit"
	"spacebook/internal/catalog"
	"spacebook/pkg/db"
)

type Handlers struct {
	DB       *pgxpool.Pool
	Bookings *Repository
	Catalog  *catalog.Repository

	// RecheckOnApprove makes admin approval re-run the conflict check, so an
	// approval can no longer double-book a slot taken since the request was
	// filed. Off by default to match the manual-resolution workflow.
	RecheckOnApprove bool
}

type CreateRequest struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Attendees int    `json:"attendees"`
}

// Create files a new booking request for a resource. The resource row is
// locked for the duration of the transaction, serializing the conflict
// check and insert against concurrent requests for the same resource.
func (h Handlers) Create(w http.ResponseWriter, r *http.Request) {
	actor := api.IdentityFromContext(r.Context())
	if actor == nil {
		api.WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "login required")
		return
	}
	resourceID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid json")
		return
	}
	start, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid start time")
		return
	}
	end, err := time.Parse(time.RFC3339, req.EndTime)
	if err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid end time")
		return
	}
	if err := ValidateRange(start, end); err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", err.Error())
		return
	}
	attendees := req.Attendees
	if attendees <= 0 {
		attendees = 1
	}

	var bookingID int64
	err = db.WithTx(r.Context(), h.DB, func(tx pgx.Tx) error {
		res, err := catalog.LockResource(r.Context(), tx, resourceID)
		if err != nil {
			return err
		}

		conflict, err := ApprovedOverlapExists(r.Context(), tx, res.ID, start, end, 0)
		if err != nil {
			return err
		}
		if conflict {
			api.WriteError(w, http.StatusConflict, "TIME_SLOT_CONFLICT", "this time slot is already occupied")
			return pgx.ErrTxCommitRollback
		}

		bookingID, err = Insert(r.Context(), tx, actor.UserID, res.ID, start, end, attendees)
		return err
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

	api.WriteJSON(w, http.StatusCreated, map[string]any{"id": bookingID, "status": StatusPending})
}

func (h Handlers) ListMine(w http.ResponseWriter, r *http.Request) {
	actor := api.IdentityFromContext(r.Context())
	if actor == nil {
		api.WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "login required")
		return
	}

	items, err := h.Bookings.ListByUser(r.Context(), actor.UserID)
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}
	if items == nil {
		items = []ListItem{}
	}
	api.WriteJSON(w, http.StatusOK, map[string]any{"items": items})
}

// Cancel moves an owner's Draft/Pending/Approved booking to Cancelled.
// A request by a non-owner, or against a booking that is already terminal,
// changes nothing and still reports success; the endpoint does not reveal
// whose bookings exist or what state they are in.
func (h Handlers) Cancel(w http.ResponseWriter, r *http.Request) {
	actor := api.IdentityFromContext(r.Context())
	if actor == nil {
		api.WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "login required")
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	err := db.WithTx(r.Context(), h.DB, func(tx pgx.Tx) error {
		b, err := GetForUpdate(r.Context(), tx, id)
		if err != nil {
			return err
		}
		if b.UserID != actor.UserID || !Cancellable(b.Status) {
			return nil
		}
		return UpdateStatus(r.Context(), tx, b.ID, StatusCancelled)
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "booking not found")
			return
		}
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// EndEarly truncates an in-progress Approved booking to now, releasing the
// resource for the rest of the slot. Outside the active window, or for a
// non-owner, it is the same silent no-op as Cancel.
func (h Handlers) EndEarly(w http.ResponseWriter, r *http.Request) {
	actor := api.IdentityFromContext(r.Context())
	if actor == nil {
		api.WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "login required")
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	err := db.WithTx(r.Context(), h.DB, func(tx pgx.Tx) error {
		b, err := GetForUpdate(r.Context(), tx, id)
		if err != nil {
			return err
		}
		now := time.Now()
		if b.UserID != actor.UserID || b.Status != StatusApproved || !ActiveAt(b.StartTime, b.EndTime, now) {
			return nil
		}
		return UpdateEndTime(r.Context(), tx, b.ID, now)
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "booking not found")
			return
		}
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AdminList returns every booking, or only those in one status when the
// caller passes ?status=.
func (h Handlers) AdminList(w http.ResponseWriter, r *http.Request) {
	var (
		items []ListItem
		err   error
	)
	if raw := r.URL.Query().Get("status"); raw != "" {
		st, perr := ParseStatus(raw)
		if perr != nil {
			api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", perr.Error())
			return
		}
		items, err = h.Bookings.ListByStatus(r.Context(), st)
	} else {
		items, err = h.Bookings.ListAll(r.Context())
	}
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}
	if items == nil {
		items = []ListItem{}
	}
	api.WriteJSON(w, http.StatusOK, map[string]any{"items": items})
}

type ReviewRequest struct {
	Action string `json:"action"`
}

// Review applies an admin decision: approve, reject, or send back to draft.
// Unknown actions re-queue the booking as Pending.
func (h Handlers) Review(w http.ResponseWriter, r *http.Request) {
	actor := api.IdentityFromContext(r.Context())
	if actor == nil {
		api.WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "login required")
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req ReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid json")
		return
	}
	next := ReviewTarget(req.Action)

	err := db.WithTx(r.Context(), h.DB, func(tx pgx.Tx) error {
		b, err := GetForUpdate(r.Context(), tx, id)
		if err != nil {
			return err
		}

		if next == StatusApproved && h.RecheckOnApprove {
			if _, err := catalog.LockResource(r.Context(), tx, b.ResourceID); err != nil {
				return err
			}
			conflict, err := ApprovedOverlapExists(r.Context(), tx, b.ResourceID, b.StartTime, b.EndTime, b.ID)
			if err != nil {
				return err
			}
			if conflict {
				api.WriteError(w, http.StatusConflict, "TIME_SLOT_CONFLICT", "an approved booking already occupies this slot")
				return pgx.ErrTxCommitRollback
			}
		}

		if err := UpdateStatus(r.Context(), tx, b.ID, next); err != nil {
			return err
		}
		return audit.Insert(r.Context(), tx, actor.UserID, "BOOKING_REVIEWED", "booking", b.ID,
			map[string]any{"action": req.Action, "from": b.Status, "to": next})
	})
	if err != nil {
		if errors.Is(err, pgx.ErrTxCommitRollback) {
			return
		}
		if errors.Is(err, pgx.ErrNoRows) {
			api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "booking not found")
			return
		}
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}

	api.WriteJSON(w, http.StatusOK, map[string]any{"id": id, "status": next})
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid id")
		return 0, false
	}
	return id, true
}
