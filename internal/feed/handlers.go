package feed

import (
	"net/http"

	"spacebook/internal/api"
	"spacebook/internal/booking"
	"spacebook/internal/permission"
)

type Handlers struct {
	Bookings *booking.Repository
}

// Events serves the calendar feed. Admin sessions receive every booking;
// anonymous callers and non-admin sessions receive only Approved bookings,
// with owner identities redacted by the projection.
func (h Handlers) Events(w http.ResponseWriter, r *http.Request) {
	isAdmin := api.MaskFromContext(r.Context()).Has(permission.Admin)

	var (
		items []booking.ListItem
		err   error
	)
	if isAdmin {
		items, err = h.Bookings.ListAll(r.Context())
	} else {
		items, err = h.Bookings.ListByStatus(r.Context(), booking.StatusApproved)
	}
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}

	api.WriteJSON(w, http.StatusOK, Project(items, isAdmin))
}
