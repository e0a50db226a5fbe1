package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cinebook/cinebook/internal/audit"
	"github.com/cinebook/cinebook/internal/catalog"
	"github.com/cinebook/cinebook/internal/client"
	"github.com/cinebook/cinebook/internal/httperr"
	"github.com/cinebook/cinebook/internal/model"
)

// Bookings serves the booking service endpoints. External responses go
// through the financial-field filter; only internal service callers see
// raw transaction records.
type Bookings struct {
	store         *catalog.Store[model.BookingDays]
	internalToken string
	audit         audit.Recorder
	logger        *slog.Logger
}

// NewBookings creates the booking service handler. internalToken is the
// shared secret other services present to read raw records; empty disables
// the privileged path.
func NewBookings(store *catalog.Store[model.BookingDays], internalToken string, recorder audit.Recorder, logger *slog.Logger) *Bookings {
	return &Bookings{store: store, internalToken: internalToken, audit: recorder, logger: logger}
}

// Index is the discovery document.
// GET /
func (h *Bookings) Index(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, discovery{
		URI: "/",
		SubresourceURIs: map[string]string{
			"bookings": "/bookings",
			"booking":  "/bookings/<username>",
		},
	})
}

// List returns all bookings across all users, filtered.
// GET /bookings
func (h *Bookings) List(w http.ResponseWriter, r *http.Request) {
	all := h.store.All()
	filtered := make(map[string]model.BookingDays, len(all))
	for username, days := range all {
		filtered[username] = days.Filtered()
	}

	h.audit.Record(r.Context(), audit.Entry{
		Action:   "bookings.list.accessed",
		Resource: "all_bookings",
		Result:   audit.ResultSuccess,
	})

	writeJSON(w, http.StatusOK, filtered)
}

// Get returns one user's bookings. External callers get the filtered view;
// internal services (the aggregation gateway) get the raw transactions.
// GET /bookings/{username}
func (h *Bookings) Get(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	days, err := h.store.Get(username)
	if err != nil {
		writeError(w, httperr.NotFound("no bookings found for user '%s'", username))
		return
	}

	count := 0
	for _, transactions := range days {
		count += len(transactions)
	}

	h.audit.Record(r.Context(), audit.Entry{
		Action:           "bookings.user.accessed",
		Resource:         "user_bookings",
		UserID:           username,
		TransactionCount: count,
		Result:           audit.ResultSuccess,
	})

	// Header presence alone is not enough: the caller must present the
	// configured shared token.
	if h.internalToken != "" && r.Header.Get(client.InternalHeader) == h.internalToken {
		writeJSON(w, http.StatusOK, days)
		return
	}
	writeJSON(w, http.StatusOK, days.Filtered())
}
