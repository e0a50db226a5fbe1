package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cinebook/cinebook/internal/audit"
	"github.com/cinebook/cinebook/internal/catalog"
	"github.com/cinebook/cinebook/internal/httperr"
)

// Showtimes serves the showtime endpoints. Showtime values are opaque,
// service-specific structures passed through untouched.
type Showtimes struct {
	store  *catalog.Store[json.RawMessage]
	audit  audit.Recorder
	logger *slog.Logger
}

// NewShowtimes creates the showtime service handler.
func NewShowtimes(store *catalog.Store[json.RawMessage], recorder audit.Recorder, logger *slog.Logger) *Showtimes {
	return &Showtimes{store: store, audit: recorder, logger: logger}
}

// Index is the discovery document.
// GET /
func (h *Showtimes) Index(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, discovery{
		URI: "/",
		SubresourceURIs: map[string]string{
			"showtimes": "/showtimes",
			"showtime":  "/showtimes/<date>",
		},
	})
}

// List returns every showtime keyed by date.
// GET /showtimes
func (h *Showtimes) List(w http.ResponseWriter, r *http.Request) {
	h.audit.Record(r.Context(), audit.Entry{
		Action:   "showtimes.list.accessed",
		Resource: "showtimes_list",
		Result:   audit.ResultSuccess,
	})

	writeJSON(w, http.StatusOK, h.store.All())
}

// Get returns the showtimes for one date.
// GET /showtimes/{date}
func (h *Showtimes) Get(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")

	raw, err := h.store.Get(date)
	if err != nil {
		writeError(w, httperr.NotFound("no showtimes found for date '%s'", date))
		return
	}

	h.audit.Record(r.Context(), audit.Entry{
		Action:     "showtimes.date.accessed",
		Resource:   "showtimes",
		ResourceID: date,
		Result:     audit.ResultSuccess,
	})

	writeJSON(w, http.StatusOK, raw)
}
