package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cinebook/cinebook/internal/audit"
	"github.com/cinebook/cinebook/internal/catalog"
	"github.com/cinebook/cinebook/internal/gateway"
	"github.com/cinebook/cinebook/internal/httperr"
	"github.com/cinebook/cinebook/internal/model"
)

// Users serves the user service endpoints, including the aggregate
// user-bookings endpoint backed by the gateway.
type Users struct {
	store   *catalog.Store[model.User]
	gateway *gateway.Service
	audit   audit.Recorder
	logger  *slog.Logger
}

// NewUsers creates the user service handler.
func NewUsers(store *catalog.Store[model.User], gw *gateway.Service, recorder audit.Recorder, logger *slog.Logger) *Users {
	return &Users{store: store, gateway: gw, audit: recorder, logger: logger}
}

// Index is the discovery document.
// GET /
func (h *Users) Index(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, discovery{
		URI: "/",
		SubresourceURIs: map[string]string{
			"users":     "/users",
			"user":      "/users/<username>",
			"bookings":  "/users/<username>/bookings",
			"suggested": "/users/<username>/suggested",
		},
	})
}

// List returns every user with PII stripped.
// GET /users
func (h *Users) List(w http.ResponseWriter, r *http.Request) {
	users := h.store.All()
	filtered := make(map[string]model.User, len(users))
	for username, u := range users {
		filtered[username] = u.PublicView()
	}

	h.audit.Record(r.Context(), audit.Entry{
		Action:   "users.list.accessed",
		Resource: "users_list",
		Result:   audit.ResultSuccess,
	})

	writeJSON(w, http.StatusOK, filtered)
}

// Profile returns a single user record. The profile view is the only
// path that reveals the email address.
// GET /users/{username}
func (h *Users) Profile(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	user, err := h.store.Get(username)
	if err != nil {
		writeError(w, httperr.NotFound("user '%s' not found", username))
		return
	}

	h.audit.Record(r.Context(), audit.Entry{
		Action:   "user.profile.accessed",
		Resource: "user_profile",
		UserID:   username,
		Result:   audit.ResultSuccess,
	})

	writeJSON(w, http.StatusOK, user)
}

// Bookings returns the user's bookings enriched with movie details.
// GET /users/{username}/bookings
func (h *Users) Bookings(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	result, err := h.gateway.UserBookings(r.Context(), username)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Suggested is the movie-suggestion endpoint. There is no reference
// algorithm; the endpoint reports itself unimplemented.
// GET /users/{username}/suggested
func (h *Users) Suggested(w http.ResponseWriter, r *http.Request) {
	writeError(w, httperr.NotImplemented("movie suggestions are not implemented"))
}
