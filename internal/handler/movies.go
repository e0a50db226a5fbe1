package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cinebook/cinebook/internal/audit"
	"github.com/cinebook/cinebook/internal/catalog"
	"github.com/cinebook/cinebook/internal/httperr"
	"github.com/cinebook/cinebook/internal/model"
)

// Movies serves the movie catalog endpoints.
type Movies struct {
	store  *catalog.Store[model.Movie]
	audit  audit.Recorder
	logger *slog.Logger
}

// NewMovies creates the movie service handler.
func NewMovies(store *catalog.Store[model.Movie], recorder audit.Recorder, logger *slog.Logger) *Movies {
	return &Movies{store: store, audit: recorder, logger: logger}
}

// Index is the discovery document.
// GET /
func (h *Movies) Index(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, discovery{
		URI: "/",
		SubresourceURIs: map[string]string{
			"movies": "/movies",
			"movie":  "/movies/<id>",
		},
	})
}

// List returns the full movie catalog.
// GET /movies
func (h *Movies) List(w http.ResponseWriter, r *http.Request) {
	h.audit.Record(r.Context(), audit.Entry{
		Action:   "movies.catalog.accessed",
		Resource: "movie_catalog",
		Result:   audit.ResultSuccess,
	})

	writeJSON(w, http.StatusOK, h.store.All())
}

// Get returns one movie with its resource URI attached.
// GET /movies/{id}
func (h *Movies) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	movie, err := h.store.Get(id)
	if err != nil {
		writeError(w, httperr.NotFound("movie '%s' not found", id))
		return
	}
	movie.URI = "/movies/" + id

	h.audit.Record(r.Context(), audit.Entry{
		Action:     "movie.info.retrieved",
		Resource:   "movie",
		ResourceID: id,
		Result:     audit.ResultSuccess,
	})

	writeJSON(w, http.StatusOK, movie)
}
