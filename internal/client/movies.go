package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cinebook/cinebook/internal/model"
)

// Movies is a client for the movies service.
type Movies struct {
	baseURL string
	http    *http.Client
}

// NewMovies returns a Movies client for the service at baseURL.
func NewMovies(baseURL string, timeout time.Duration) *Movies {
	return &Movies{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    newHTTPClient(timeout),
	}
}

// Movie fetches one movie record by ID.
// A 404 maps to ErrMovieNotFound; transport failures map to ErrUnavailable.
func (c *Movies) Movie(ctx context.Context, id string) (*model.Movie, error) {
	endpoint := c.baseURL + "/movies/" + url.PathEscape(id)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build movie request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("movie service: %w", ErrUnavailable)
	}
	defer drainAndClose(resp.Body)

	switch resp.StatusCode {
	case http.StatusOK:
		var movie model.Movie
		if err := json.NewDecoder(resp.Body).Decode(&movie); err != nil {
			return nil, fmt.Errorf("decode movie response: %w", err)
		}
		return &movie, nil
	case http.StatusNotFound:
		return nil, fmt.Errorf("movie %q: %w", id, ErrMovieNotFound)
	default:
		return nil, fmt.Errorf("movie service: unexpected status %d", resp.StatusCode)
	}
}
