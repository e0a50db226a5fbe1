package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cinebook/cinebook/internal/model"
)

// Bookings is a client for the bookings service.
type Bookings struct {
	baseURL       string
	internalToken string
	http          *http.Client
}

// NewBookings returns a Bookings client for the service at baseURL.
// internalToken is the shared secret granting access to unfiltered records.
func NewBookings(baseURL string, timeout time.Duration, internalToken string) *Bookings {
	return &Bookings{
		baseURL:       strings.TrimRight(baseURL, "/"),
		internalToken: internalToken,
		http:          newHTTPClient(timeout),
	}
}

// UserBookings fetches the raw booking map for username.
// A 404 maps to ErrNoBookings; transport failures map to ErrUnavailable.
func (c *Bookings) UserBookings(ctx context.Context, username string) (model.BookingDays, error) {
	endpoint := c.baseURL + "/bookings/" + url.PathEscape(username)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build bookings request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer internal")
	// The gateway is a privileged caller: it needs the unfiltered
	// transaction records to build enriched responses.
	if c.internalToken != "" {
		req.Header.Set(InternalHeader, c.internalToken)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("bookings service: %w", ErrUnavailable)
	}
	defer drainAndClose(resp.Body)

	switch resp.StatusCode {
	case http.StatusOK:
		var days model.BookingDays
		if err := json.NewDecoder(resp.Body).Decode(&days); err != nil {
			return nil, fmt.Errorf("decode bookings response: %w", err)
		}
		return days, nil
	case http.StatusNotFound:
		return nil, ErrNoBookings
	default:
		return nil, fmt.Errorf("bookings service: unexpected status %d", resp.StatusCode)
	}
}

// drainAndClose consumes the remainder of a response body so the
// connection can be reused, then closes it.
func drainAndClose(body io.ReadCloser) {
	_, _ = io.Copy(io.Discard, io.LimitReader(body, 1<<20))
	_ = body.Close()
}
