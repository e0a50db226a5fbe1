// Package client provides HTTP clients for the downstream cinema services.
// Calls either complete or fail with a typed error; there is no retry logic.
package client

import (
	"errors"
	"net"
	"net/http"
	"time"
)

// Sentinel errors surfaced by the downstream clients. Callers map these to
// caller-facing failures with errors.Is.
var (
	// ErrUnavailable reports a connection failure or timeout.
	ErrUnavailable = errors.New("downstream service unavailable")
	// ErrNoBookings reports that the bookings service has no records
	// for the requested user.
	ErrNoBookings = errors.New("no bookings for user")
	// ErrMovieNotFound reports an unknown movie ID downstream.
	ErrMovieNotFound = errors.New("movie not found")
)

// InternalHeader carries the shared service-to-service token. The bookings
// service returns unfiltered transaction records only when the header value
// matches its configured token, so the gateway can enrich them.
const InternalHeader = "X-Internal-Service"

const (
	// DialTimeout is the connection timeout.
	DialTimeout = 5 * time.Second
	// TLSHandshakeTimeout is the TLS negotiation timeout.
	TLSHandshakeTimeout = 5 * time.Second
	// ResponseHeaderTimeout is time to wait for response headers.
	ResponseHeaderTimeout = 10 * time.Second
)

// newHTTPClient builds an HTTP client for downstream calls with bounded
// timeouts and no redirect following.
func newHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout:   DialTimeout,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			TLSHandshakeTimeout:   TLSHandshakeTimeout,
			ResponseHeaderTimeout: ResponseHeaderTimeout,
			MaxIdleConns:          100,
			MaxIdleConnsPerHost:   10,
			IdleConnTimeout:       90 * time.Second,
		},
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}
