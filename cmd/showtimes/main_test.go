package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/cinebook/cinebook/internal/audit"
	"github.com/cinebook/cinebook/internal/cache"
	"github.com/cinebook/cinebook/internal/catalog"
	"github.com/cinebook/cinebook/internal/config"
	"github.com/cinebook/cinebook/internal/handler"
	"github.com/cinebook/cinebook/internal/testutil"
)

// countingLimiter is an in-memory token bucket keyed by scope and IP.
type countingLimiter struct {
	mu   sync.Mutex
	hits map[string]int
}

func (l *countingLimiter) CheckRateLimit(ctx context.Context, scope, ip string, ratePerMinute, burst int) (*cache.RateLimitResult, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.hits == nil {
		l.hits = make(map[string]int)
	}
	l.hits[scope+":"+ip]++
	remaining := int64(burst - l.hits[scope+":"+ip])
	if remaining < 0 {
		return &cache.RateLimitResult{
			Allowed:    false,
			RetryAfter: time.Second,
			ResetAt:    time.Now().Add(time.Second),
		}, nil
	}
	return &cache.RateLimitResult{Allowed: true, Remaining: remaining, ResetAt: time.Now()}, nil
}

func showtimeHandler(t *testing.T) *handler.Showtimes {
	t.Helper()
	path := filepath.Join(t.TempDir(), "showtimes.json")
	fixture := `{"20151201": ["m1", "m2"]}`
	if err := os.WriteFile(path, []byte(fixture), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	store, err := catalog.Load[json.RawMessage](path)
	if err != nil {
		t.Fatalf("load fixture: %v", err)
	}
	return handler.NewShowtimes(store, audit.NewNoop(), testutil.DiscardLogger())
}

func TestRouter_GetByDateHasEndpointQuota(t *testing.T) {
	cfg := &config.Config{
		RateLimitEnabled:           true,
		RateLimitServicePerMinute:  1000,
		RateLimitServiceBurst:      1000,
		RateLimitEndpointPerMinute: 60,
		RateLimitEndpointBurst:     60,
	}
	r := setupRouter(showtimeHandler(t), &countingLimiter{}, cfg, testutil.DiscardLogger())

	for i := 1; i <= 60; i++ {
		req := httptest.NewRequest(http.MethodGet, "/showtimes/19700101", nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("request %d: expected 404, got %d", i, rec.Code)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/showtimes/19700101", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 on request 61, got %d", rec.Code)
	}
}
