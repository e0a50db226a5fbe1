package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cinebook/cinebook/internal/cache"
	"github.com/cinebook/cinebook/internal/testutil"
)

// Requires a running Redis; skipped when REDIS_URL is unset.
func TestRateLimit_ExhaustsBucket(t *testing.T) {
	redisURL := testutil.RequireEnv(t, "REDIS_URL")

	ctx := context.Background()
	limiter, err := cache.New(ctx, redisURL)
	if err != nil {
		t.Fatalf("connect redis: %v", err)
	}
	defer limiter.Close()

	// Unique scope per run so leftover buckets from earlier runs don't interfere
	scope := fmt.Sprintf("test:%s:%d", t.Name(), time.Now().UnixNano())

	const burst = 60
	handler := RateLimit(RateLimitConfig{
		Logger:    testLogger(),
		Limiter:   limiter,
		Enabled:   true,
		Scope:     scope,
		PerMinute: 60,
		Burst:     burst,
	})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	ip := "203.0.113.250"

	for i := 1; i <= burst; i++ {
		req := httptest.NewRequest(http.MethodGet, "/movies", nil)
		req.Header.Set("X-Forwarded-For", ip)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, rec.Code)
		}
	}

	// Bucket drained: the 61st request inside the window is rejected
	req := httptest.NewRequest(http.MethodGet, "/movies", nil)
	req.Header.Set("X-Forwarded-For", ip)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 after exhausting bucket, got %d", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Error("expected Retry-After header on 429")
	}

	// A different client address still has a full bucket
	req = httptest.NewRequest(http.MethodGet, "/movies", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.251")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected fresh client to be allowed, got %d", rec.Code)
	}
}
