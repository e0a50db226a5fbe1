package middleware

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRequireAuth(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Token abc123", http.StatusUnauthorized},
		{"basic scheme", "Basic dXNlcjpwYXNz", http.StatusUnauthorized},
		{"bearer no token", "Bearer", http.StatusUnauthorized},
		{"bearer empty token", "Bearer   ", http.StatusUnauthorized},
		{"bearer any token", "Bearer anything-goes", http.StatusOK},
		{"bearer lowercase scheme", "bearer tok123", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nextCalled := false
			handler := RequireAuth(testLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodGet, "/users", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, rec.Code)
			}

			wantNext := tt.wantStatus == http.StatusOK
			if nextCalled != wantNext {
				t.Errorf("expected nextCalled=%v, got %v", wantNext, nextCalled)
			}

			if tt.wantStatus == http.StatusUnauthorized {
				var body map[string]string
				if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
					t.Fatalf("decode body: %v", err)
				}
				if body["error"] != "valid authentication required" {
					t.Errorf("unexpected error body: %v", body)
				}
				if rec.Header().Get("WWW-Authenticate") == "" {
					t.Error("expected WWW-Authenticate header on 401")
				}
			}
		})
	}
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header     string
		wantToken  string
		wantReason string
	}{
		{"", "", "missing_header"},
		{"Bearer abc", "abc", ""},
		{"Bearer  abc ", "abc", ""},
		{"Token abc", "", "invalid_scheme"},
		{"Bearer ", "", "empty_token"},
	}

	for _, tt := range tests {
		token, reason := bearerToken(tt.header)
		if token != tt.wantToken || reason != tt.wantReason {
			t.Errorf("bearerToken(%q) = (%q, %q), want (%q, %q)",
				tt.header, token, reason, tt.wantToken, tt.wantReason)
		}
	}
}
