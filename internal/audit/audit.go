// Package audit emits structured access records for compliance.
// Recording is side-effect-only: a failed or slow audit write must never
// affect the primary response path.
package audit

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// Result values for audit entries.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

// Entry describes one access to a resource.
type Entry struct {
	ID               string   `json:"id"`
	Action           string   `json:"action"`
	Resource         string   `json:"resource"`
	ResourceID       string   `json:"resource_id,omitempty"`
	UserID           string   `json:"user_id,omitempty"`
	TransactionCount int      `json:"transaction_count,omitempty"`
	TransactionIDs   []string `json:"transaction_ids,omitempty"`
	Result           string   `json:"result"`
	At               int64    `json:"at"`
}

// Recorder captures audit entries. Implementations must not block the
// caller beyond trivially short work and must swallow their own errors.
type Recorder interface {
	Record(ctx context.Context, e Entry)
}

// stamp fills in the generated fields of an entry.
func stamp(e Entry) Entry {
	if e.ID == "" {
		e.ID = ulid.Make().String()
	}
	if e.At == 0 {
		e.At = time.Now().Unix()
	}
	return e
}

// LogRecorder writes audit entries to the structured log.
type LogRecorder struct {
	logger *slog.Logger
}

// NewLogRecorder returns a Recorder backed by logger.
func NewLogRecorder(logger *slog.Logger) *LogRecorder {
	return &LogRecorder{logger: logger.With("component", "audit")}
}

// Record logs the entry at info level.
func (r *LogRecorder) Record(ctx context.Context, e Entry) {
	e = stamp(e)

	attrs := []slog.Attr{
		slog.String("audit_id", e.ID),
		slog.String("action", e.Action),
		slog.String("resource", e.Resource),
		slog.String("result", e.Result),
	}
	if e.ResourceID != "" {
		attrs = append(attrs, slog.String("resource_id", e.ResourceID))
	}
	if e.UserID != "" {
		attrs = append(attrs, slog.String("user_id", e.UserID))
	}
	if e.TransactionCount > 0 {
		attrs = append(attrs, slog.Int("transaction_count", e.TransactionCount))
	}
	if len(e.TransactionIDs) > 0 {
		attrs = append(attrs, slog.Any("transaction_ids", e.TransactionIDs))
	}

	r.logger.LogAttrs(ctx, slog.LevelInfo, "audit record", attrs...)
}

// NoopRecorder discards all entries.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards everything.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

// Record is a no-op.
func (NoopRecorder) Record(ctx context.Context, e Entry) {}

// CaptureRecorder retains entries in memory for test assertions.
type CaptureRecorder struct {
	mu      sync.Mutex
	entries []Entry
}

// NewCapture returns an empty CaptureRecorder.
func NewCapture() *CaptureRecorder {
	return &CaptureRecorder{}
}

// Record appends the stamped entry.
func (r *CaptureRecorder) Record(ctx context.Context, e Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, stamp(e))
}

// Entries returns a copy of everything recorded so far.
func (r *CaptureRecorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}
