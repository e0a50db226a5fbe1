package audit

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// StreamKey is the Redis stream audit entries are appended to.
	StreamKey = "stream:audit_records"

	// MaxStreamLen is the approximate max length of the stream.
	MaxStreamLen = 100000

	// PublishTimeout is the max time to wait for a Redis publish.
	PublishTimeout = 100 * time.Millisecond
)

// StreamRecorder appends audit entries to a capped Redis stream in addition
// to the structured log. Publishing is fire-and-forget: a failed XADD is
// logged and dropped, it never reaches the request path.
type StreamRecorder struct {
	redis  *redis.Client
	log    *LogRecorder
	logger *slog.Logger
}

// NewStreamRecorder returns a Recorder publishing to client's audit stream.
func NewStreamRecorder(client *redis.Client, logger *slog.Logger) *StreamRecorder {
	return &StreamRecorder{
		redis:  client,
		log:    NewLogRecorder(logger),
		logger: logger.With("component", "audit.stream"),
	}
}

// Record logs the entry and publishes it asynchronously.
func (r *StreamRecorder) Record(ctx context.Context, e Entry) {
	e = stamp(e)
	r.log.Record(ctx, e)

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), PublishTimeout)
		defer cancel()

		data, err := json.Marshal(e)
		if err != nil {
			r.logger.Warn("failed to encode audit entry", "audit_id", e.ID, "error", err)
			return
		}

		err = r.redis.XAdd(ctx, &redis.XAddArgs{
			Stream: StreamKey,
			MaxLen: MaxStreamLen,
			Approx: true,
			ID:     "*",
			Values: map[string]interface{}{"payload": string(data)},
		}).Err()
		if err != nil {
			r.logger.Warn("failed to publish audit entry", "audit_id", e.ID, "error", err)
		}
	}()
}
