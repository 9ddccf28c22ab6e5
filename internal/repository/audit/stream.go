package audit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/kailas-cloud/verity/internal/domain"
)

// DefaultStream is the Redis stream audit entries are appended to.
const DefaultStream = "verity:audit"

// streamStore is the consumer interface for the stream sink (ISP).
type streamStore interface {
	Ping(ctx context.Context) error
	XAdd(ctx context.Context, stream string, maxLen int64, fields map[string]string) (string, error)
}

// Stream writes audit entries to a capped Redis stream.
type Stream struct {
	store  streamStore
	stream string
	maxLen int64
}

// NewStream creates a stream sink. maxLen <= 0 leaves the stream untrimmed.
func NewStream(s streamStore, stream string, maxLen int64) *Stream {
	if stream == "" {
		stream = DefaultStream
	}
	return &Stream{store: s, stream: stream, maxLen: maxLen}
}

// Write appends one entry.
func (s *Stream) Write(ctx context.Context, e domain.AuditEntry) error {
	if _, err := s.store.XAdd(ctx, s.stream, s.maxLen, streamFields(e)); err != nil {
		return fmt.Errorf("append audit entry %s: %w", e.ID, err)
	}
	return nil
}

// Ping checks the backing store.
func (s *Stream) Ping(ctx context.Context) error {
	if err := s.store.Ping(ctx); err != nil {
		return fmt.Errorf("audit stream: %w", err)
	}
	return nil
}

func streamFields(e domain.AuditEntry) map[string]string {
	return map[string]string{
		"id":         e.ID,
		"text":       e.Text,
		"label":      string(e.Label),
		"confidence": strconv.FormatFloat(e.Confidence, 'f', 4, 64),
		"status":     string(e.Status),
		"created_at": e.CreatedAt.Format(time.RFC3339Nano),
	}
}
