package db

import (
	"context"
	"time"
)

// Store is the main database facade combining all sub-interfaces.
type Store interface {
	Pinger
	StreamStore
	KVStore
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// StreamStore appends entries to capped append-only streams.
type StreamStore interface {
	// XAdd appends fields to stream and returns the generated entry ID.
	// maxLen > 0 trims the stream approximately to that length.
	XAdd(ctx context.Context, stream string, maxLen int64, fields map[string]string) (string, error)
	XLen(ctx context.Context, stream string) (int64, error)
}

// KVStore provides simple key-value operations.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}
