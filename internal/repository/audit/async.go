package audit

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/verity/internal/domain"
	"github.com/kailas-cloud/verity/internal/metrics"
)

// Async defaults.
const (
	DefaultBuffer  = 1024
	DefaultTimeout = 2 * time.Second
)

// ErrClosed is returned by Close when the queue is already closed.
var ErrClosed = errors.New("audit: queue closed")

// Writer persists a single audit entry.
type Writer interface {
	Write(ctx context.Context, e domain.AuditEntry) error
}

// Async decouples audit writes from the request path with a bounded queue drained by one worker.
// Record never blocks: entries that do not fit are dropped and counted.
type Async struct {
	writer  Writer
	driver  string
	timeout time.Duration
	logger  *zap.Logger

	mu     sync.RWMutex
	closed bool
	queue  chan domain.AuditEntry
	done   chan struct{}
}

// NewAsync starts the worker. driver labels metrics ("redis", "sqlite").
func NewAsync(w Writer, driver string, buffer int, timeout time.Duration, logger *zap.Logger) *Async {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	a := &Async{
		writer:  w,
		driver:  driver,
		timeout: timeout,
		logger:  logger,
		queue:   make(chan domain.AuditEntry, buffer),
		done:    make(chan struct{}),
	}
	go a.run()
	return a
}

// Record enqueues an entry.
func (a *Async) Record(e domain.AuditEntry) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.closed {
		metrics.AuditDroppedTotal.Inc()
		return
	}
	select {
	case a.queue <- e:
	default:
		metrics.AuditDroppedTotal.Inc()
		a.logger.Debug("Audit queue full, entry dropped", zap.String("id", e.ID))
	}
}

// Close stops accepting entries and waits for the queue to drain or ctx to expire.
func (a *Async) Close(ctx context.Context) error {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return ErrClosed
	}
	a.closed = true
	close(a.queue)
	a.mu.Unlock()

	select {
	case <-a.done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("drain audit queue: %w", ctx.Err())
	}
}

func (a *Async) run() {
	defer close(a.done)
	for e := range a.queue {
		a.write(e)
	}
}

func (a *Async) write(e domain.AuditEntry) {
	ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
	defer cancel()

	if err := a.writer.Write(ctx, e); err != nil {
		metrics.AuditWritesTotal.WithLabelValues(a.driver, "error").Inc()
		a.logger.Warn("Audit write failed",
			zap.String("driver", a.driver),
			zap.String("id", e.ID),
			zap.Error(err),
		)
		return
	}
	metrics.AuditWritesTotal.WithLabelValues(a.driver, "ok").Inc()
}
