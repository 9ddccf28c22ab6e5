package model

import (
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/kailas-cloud/verity/internal/domain"
	"github.com/kailas-cloud/verity/internal/metrics"
)

// Availability is the outcome of obtaining the model: Ready with a pipeline, or Unavailable with a reason.
// The zero value is Unavailable.
type Availability struct {
	pipeline *Pipeline
	reason   error
}

// Ready wraps a loaded pipeline.
func Ready(p *Pipeline) Availability {
	return Availability{pipeline: p}
}

// Unavailable records why the model cannot be used. The reason always matches ErrModelUnavailable.
func Unavailable(reason error) Availability {
	if reason == nil {
		reason = domain.ErrModelUnavailable
	} else if !errors.Is(reason, domain.ErrModelUnavailable) {
		reason = fmt.Errorf("%w: %w", domain.ErrModelUnavailable, reason)
	}
	return Availability{reason: reason}
}

// Pipeline returns the pipeline when the model is ready.
func (a Availability) Pipeline() (*Pipeline, bool) {
	return a.pipeline, a.pipeline != nil
}

// Reason returns why the model is unavailable, or nil when ready.
func (a Availability) Reason() error {
	if a.pipeline != nil {
		return nil
	}
	if a.reason == nil {
		return domain.ErrModelUnavailable
	}
	return a.reason
}

// Source hands out the model state. Implementations must return the same state on every call.
type Source interface {
	Availability() Availability
}

// Static is a Source with a fixed state, used for eager loading and tests.
type Static struct {
	state Availability
}

// NewStatic creates a Source that always returns state.
func NewStatic(state Availability) *Static {
	return &Static{state: state}
}

// Availability returns the fixed state.
func (s *Static) Availability() Availability { return s.state }

// Lazy loads the artifact on first use. The outcome, success or failure, is kept for the process lifetime.
type Lazy struct {
	path   string
	logger *zap.Logger
	once   sync.Once
	state  Availability
}

// NewLazy creates a Source that loads path on the first Availability call.
func NewLazy(path string, logger *zap.Logger) *Lazy {
	return &Lazy{path: path, logger: logger}
}

// Availability loads the model once; concurrent first callers wait for the same outcome.
func (l *Lazy) Availability() Availability {
	l.once.Do(func() {
		l.state = Resolve(l.path, l.logger)
	})
	return l.state
}

// Resolve loads the artifact at path and never fails: any error, including a panic
// while decoding, yields Unavailable.
func Resolve(path string, logger *zap.Logger) (state Availability) {
	defer func() {
		if r := recover(); r != nil {
			state = Unavailable(fmt.Errorf("panic loading %s: %v", path, r))
		}
		if _, ok := state.Pipeline(); ok {
			metrics.ModelReady.Set(1)
			logger.Info("Model loaded", zap.String("path", path))
		} else {
			metrics.ModelReady.Set(0)
			logger.Warn("Model unavailable, serving heuristics",
				zap.String("path", path),
				zap.Error(state.Reason()),
			)
		}
	}()

	p, a, err := Open(path)
	if err != nil {
		return Unavailable(err)
	}
	logger.Debug("Artifact decoded",
		zap.Int("vocabulary", len(a.Vocabulary)),
		zap.Int("members", len(a.Members)),
		zap.Time("trained_at", a.Info.CreatedAt),
	)
	return Ready(p)
}
