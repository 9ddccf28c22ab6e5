package verity

import "github.com/kailas-cloud/verity/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrServingFailure     = domain.ErrServingFailure
	ErrInvalidExplainMode = domain.ErrInvalidExplainMode
	ErrModelUnavailable   = domain.ErrModelUnavailable
)
