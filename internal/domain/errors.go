package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrModelUnavailable signals that no trained artifact could be loaded.
	ErrModelUnavailable = errors.New("model unavailable")
	// ErrArtifactCorrupt signals an artifact that cannot be decoded or violates its invariants.
	ErrArtifactCorrupt = errors.New("artifact corrupt")
	// ErrArtifactVersion signals an artifact written in an unsupported format version.
	ErrArtifactVersion = errors.New("unsupported artifact version")
	// ErrAnalysisDegraded signals that a heuristic sub-computation failed and defaults were used.
	ErrAnalysisDegraded = errors.New("analysis degraded")
	// ErrServingFailure signals an unexpected failure in the orchestration layer.
	ErrServingFailure = errors.New("serving failure")

	// ErrInvalidURL signals a URL that cannot be scanned.
	ErrInvalidURL = errors.New("invalid url")
	// ErrFetchFailed signals a remote page that could not be fetched or parsed.
	ErrFetchFailed = errors.New("fetch failed")
	// ErrRateLimited signals a rate limit hit.
	ErrRateLimited = errors.New("rate limited")

	// ErrInvalidCorpus signals unusable training input.
	ErrInvalidCorpus = errors.New("invalid corpus")
	// ErrNarratorFailed signals an explanation provider failure.
	ErrNarratorFailed = errors.New("narrator failed")
	// ErrInvalidExplainMode signals an unknown explanation mode.
	ErrInvalidExplainMode = errors.New("invalid explain mode")
)

// UnavailableError carries the reason a model could not be loaded.
type UnavailableError struct {
	Path   string
	Reason error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrModelUnavailable.Error(), e.Path, e.Reason)
}

func (e *UnavailableError) Unwrap() []error { return []error{ErrModelUnavailable, e.Reason} }

// NewUnavailable creates a model unavailability error for the artifact at path.
func NewUnavailable(path string, reason error) error {
	return &UnavailableError{Path: path, Reason: reason}
}
