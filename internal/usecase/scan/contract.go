package scan

import (
	"context"

	"github.com/kailas-cloud/verity/internal/domain"
)

// Fetcher downloads a page and extracts its readable text.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) (domain.Page, error)
}

// Limiter admits or rejects a scan without blocking.
type Limiter interface {
	Allow() bool
}
