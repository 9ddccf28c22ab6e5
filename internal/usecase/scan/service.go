package scan

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/kailas-cloud/verity/internal/domain"
	"github.com/kailas-cloud/verity/internal/logger"
	"github.com/kailas-cloud/verity/internal/metrics"
)

// Service extracts article text from URLs for later classification.
type Service struct {
	fetcher Fetcher
	limiter Limiter
	logger  *zap.Logger
}

// NewLimiter returns a token bucket refilled at perSec with the given burst.
// perSec <= 0 disables limiting.
func NewLimiter(perSec float64, burst int) *rate.Limiter {
	if perSec <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	if burst <= 0 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(perSec), burst)
}

// New creates a scan service. limiter can be nil.
func New(fetcher Fetcher, limiter Limiter, logger *zap.Logger) *Service {
	return &Service{fetcher: fetcher, limiter: limiter, logger: logger}
}

// Scan validates rawURL and fetches its page.
// Errors wrap domain.ErrInvalidURL, domain.ErrRateLimited or domain.ErrFetchFailed.
func (s *Service) Scan(ctx context.Context, rawURL string) (domain.Page, error) {
	u, err := domain.ParseScanURL(rawURL)
	if err != nil {
		return domain.Page{}, err
	}

	if s.limiter != nil && !s.limiter.Allow() {
		metrics.FetchRequestsTotal.WithLabelValues("rate_limited").Inc()
		return domain.Page{}, fmt.Errorf("%w: too many url scans", domain.ErrRateLimited)
	}

	start := time.Now()
	page, err := s.fetcher.Fetch(ctx, u.String())
	metrics.FetchDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.FetchRequestsTotal.WithLabelValues("error").Inc()
		logger.FromContext(ctx).Warn("URL scan failed", zap.String("host", u.Host), zap.Error(err))
		if !errors.Is(err, domain.ErrFetchFailed) {
			err = fmt.Errorf("%w: %w", domain.ErrFetchFailed, err)
		}
		return domain.Page{}, err
	}

	metrics.FetchRequestsTotal.WithLabelValues("ok").Inc()
	return page, nil
}
