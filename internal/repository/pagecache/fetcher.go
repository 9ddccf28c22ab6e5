package pagecache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/verity/internal/db"
	"github.com/kailas-cloud/verity/internal/domain"
)

const cacheKeyPrefix = "verity:page_cache:"

// fetcher is the decorated page source.
type fetcher interface {
	Fetch(ctx context.Context, rawURL string) (domain.Page, error)
}

// store is the consumer interface for the page cache (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// CachedFetcher caches extracted pages in a key-value store for a fixed TTL.
// Cache failures are logged and never fail a fetch.
type CachedFetcher struct {
	inner      fetcher
	store      store
	ttl        time.Duration
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

// New creates a caching decorator.
// cacheTotal is a counter vec with label "result" ("hit"/"miss"), passed explicitly.
func New(
	inner fetcher,
	s store,
	ttl time.Duration,
	cacheTotal *prometheus.CounterVec,
	logger *zap.Logger,
) *CachedFetcher {
	return &CachedFetcher{
		inner:      inner,
		store:      s,
		ttl:        ttl,
		cacheTotal: cacheTotal,
		logger:     logger,
	}
}

// Fetch returns a cached page or calls the inner fetcher.
func (c *CachedFetcher) Fetch(ctx context.Context, rawURL string) (domain.Page, error) {
	key := cacheKey(rawURL)

	if page, ok := c.getFromCache(ctx, key); ok {
		c.incCache("hit")
		return page, nil
	}
	c.incCache("miss")

	page, err := c.inner.Fetch(ctx, rawURL)
	if err != nil {
		return domain.Page{}, fmt.Errorf("fetch page: %w", err)
	}

	c.putToCache(ctx, key, page)
	return page, nil
}

func (c *CachedFetcher) incCache(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}

func cacheKey(rawURL string) string {
	h := sha256.Sum256([]byte(rawURL))
	return cacheKeyPrefix + hex.EncodeToString(h[:])
}

type cachedPage struct {
	URL   string `json:"url"`
	Title string `json:"title"`
	Text  string `json:"text"`
}

func (c *CachedFetcher) getFromCache(ctx context.Context, key string) (domain.Page, bool) {
	data, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			c.logger.Warn("Failed to get cached page", zap.String("key", key), zap.Error(err))
		}
		return domain.Page{}, false
	}
	if len(data) == 0 {
		return domain.Page{}, false
	}

	var cp cachedPage
	if err := json.Unmarshal(data, &cp); err != nil {
		c.logger.Warn("Failed to parse cached page", zap.String("key", key), zap.Error(err))
		return domain.Page{}, false
	}
	return domain.Page{URL: cp.URL, Title: cp.Title, Text: cp.Text}, true
}

func (c *CachedFetcher) putToCache(ctx context.Context, key string, page domain.Page) {
	data, err := json.Marshal(cachedPage{URL: page.URL, Title: page.Title, Text: page.Text})
	if err != nil {
		c.logger.Warn("Failed to encode page", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.store.SetWithTTL(ctx, key, data, c.ttl); err != nil {
		c.logger.Warn("Failed to cache page", zap.String("key", key), zap.Error(err))
	}
}
