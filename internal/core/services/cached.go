package services

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/custodia-labs/trustsearch/internal/core/domain"
	"github.com/custodia-labs/trustsearch/internal/core/ports/driven"
	"github.com/custodia-labs/trustsearch/internal/core/ports/driving"
	"github.com/custodia-labs/trustsearch/internal/logger"
)

// Ensure CachedAggregator implements the interface.
var _ driving.AggregationService = (*CachedAggregator)(nil)

// DefaultCacheWindow is the width of one cache time bucket.
const DefaultCacheWindow = 300 * time.Second

// CachedAggregator memoises completed aggregation results per time bucket.
//
// An entry lives until the bucket advances, so its effective lifetime is
// anywhere between zero and one window. Identical concurrent misses share
// one pipeline run, which is detached from any single caller's cancellation.
type CachedAggregator struct {
	next    driving.AggregationService
	cache   driven.ResultCache
	window  time.Duration
	now     func() time.Time
	metrics driven.Metrics
	group   singleflight.Group

	// generation is bumped by Purge; runs started before it are not stored.
	generation atomic.Uint64
}

// CacheOption configures a CachedAggregator.
type CacheOption func(*CachedAggregator)

// WithCacheClock sets the clock used to compute time buckets.
func WithCacheClock(now func() time.Time) CacheOption {
	return func(c *CachedAggregator) {
		c.now = now
	}
}

// WithCacheMetrics sets the sink for hit and miss counts.
func WithCacheMetrics(m driven.Metrics) CacheOption {
	return func(c *CachedAggregator) {
		if m != nil {
			c.metrics = m
		}
	}
}

// NewCachedAggregator wraps next with cache. Windows shorter than one
// second are raised to one second.
func NewCachedAggregator(
	next driving.AggregationService,
	cache driven.ResultCache,
	window time.Duration,
	opts ...CacheOption,
) *CachedAggregator {
	if window < time.Second {
		window = time.Second
	}
	c := &CachedAggregator{
		next:    next,
		cache:   cache,
		window:  window,
		now:     time.Now,
		metrics: nopMetrics{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Aggregate returns the cached result for req in the current time bucket,
// running the pipeline on a miss. Invalid requests are rejected before the
// cache is consulted. Callers receive their own copy of the result.
func (c *CachedAggregator) Aggregate(
	ctx context.Context, req domain.AggregateRequest,
) (domain.SectionedResults, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	key := CacheKey(req, c.Bucket())
	if cached, ok := c.cache.Get(key); ok {
		logger.Debug("Cache hit: %s", key)
		c.metrics.CacheHit()
		return cached.Clone(), nil
	}
	logger.Debug("Cache miss: %s", key)
	c.metrics.CacheMiss()

	gen := c.generation.Load()
	ch := c.group.DoChan(fmt.Sprintf("%d|%s", gen, key), func() (any, error) {
		if cached, ok := c.cache.Get(key); ok {
			return cached, nil
		}
		// Providers bound the run with their own timeouts.
		results, err := c.next.Aggregate(context.WithoutCancel(ctx), req)
		if err != nil {
			return nil, err
		}
		if c.generation.Load() == gen {
			c.cache.Add(key, results)
		}
		return results, nil
	})

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("aggregate: %w", ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return nil, fmt.Errorf("aggregate: %w", res.Err)
		}
		if res.Shared {
			logger.Debug("Shared in-flight run for %s", key)
		}
		return res.Val.(domain.SectionedResults).Clone(), nil
	}
}

// Bucket returns the current time bucket number.
func (c *CachedAggregator) Bucket() int64 {
	return c.now().UnixNano() / int64(c.window)
}

// Purge drops every cached result. Runs still in flight finish for their
// callers but are not stored, and later misses start a fresh run.
func (c *CachedAggregator) Purge() {
	c.generation.Add(1)
	c.cache.Purge()
}

// CacheKey builds the cache key for req within bucket.
func CacheKey(req domain.AggregateRequest, bucket int64) string {
	return fmt.Sprintf("%d|%q|%d|%t|%t",
		bucket, req.NormalizedQuery(), req.MaxItemsPerSection, req.IncludeWeb, req.IncludeVideo)
}
