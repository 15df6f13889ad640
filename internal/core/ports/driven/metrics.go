package driven

import "time"

// Metrics records aggregation pipeline measurements.
type Metrics interface {
	// ObserveProvider records one provider call and its item count.
	ObserveProvider(provider string, d time.Duration, items int)

	// ObserveAggregation records one full pipeline run.
	ObserveAggregation(d time.Duration, items int)

	// CacheHit counts a result served from the cache.
	CacheHit()

	// CacheMiss counts a request that ran the pipeline.
	CacheMiss()
}
