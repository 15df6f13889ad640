package google

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// ServiceType identifies a Google API service for rate limiting purposes.
type ServiceType string

const (
	// ServiceCustomSearch is the Custom Search JSON API.
	ServiceCustomSearch ServiceType = "customsearch"
	// ServiceYouTube is the YouTube Data API.
	ServiceYouTube ServiceType = "youtube"
)

// RateLimitConfig holds rate limiting configuration for a service.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained rate limit.
	RequestsPerSecond float64
	// BurstSize is the maximum burst size.
	BurstSize int
}

// DefaultRateLimits keeps each service well below its published quota.
var DefaultRateLimits = map[ServiceType]RateLimitConfig{
	ServiceCustomSearch: {RequestsPerSecond: 1.0, BurstSize: 3}, // 100 queries/day on the free tier
	ServiceYouTube:      {RequestsPerSecond: 1.0, BurstSize: 3}, // search.list costs 100 quota units
}

// defaultBackoff is used when a 429 carries no usable retry hint.
const defaultBackoff = 60 * time.Second

// RateLimiter provides rate limiting for Google API requests.
// It uses a token bucket with a backoff window after rate limit errors.
type RateLimiter struct {
	mu      sync.Mutex
	limiter *rate.Limiter
	retryAt time.Time
	service ServiceType
}

// NewRateLimiter creates a rate limiter for the specified service.
func NewRateLimiter(service ServiceType) *RateLimiter {
	cfg, ok := DefaultRateLimits[service]
	if !ok {
		cfg = RateLimitConfig{RequestsPerSecond: 1.0, BurstSize: 3}
	}
	return NewRateLimiterWithConfig(service, cfg)
}

// NewRateLimiterWithConfig creates a rate limiter with custom configuration.
func NewRateLimiterWithConfig(service ServiceType, cfg RateLimitConfig) *RateLimiter {
	return &RateLimiter{
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.BurstSize),
		service: service,
	}
}

// Service returns the service this limiter guards.
func (r *RateLimiter) Service() ServiceType {
	return r.service
}

// Wait blocks until a request can be made without exceeding the rate limit.
// During a backoff window it fails immediately with a rate limit error
// instead of sleeping past the caller's deadline.
func (r *RateLimiter) Wait(ctx context.Context) error {
	r.mu.Lock()
	retryAt := r.retryAt
	r.mu.Unlock()

	if time.Now().Before(retryAt) {
		return &BackoffError{Service: r.service, RetryAt: retryAt}
	}
	return r.limiter.Wait(ctx)
}

// RecordRateLimitError starts a backoff window. Call this after a 429 or
// quota error from the service.
func (r *RateLimiter) RecordRateLimitError(retryAfter time.Duration) {
	if retryAfter <= 0 {
		retryAfter = defaultBackoff
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.retryAt = time.Now().Add(retryAfter)
}

// Allow checks if a request can be made immediately without blocking.
func (r *RateLimiter) Allow() bool {
	r.mu.Lock()
	retryAt := r.retryAt
	r.mu.Unlock()

	if time.Now().Before(retryAt) {
		return false
	}
	return r.limiter.Allow()
}
