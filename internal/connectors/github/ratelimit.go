package github

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	// SearchRateLimit is the authenticated search quota per minute.
	SearchRateLimit = 30

	// ProactiveRate keeps requests at half the search quota.
	ProactiveRate = 0.5

	// HeaderRateLimit is the rate limit header.
	HeaderRateLimit = "X-RateLimit-Limit"

	// HeaderRateRemaining is the remaining requests header.
	HeaderRateRemaining = "X-RateLimit-Remaining"

	// HeaderRateReset is the reset timestamp header (Unix seconds).
	HeaderRateReset = "X-RateLimit-Reset"
)

// RateLimiter combines a token bucket with the quota reported by GitHub.
type RateLimiter struct {
	mu        sync.Mutex
	remaining int           // From API header
	limit     int           // From API header
	resetTime time.Time     // From API header
	bucket    *rate.Limiter // Proactive throttling
}

// NewRateLimiter creates a rate limiter for the search API.
func NewRateLimiter() *RateLimiter {
	return &RateLimiter{
		remaining: SearchRateLimit,
		limit:     SearchRateLimit,
		bucket:    rate.NewLimiter(rate.Limit(ProactiveRate), 2),
	}
}

// Wait blocks until the token bucket allows a request. When GitHub has
// reported an exhausted quota it returns a RateLimitError until the reset.
func (r *RateLimiter) Wait(ctx context.Context) error {
	r.mu.Lock()
	remaining, limit, resetTime := r.remaining, r.limit, r.resetTime
	r.mu.Unlock()

	if remaining <= 0 && time.Now().Before(resetTime) {
		return &RateLimitError{ResetAt: resetTime, Remaining: remaining, Limit: limit}
	}
	return r.bucket.Wait(ctx)
}

// UpdateFromResponse updates rate limit state from response headers.
func (r *RateLimiter) UpdateFromResponse(resp *http.Response) {
	if resp == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if v, err := strconv.Atoi(resp.Header.Get(HeaderRateRemaining)); err == nil {
		r.remaining = v
	}
	if v, err := strconv.Atoi(resp.Header.Get(HeaderRateLimit)); err == nil {
		r.limit = v
	}
	if v, err := strconv.ParseInt(resp.Header.Get(HeaderRateReset), 10, 64); err == nil {
		r.resetTime = time.Unix(v, 0)
	}
}

// Remaining returns the current remaining requests.
func (r *RateLimiter) Remaining() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.remaining
}

// ResetTime returns the rate limit reset time.
func (r *RateLimiter) ResetTime() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.resetTime
}
