package webclient

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	// DefaultRequestsPerSecond is the sustained per-host request rate.
	DefaultRequestsPerSecond = 3.0

	// DefaultBurst is the per-host burst size.
	DefaultBurst = 5

	// DefaultBackoff applies after a 429 without a usable Retry-After.
	DefaultBackoff = 30 * time.Second

	// HeaderRetryAfter is the retry-after header (seconds).
	HeaderRetryAfter = "Retry-After"
)

// RateLimiter throttles requests per host with a token bucket and honours
// Retry-After backoff after 429 responses.
type RateLimiter struct {
	mu       sync.Mutex
	rps      rate.Limit
	burst    int
	limiters map[string]*rate.Limiter
	retryAt  map[string]time.Time
}

// NewRateLimiter creates a limiter allowing rps requests per second per host.
func NewRateLimiter(rps float64, burst int) *RateLimiter {
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{
		rps:      rate.Limit(rps),
		burst:    burst,
		limiters: make(map[string]*rate.Limiter),
		retryAt:  make(map[string]time.Time),
	}
}

// Wait blocks until a request to host is allowed. A host in backoff whose
// retry time falls after the context deadline fails fast with a
// RateLimitError, since providers make a single attempt.
func (r *RateLimiter) Wait(ctx context.Context, host string) error {
	r.mu.Lock()
	limiter, ok := r.limiters[host]
	if !ok {
		limiter = rate.NewLimiter(r.rps, r.burst)
		r.limiters[host] = limiter
	}
	retryAt := r.retryAt[host]
	r.mu.Unlock()

	if wait := time.Until(retryAt); wait > 0 {
		if deadline, ok := ctx.Deadline(); ok && deadline.Before(retryAt) {
			return &RateLimitError{Host: host, RetryAt: retryAt}
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}

	return limiter.Wait(ctx)
}

// Backoff records a rate-limit response for host and returns the error
// describing it.
func (r *RateLimiter) Backoff(host string, resp *http.Response) *RateLimitError {
	delay := DefaultBackoff
	if resp != nil {
		if seconds, err := strconv.Atoi(resp.Header.Get(HeaderRetryAfter)); err == nil && seconds >= 0 {
			delay = time.Duration(seconds) * time.Second
		}
	}
	retryAt := time.Now().Add(delay)

	r.mu.Lock()
	if retryAt.After(r.retryAt[host]) {
		r.retryAt[host] = retryAt
	}
	r.mu.Unlock()

	return &RateLimitError{Host: host, RetryAt: retryAt}
}

// RetryAt returns when host leaves backoff. The zero time means no backoff.
func (r *RateLimiter) RetryAt(host string) time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.retryAt[host]
}
