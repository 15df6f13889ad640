// Package webclient is the shared HTTP layer of the source providers.
//
// It wraps net/http with context-aware GET requests, a fixed User-Agent,
// per-host token-bucket rate limiting, bounded body reads, and mapping of
// non-2xx responses to APIError and RateLimitError.
package webclient
