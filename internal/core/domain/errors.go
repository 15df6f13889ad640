package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrInvalidInput indicates malformed or out-of-range request input.
	// It is the only error class an aggregation surfaces to its caller.
	ErrInvalidInput = errors.New("invalid input")

	// ErrMissingCredentials indicates a provider needs an API key that is not configured.
	// Providers treat this as an empty contribution, not a failure.
	ErrMissingCredentials = errors.New("missing credentials")

	// ErrRateLimited indicates an upstream API rejected the request for rate reasons.
	ErrRateLimited = errors.New("rate limited")

	// ErrProviderUnavailable indicates an upstream source could not be reached
	// or returned a payload that could not be parsed.
	ErrProviderUnavailable = errors.New("provider unavailable")

	// ErrNotFound indicates the requested provider or key does not exist.
	ErrNotFound = errors.New("not found")
)
