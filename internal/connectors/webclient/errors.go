package webclient

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/custodia-labs/trustsearch/internal/core/domain"
)

// RateLimitError reports a 429 response or a host still in backoff.
type RateLimitError struct {
	Host    string
	RetryAt time.Time
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("webclient: %s rate limited, retry at %s", e.Host, e.RetryAt.Format(time.RFC3339))
}

// Is matches domain.ErrRateLimited.
func (e *RateLimitError) Is(target error) bool {
	return target == domain.ErrRateLimited
}

// APIError represents a non-2xx response.
type APIError struct {
	StatusCode int
	Message    string
	URL        string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("webclient: API error %d: %s (URL: %s)", e.StatusCode, e.Message, e.URL)
}

// Is matches domain.ErrProviderUnavailable for server-side failures.
func (e *APIError) Is(target error) bool {
	return target == domain.ErrProviderUnavailable && e.StatusCode >= http.StatusInternalServerError
}

// IsNotFound checks if the error indicates a resource was not found.
func IsNotFound(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusNotFound
	}
	return false
}

// IsRateLimited checks if the error indicates rate limiting.
func IsRateLimited(err error) bool {
	var rateLimitErr *RateLimitError
	return errors.As(err, &rateLimitErr)
}

// IsUnauthorized checks if the error indicates rejected credentials.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden
	}
	return false
}
