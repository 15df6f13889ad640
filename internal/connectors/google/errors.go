package google

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"google.golang.org/api/googleapi"

	"github.com/custodia-labs/trustsearch/internal/core/domain"
)

// BackoffError is returned while a service is backing off after a rate limit.
type BackoffError struct {
	Service ServiceType
	RetryAt time.Time
}

func (e *BackoffError) Error() string {
	return fmt.Sprintf("google %s: backing off until %s", e.Service, e.RetryAt.Format(time.RFC3339))
}

// Is matches domain.ErrRateLimited.
func (e *BackoffError) Is(target error) bool {
	return target == domain.ErrRateLimited
}

// IsUnauthorized returns true if the error indicates an invalid API key.
func IsUnauthorized(err error) bool {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return gerr.Code == http.StatusUnauthorized || (gerr.Code == http.StatusBadRequest && hasReason(gerr, "keyInvalid"))
	}
	return false
}

// IsRateLimited returns true if the error indicates rate limiting.
func IsRateLimited(err error) bool {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return gerr.Code == http.StatusTooManyRequests || hasReason(gerr, "rateLimitExceeded", "userRateLimitExceeded")
	}
	return false
}

// IsQuotaExceeded returns true if the daily quota of the key is spent.
// Google reports this as 403 with a quota reason.
func IsQuotaExceeded(err error) bool {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return gerr.Code == http.StatusForbidden && hasReason(gerr, "quotaExceeded", "dailyLimitExceeded")
	}
	return false
}

func hasReason(gerr *googleapi.Error, reasons ...string) bool {
	for _, item := range gerr.Errors {
		for _, r := range reasons {
			if item.Reason == r {
				return true
			}
		}
	}
	return false
}

// WrapError converts a Google API error into a domain error.
func WrapError(err error) error {
	if err == nil {
		return nil
	}

	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return err
	}

	switch {
	case IsRateLimited(err), IsQuotaExceeded(err):
		return fmt.Errorf("%w: %s", domain.ErrRateLimited, gerr.Message)
	case IsUnauthorized(err), gerr.Code == http.StatusForbidden:
		return fmt.Errorf("%w: %s", domain.ErrMissingCredentials, gerr.Message)
	case gerr.Code >= http.StatusInternalServerError:
		return fmt.Errorf("%w: %s", domain.ErrProviderUnavailable, gerr.Message)
	default:
		return err
	}
}
