package domain

import (
	"fmt"
	"strings"
)

const (
	// MinQueryLength is the minimum trimmed query length accepted.
	MinQueryLength = 3

	// MinItemsPerSection is the lower bound of the per-section item limit.
	MinItemsPerSection = 3

	// MaxItemsPerSection is the upper bound of the per-section item limit.
	MaxItemsPerSection = 20

	// DefaultItemsPerSection is used by callers when no limit is chosen.
	DefaultItemsPerSection = 5
)

// AggregateRequest configures one aggregation.
type AggregateRequest struct {
	// Query is the free-text topic.
	Query string

	// MaxItemsPerSection bounds the length of each section.
	MaxItemsPerSection int

	// IncludeWeb enables web search providers.
	IncludeWeb bool

	// IncludeVideo enables video providers.
	IncludeVideo bool
}

// Validate rejects out-of-range input before any provider is called.
// Returned errors wrap ErrInvalidInput.
func (r AggregateRequest) Validate() error {
	if len([]rune(strings.TrimSpace(r.Query))) < MinQueryLength {
		return fmt.Errorf("%w: query must be at least %d characters", ErrInvalidInput, MinQueryLength)
	}
	if r.MaxItemsPerSection < MinItemsPerSection || r.MaxItemsPerSection > MaxItemsPerSection {
		return fmt.Errorf("%w: max items per section must be between %d and %d, got %d",
			ErrInvalidInput, MinItemsPerSection, MaxItemsPerSection, r.MaxItemsPerSection)
	}
	return nil
}

// TrimmedQuery returns the query as sent to providers.
func (r AggregateRequest) TrimmedQuery() string {
	return strings.TrimSpace(r.Query)
}

// NormalizedQuery collapses whitespace and lowercases the query.
// It is the query component of the cache key.
func (r AggregateRequest) NormalizedQuery() string {
	return strings.ToLower(strings.Join(strings.Fields(r.Query), " "))
}

// ClampItemsPerSection bounds n to [MinItemsPerSection, MaxItemsPerSection].
func ClampItemsPerSection(n int) int {
	if n < MinItemsPerSection {
		return MinItemsPerSection
	}
	if n > MaxItemsPerSection {
		return MaxItemsPerSection
	}
	return n
}
