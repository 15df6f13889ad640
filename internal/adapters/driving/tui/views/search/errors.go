package search

import "errors"

// Error definitions for the search view.
var (
	// ErrNoAggregator indicates that no aggregation service was provided.
	ErrNoAggregator = errors.New("aggregation service is required")

	// ErrTopicTooShort indicates the topic is below the minimum length.
	ErrTopicTooShort = errors.New("enter at least 3 characters")
)
