package tui

import "errors"

// ErrMissingAggregator is returned when the aggregation service is not provided.
var ErrMissingAggregator = errors.New("tui: aggregation service is required")
