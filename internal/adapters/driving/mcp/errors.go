// Package mcp provides an MCP (Model Context Protocol) server adapter for trustsearch.
// It lets AI assistants run trust-ranked topic searches and inspect the
// configured providers.
package mcp

import "errors"

// ErrMissingAggregator is returned when the aggregation service is not provided.
var ErrMissingAggregator = errors.New("mcp: aggregation service is required")
