package mcp

import (
	"github.com/custodia-labs/trustsearch/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Aggregator runs topic searches.
	Aggregator driving.AggregationService

	// Providers describes the source providers. Optional.
	Providers driving.ProviderRegistry

	// Settings supplies search defaults and credentials. Optional.
	Settings driving.SettingsService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Aggregator == nil {
		return ErrMissingAggregator
	}
	return nil
}
