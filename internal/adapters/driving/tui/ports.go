// Package tui provides an interactive terminal user interface for trustsearch.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/trustsearch/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Aggregator runs topic searches.
	Aggregator driving.AggregationService

	// Providers describes the source providers. Optional.
	Providers driving.ProviderRegistry

	// Settings supplies search defaults and credentials. Optional.
	Settings driving.SettingsService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(
	aggregator driving.AggregationService,
	providers driving.ProviderRegistry,
	settings driving.SettingsService,
) *Ports {
	return &Ports{
		Aggregator: aggregator,
		Providers:  providers,
		Settings:   settings,
	}
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Aggregator == nil {
		return ErrMissingAggregator
	}
	return nil
}
