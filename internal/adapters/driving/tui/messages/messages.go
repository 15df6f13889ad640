// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"time"

	"github.com/custodia-labs/trustsearch/internal/core/domain"
)

// SearchCompleted carries aggregation results back to the model.
type SearchCompleted struct {
	Request domain.AggregateRequest
	Results domain.SectionedResults
	Elapsed time.Duration
	Err     error
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewSearch is the topic input and sectioned results view.
	ViewSearch
	// ViewProviders lists source providers and their readiness.
	ViewProviders
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewSearch:
		return "search"
	case ViewProviders:
		return "providers"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// ProvidersLoaded carries provider readiness from the registry.
type ProvidersLoaded struct {
	Statuses []domain.ProviderStatus
	Err      error
}
