package driven

import (
	"context"
	"time"

	"github.com/custodia-labs/trustsearch/internal/core/domain"
)

// ProviderGroup controls when a provider takes part in an aggregation.
type ProviderGroup int

const (
	// GroupCore providers always run.
	GroupCore ProviderGroup = iota

	// GroupWeb providers run only when web sources are requested.
	GroupWeb

	// GroupVideo providers run only when video sources are requested.
	GroupVideo
)

// String returns the group name used in logs and metrics.
func (g ProviderGroup) String() string {
	switch g {
	case GroupCore:
		return "core"
	case GroupWeb:
		return "web"
	case GroupVideo:
		return "video"
	default:
		return "unknown"
	}
}

// Enabled reports whether providers of group g run for req.
func (g ProviderGroup) Enabled(req domain.AggregateRequest) bool {
	switch g {
	case GroupCore:
		return true
	case GroupWeb:
		return req.IncludeWeb
	case GroupVideo:
		return req.IncludeVideo
	default:
		return false
	}
}

// ProviderRequest is the input to a single provider call.
type ProviderRequest struct {
	// Query is the trimmed topic query.
	Query string

	// Limit is the maximum number of items wanted. Providers may return fewer.
	Limit int

	// Credentials carries API keys. A provider whose key is missing returns
	// an empty slice or uses its keyless fallback.
	Credentials domain.Credentials
}

// Provider fetches candidate items from one external source
// (Wikipedia, arXiv, a web search API, etc.).
type Provider interface {
	// Name returns the provider identifier used in logs and metrics.
	Name() string

	// Group returns the toggle group this provider belongs to.
	Group() ProviderGroup

	// Limit returns the number of items requested from this provider.
	Limit() int

	// Timeout bounds a single Search call.
	Timeout() time.Duration

	// Search returns at most req.Limit items for req.Query.
	// It never fails: network, parse and rate-limit errors are logged
	// and produce an empty slice. The context carries the call deadline.
	Search(ctx context.Context, req ProviderRequest) []domain.CandidateItem
}
