package driving

import (
	"context"

	"github.com/custodia-labs/trustsearch/internal/core/domain"
)

// AggregationService answers a topic query with sectioned, trust-scored results.
type AggregationService interface {
	// Aggregate runs the pipeline for req. The only error returned is a
	// validation failure wrapping domain.ErrInvalidInput; provider failures
	// degrade to empty contributions.
	Aggregate(ctx context.Context, req domain.AggregateRequest) (domain.SectionedResults, error)
}
