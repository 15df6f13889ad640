// Package domain defines the core business entities for trustsearch.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - CandidateItem: One piece of learning material returned by a source
//   - Kind: The fixed classification vocabulary that drives sectioning
//   - SectionSpec / SectionedResults: Labelled groups of scored items
//   - AggregateRequest: The validated input of one aggregation
//   - Credentials: Immutable provider API keys
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
