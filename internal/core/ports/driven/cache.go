package driven

import "github.com/custodia-labs/trustsearch/internal/core/domain"

// ResultCache stores completed aggregation results by key.
// Implementations must be safe for concurrent use and bound their size.
type ResultCache interface {
	// Get returns the value stored under key.
	Get(key string) (domain.SectionedResults, bool)

	// Add stores value under key, evicting the least recently used entry
	// when the cache is full.
	Add(key string, value domain.SectionedResults)

	// Len returns the number of stored entries.
	Len() int

	// Purge removes every entry.
	Purge()
}
