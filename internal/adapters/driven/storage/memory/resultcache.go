package memory

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/custodia-labs/trustsearch/internal/core/domain"
	"github.com/custodia-labs/trustsearch/internal/core/ports/driven"
)

// Ensure ResultCache implements the interface.
var _ driven.ResultCache = (*ResultCache)(nil)

// DefaultResultCacheSize is the default number of cached aggregation results.
const DefaultResultCacheSize = 128

// ResultCache is a size-bounded LRU of aggregation results.
// It is safe for concurrent use.
type ResultCache struct {
	lru *lru.Cache[string, domain.SectionedResults]
}

// NewResultCache creates a cache holding at most size entries.
func NewResultCache(size int) (*ResultCache, error) {
	c, err := lru.New[string, domain.SectionedResults](size)
	if err != nil {
		return nil, fmt.Errorf("create result cache: %w", err)
	}
	return &ResultCache{lru: c}, nil
}

// Get returns the value stored under key and marks it recently used.
func (c *ResultCache) Get(key string) (domain.SectionedResults, bool) {
	return c.lru.Get(key)
}

// Add stores value under key, evicting the least recently used entry when full.
func (c *ResultCache) Add(key string, value domain.SectionedResults) {
	c.lru.Add(key, value)
}

// Len returns the number of stored entries.
func (c *ResultCache) Len() int {
	return c.lru.Len()
}

// Purge removes every entry.
func (c *ResultCache) Purge() {
	c.lru.Purge()
}
