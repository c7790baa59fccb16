package cache

import (
	"strings"

	"github.com/FocuswithJustin/scriptorium/core/citation"
)

// CitationCache memoizes parsed and canonicalized citations by their raw
// text. Cached collections are shared between callers and must be treated as
// read-only.
type CitationCache struct {
	cache Cache[string, *citation.RangeCollection]
}

// NewCitationCache creates a citation cache.
func NewCitationCache(config Config) *CitationCache {
	return &CitationCache{cache: NewLRUCache[string, *citation.RangeCollection](config)}
}

// NewDefaultCitationCache creates a citation cache with DefaultConfig.
func NewDefaultCitationCache() *CitationCache {
	return NewCitationCache(DefaultConfig())
}

// Canonical returns the canonical form of raw, parsing it on a miss. Parse
// errors are not cached.
func (c *CitationCache) Canonical(raw string) (*citation.RangeCollection, error) {
	key := strings.TrimSpace(raw)
	if rc, ok := c.cache.Get(key); ok {
		return rc, nil
	}

	rc, err := citation.Parse(key)
	if err != nil {
		return nil, err
	}
	rc.Canonicalize()
	c.cache.Put(key, rc)
	return rc, nil
}

// Get returns the cached canonical collection for raw, if any.
func (c *CitationCache) Get(raw string) (*citation.RangeCollection, bool) {
	return c.cache.Get(strings.TrimSpace(raw))
}

// Remove drops raw from the cache.
func (c *CitationCache) Remove(raw string) {
	c.cache.Remove(strings.TrimSpace(raw))
}

// Clear removes every entry.
func (c *CitationCache) Clear() {
	c.cache.Clear()
}

// Len returns the number of cached citations.
func (c *CitationCache) Len() int {
	return c.cache.Len()
}

// Stats returns cache statistics.
func (c *CitationCache) Stats() Stats {
	return c.cache.Stats()
}
