// Package memo provides bounded memoization for the pure string functions on
// the search hot path: text normalization and tokenization.
package memo

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/prometheus/client_golang/prometheus"
)

// DefaultCapacity bounds each memo table when no capacity is configured.
const DefaultCapacity = 50000

// Cache memoizes normalization and tokenization results in two independent
// LRU tables. It is safe for concurrent use.
type Cache struct {
	norm   *lru.Cache[string, string]
	tokens *lru.Cache[string, []string]
	hits   prometheus.Counter
	misses prometheus.Counter
}

// New builds a cache with the given per-table capacity. The counters record
// hits and misses across both tables; either may be nil.
func New(capacity int, hits, misses prometheus.Counter) (*Cache, error) {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	norm, err := lru.New[string, string](capacity)
	if err != nil {
		return nil, err
	}
	tokens, err := lru.New[string, []string](capacity)
	if err != nil {
		return nil, err
	}
	return &Cache{norm: norm, tokens: tokens, hits: hits, misses: misses}, nil
}

// Normalized returns the memoized result of fn(s).
func (c *Cache) Normalized(s string, fn func(string) string) string {
	if v, ok := c.norm.Get(s); ok {
		c.hit()
		return v
	}
	c.miss()
	v := fn(s)
	c.norm.Add(s, v)
	return v
}

// Tokens returns the memoized result of fn(s). The returned slice is shared
// between callers and must not be mutated.
func (c *Cache) Tokens(s string, fn func(string) []string) []string {
	if v, ok := c.tokens.Get(s); ok {
		c.hit()
		return v
	}
	c.miss()
	v := fn(s)
	c.tokens.Add(s, v)
	return v
}

// Purge drops every memoized entry. Used when folding or stopword
// configuration changes at runtime.
func (c *Cache) Purge() {
	c.norm.Purge()
	c.tokens.Purge()
}

func (c *Cache) hit() {
	if c.hits != nil {
		c.hits.Inc()
	}
}

func (c *Cache) miss() {
	if c.misses != nil {
		c.misses.Inc()
	}
}
