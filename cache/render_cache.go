package cache

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// RenderCache memoizes rendered statement text keyed by a structural
// fingerprint of the template: literal text, fragment contents, sequence
// expansion lengths and placeholder style. Bind values are never cached;
// only the string assembly is skipped on a hit.
type RenderCache struct {
	cache *lru.Cache[uint64, string]
}

func NewRenderCache(size int) *RenderCache {
	cache, _ := lru.New[uint64, string](size)
	return &RenderCache{cache: cache}
}

func (c *RenderCache) Get(key uint64) (string, bool) {
	return c.cache.Get(key)
}

func (c *RenderCache) Add(key uint64, sql string) {
	c.cache.Add(key, sql)
}

// Purge drops all cached statements.
func (c *RenderCache) Purge() {
	c.cache.Purge()
}

// Len reports the number of cached statements.
func (c *RenderCache) Len() int {
	return c.cache.Len()
}
