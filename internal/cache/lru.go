// Package cache provides caching utilities for the storefront search.
package cache

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/usestring/storefront-search/pkg/types"
)

// ResultCache provides thread-safe LRU caching of ranked results keyed by
// normalized query. Entries are only valid for the snapshot they were
// computed from; owners Purge when the snapshot changes.
type ResultCache struct {
	cache *lru.Cache[string, []types.SearchResult]
}

// NewResultCache creates a new LRU cache with the specified maximum number of items.
func NewResultCache(maxItems int) (*ResultCache, error) {
	c, err := lru.New[string, []types.SearchResult](maxItems)
	if err != nil {
		return nil, err
	}
	return &ResultCache{cache: c}, nil
}

// Get retrieves the results for a normalized query.
// The returned slice is shared; callers must not modify it.
func (c *ResultCache) Get(query string) ([]types.SearchResult, bool) {
	return c.cache.Get(query)
}

// Put adds or updates the results for a normalized query.
func (c *ResultCache) Put(query string, results []types.SearchResult) {
	c.cache.Add(query, results)
}

// Purge drops every entry.
func (c *ResultCache) Purge() {
	c.cache.Purge()
}

// Len returns the current number of items in the cache.
func (c *ResultCache) Len() int {
	return c.cache.Len()
}

// ShapeCache provides thread-safe LRU caching of image shapes keyed by URL.
type ShapeCache struct {
	cache *lru.Cache[string, types.ImageShape]
}

// NewShapeCache creates a new LRU cache with the specified maximum number of items.
func NewShapeCache(maxItems int) (*ShapeCache, error) {
	c, err := lru.New[string, types.ImageShape](maxItems)
	if err != nil {
		return nil, err
	}
	return &ShapeCache{cache: c}, nil
}

// Get retrieves the shape for an image URL.
func (c *ShapeCache) Get(url string) (types.ImageShape, bool) {
	return c.cache.Get(url)
}

// Put adds or updates the shape for an image URL.
func (c *ShapeCache) Put(url string, shape types.ImageShape) {
	c.cache.Add(url, shape)
}

// Len returns the current number of items in the cache.
func (c *ShapeCache) Len() int {
	return c.cache.Len()
}
