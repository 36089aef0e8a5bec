package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usestring/storefront-search/pkg/types"
)

func TestResultCache_PutGet(t *testing.T) {
	c, err := NewResultCache(2)
	require.NoError(t, err)

	results := []types.SearchResult{{ID: "p1", Title: "Steam", Type: types.ResultProduct}}
	c.Put("steam", results)

	got, ok := c.Get("steam")
	require.True(t, ok)
	assert.Equal(t, results, got)

	_, ok = c.Get("xbox")
	assert.False(t, ok)
}

func TestResultCache_EvictsLeastRecentlyUsed(t *testing.T) {
	c, err := NewResultCache(2)
	require.NoError(t, err)

	c.Put("a", nil)
	c.Put("b", nil)
	_, _ = c.Get("a")
	c.Put("c", nil)

	_, okA := c.Get("a")
	_, okB := c.Get("b")
	assert.True(t, okA)
	assert.False(t, okB)
	assert.Equal(t, 2, c.Len())
}

func TestResultCache_Purge(t *testing.T) {
	c, err := NewResultCache(4)
	require.NoError(t, err)

	c.Put("a", nil)
	c.Put("b", nil)
	c.Purge()
	assert.Equal(t, 0, c.Len())
}

func TestNewResultCache_InvalidSize(t *testing.T) {
	_, err := NewResultCache(0)
	assert.Error(t, err)
}

func TestShapeCache(t *testing.T) {
	c, err := NewShapeCache(8)
	require.NoError(t, err)

	shape := types.ImageShape{URL: "https://cdn/x.png", Width: 10, Height: 5, Ratio: 2, Shape: "landscape"}
	c.Put(shape.URL, shape)

	got, ok := c.Get(shape.URL)
	require.True(t, ok)
	assert.Equal(t, shape, got)
	assert.Equal(t, 1, c.Len())
}
