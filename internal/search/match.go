package search

import (
	"strings"

	"github.com/usestring/storefront-search/internal/indexer"
	"github.com/usestring/storefront-search/pkg/client"
	"github.com/usestring/storefront-search/pkg/types"
)

// MaxResults is the result cap applied to every query.
const MaxResults = 8

// Compute ranks the products and categories matching query.
//
// A product matches when the normalized query is a substring of its lowercased
// title or description; a category when it is a substring of its lowercased
// name. Matching products come first, then matching categories, each in input
// order, truncated to MaxResults. A blank query matches nothing.
func Compute(query string, products []client.Product, categories []client.Category) []types.SearchResult {
	q := indexer.Normalize(query)
	if q == "" {
		return []types.SearchResult{}
	}

	results := make([]types.SearchResult, 0, MaxResults)
	for i := range products {
		if len(results) == MaxResults {
			return results
		}
		p := &products[i]
		if strings.Contains(strings.ToLower(p.Title), q) || strings.Contains(strings.ToLower(p.Description), q) {
			results = append(results, productResult(p))
		}
	}
	for i := range categories {
		if len(results) == MaxResults {
			return results
		}
		c := &categories[i]
		if strings.Contains(strings.ToLower(c.Name), q) {
			results = append(results, categoryResult(c))
		}
	}
	return results
}

func productResult(p *client.Product) types.SearchResult {
	return types.SearchResult{
		ID:       p.ID,
		Title:    p.Title,
		Type:     types.ResultProduct,
		Image:    p.ImageURL,
		Category: p.Category.Name,
	}
}

func categoryResult(c *client.Category) types.SearchResult {
	return types.SearchResult{
		ID:    c.ID,
		Title: c.Name,
		Type:  types.ResultCategory,
	}
}
