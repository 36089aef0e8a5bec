package search

import (
	"time"

	"github.com/usestring/storefront-search/internal/indexer"
	"github.com/usestring/storefront-search/pkg/client"
	"github.com/usestring/storefront-search/pkg/types"
)

// snapshot is the immutable catalog copy a store searches. Products occupy
// docIDs [0, len(products)) and categories the IDs after them, so ascending
// docID order is exactly the ranking order.
type snapshot struct {
	products   []client.Product
	categories []client.Category
	index      *indexer.Indexer

	productByID  map[string]int
	categoryByID map[string]int
	loadedAt     time.Time
}

func newSnapshot(products []client.Product, categories []client.Category) *snapshot {
	s := &snapshot{
		products:     products,
		categories:   categories,
		index:        indexer.New(),
		productByID:  make(map[string]int, len(products)),
		categoryByID: make(map[string]int, len(categories)),
		loadedAt:     time.Now(),
	}
	for i := range products {
		s.index.Add(products[i].Title, products[i].Description)
		if _, dup := s.productByID[products[i].ID]; !dup {
			s.productByID[products[i].ID] = i
		}
	}
	for i := range categories {
		s.index.Add(categories[i].Name)
		if _, dup := s.categoryByID[categories[i].ID]; !dup {
			s.categoryByID[categories[i].ID] = i
		}
	}
	return s
}

// search returns the ranked results for an already-normalized query.
// Equivalent to Compute over the same products and categories.
func (s *snapshot) search(q string) []types.SearchResult {
	results := make([]types.SearchResult, 0, MaxResults)
	if q == "" {
		return results
	}

	nProducts := uint32(len(s.products))
	for _, docID := range s.index.Search(q, MaxResults) {
		if docID < nProducts {
			results = append(results, productResult(&s.products[docID]))
		} else {
			results = append(results, categoryResult(&s.categories[docID-nProducts]))
		}
	}
	return results
}
