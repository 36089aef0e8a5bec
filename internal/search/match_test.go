package search

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usestring/storefront-search/internal/indexer"
	"github.com/usestring/storefront-search/pkg/client"
	"github.com/usestring/storefront-search/pkg/types"
)

// --- helpers ---

func makeProduct(id, title, description, category string) client.Product {
	return client.Product{
		ID:          id,
		Title:       title,
		Description: description,
		ImageURL:    "https://cdn.example.com/" + id + ".png",
		Category:    client.CategoryRef{ID: "cat-" + category, Name: category},
	}
}

func makeCategory(id, name string) client.Category {
	return client.Category{ID: id, Name: name}
}

func resultIDs(results []types.SearchResult) []string {
	ids := make([]string, len(results))
	for i, r := range results {
		ids[i] = r.ID
	}
	return ids
}

var steamCard = makeProduct("p1", "Steam Wallet Card", "Prepaid code", "Gaming")

// --- Compute ---

func TestCompute_EmptyQuery(t *testing.T) {
	products := []client.Product{steamCard}
	categories := []client.Category{makeCategory("c1", "Gaming")}

	for _, q := range []string{"", "   ", "\t\n"} {
		results := Compute(q, products, categories)
		assert.NotNil(t, results)
		assert.Empty(t, results, "query %q", q)
	}
}

func TestCompute_CaseInsensitiveSubstring(t *testing.T) {
	products := []client.Product{steamCard}

	tests := []struct {
		query string
		match bool
	}{
		{"STEAM", true},
		{"wallet", true},
		{"prepaid", true},
		{"  Card  ", true},
		{"m wal", true},
		{"xbox", false},
		{"steam wallet card prepaid", false},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			results := Compute(tt.query, products, nil)
			if tt.match {
				require.Len(t, results, 1)
				assert.Equal(t, "p1", results[0].ID)
			} else {
				assert.Empty(t, results)
			}
		})
	}
}

func TestCompute_ProductProjection(t *testing.T) {
	results := Compute("steam", []client.Product{steamCard}, nil)
	require.Len(t, results, 1)

	assert.Equal(t, types.SearchResult{
		ID:       "p1",
		Title:    "Steam Wallet Card",
		Type:     types.ResultProduct,
		Image:    "https://cdn.example.com/p1.png",
		Category: "Gaming",
	}, results[0])
}

func TestCompute_CategoryProjection(t *testing.T) {
	results := Compute("stream", nil, []client.Category{makeCategory("c9", "Streaming")})
	require.Len(t, results, 1)

	assert.Equal(t, types.SearchResult{ID: "c9", Title: "Streaming", Type: types.ResultCategory}, results[0])
}

func TestCompute_ProductsBeforeCategories(t *testing.T) {
	products := []client.Product{makeProduct("p1", "Gaming Card", "", "Gaming")}
	categories := []client.Category{makeCategory("c1", "Gaming")}

	results := Compute("gaming", products, categories)
	require.Len(t, results, 2)
	assert.Equal(t, types.ResultProduct, results[0].Type)
	assert.Equal(t, types.ResultCategory, results[1].Type)
}

func TestCompute_PreservesInputOrder(t *testing.T) {
	products := []client.Product{
		makeProduct("p3", "Zeta gift", "", "X"),
		makeProduct("p1", "Alpha gift", "", "X"),
		makeProduct("p2", "Unrelated", "a gift for you", "X"),
	}
	categories := []client.Category{
		makeCategory("c2", "Gift cards"),
		makeCategory("c1", "Gifts"),
	}

	results := Compute("gift", products, categories)
	assert.Equal(t, []string{"p3", "p1", "p2", "c2", "c1"}, resultIDs(results))
}

func TestCompute_CapsAtMaxResults(t *testing.T) {
	var products []client.Product
	for i := range 10 {
		products = append(products, makeProduct(fmt.Sprintf("p%d", i), fmt.Sprintf("Gift Card %d", i), "", "Gifts"))
	}
	var categories []client.Category
	for i := range 5 {
		categories = append(categories, makeCategory(fmt.Sprintf("c%d", i), fmt.Sprintf("Gift Category %d", i)))
	}

	results := Compute("gift", products, categories)
	require.Len(t, results, MaxResults)
	for i, r := range results {
		assert.Equal(t, types.ResultProduct, r.Type)
		assert.Equal(t, fmt.Sprintf("p%d", i), r.ID)
	}
}

func TestCompute_CategoriesFillRemainingSlots(t *testing.T) {
	var products []client.Product
	for i := range 6 {
		products = append(products, makeProduct(fmt.Sprintf("p%d", i), "Gift", "", "Gifts"))
	}
	var categories []client.Category
	for i := range 5 {
		categories = append(categories, makeCategory(fmt.Sprintf("c%d", i), "Gift"))
	}

	results := Compute("gift", products, categories)
	assert.Equal(t, []string{"p0", "p1", "p2", "p3", "p4", "p5", "c0", "c1"}, resultIDs(results))
}

func TestCompute_CategoryNotMatchedByProductDescription(t *testing.T) {
	// Category matching only looks at the category name.
	products := []client.Product{makeProduct("p1", "Card", "gaming", "Gaming")}
	categories := []client.Category{makeCategory("c1", "Streaming")}

	results := Compute("gaming", products, categories)
	assert.Equal(t, []string{"p1"}, resultIDs(results))
}

// --- snapshot.search parity ---

func TestSnapshotSearch_MatchesCompute(t *testing.T) {
	products := []client.Product{
		steamCard,
		makeProduct("p2", "Xbox Gift Card", "Digital code for Xbox", "Gaming"),
		makeProduct("p3", "Netflix", "Streaming subscription", "Streaming"),
		makeProduct("p4", "Spotify Premium", "Music streaming", "Streaming"),
		makeProduct("p5", "PlayStation Plus", "12 month membership", "Gaming"),
		makeProduct("p6", "Google Play", "Gift code", "Mobile"),
		makeProduct("p7", "Apple Gift Card", "App Store & iTunes", "Mobile"),
		makeProduct("p8", "Amazon Gift Card", "", "Shopping"),
		makeProduct("p9", "Razer Gold", "Game credits", "Gaming"),
		makeProduct("p10", "Ünïcode Gift", "ÉCLAIR", "Misc"),
	}
	categories := []client.Category{
		makeCategory("c1", "Gaming"),
		makeCategory("c2", "Streaming"),
		makeCategory("c3", "Mobile"),
		makeCategory("c4", "Gift Cards"),
	}
	snap := newSnapshot(products, categories)

	queries := []string{
		"", " ", "g", "ga", "gam", "gaming", "GIFT", "gift card", "code", "streaming",
		"music", "a", "e", "12 month", "&", "xyz", "éclair", "ünï", "card ", "store & i",
	}
	for _, q := range queries {
		t.Run(q, func(t *testing.T) {
			expected := Compute(q, products, categories)
			assert.Equal(t, expected, snap.search(indexer.Normalize(q)))
		})
	}
}

func TestSnapshot_Lookups(t *testing.T) {
	snap := newSnapshot(
		[]client.Product{steamCard, makeProduct("p1", "Duplicate", "", "X")},
		[]client.Category{makeCategory("c1", "Gaming")},
	)

	assert.Equal(t, 0, snap.productByID["p1"], "first occurrence wins")
	assert.Equal(t, 0, snap.categoryByID["c1"])
	assert.Equal(t, 3, snap.index.DocCount())
}
