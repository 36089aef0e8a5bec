package types

// ResultType distinguishes the two kinds of searchable entity.
type ResultType string

const (
	ResultProduct  ResultType = "product"
	ResultCategory ResultType = "category"
)

// SearchResult is the display projection of a matched product or category.
type SearchResult struct {
	ID       string     `json:"id"`
	Title    string     `json:"title"`
	Type     ResultType `json:"type"`
	Image    string     `json:"image,omitempty"`    // products only
	Category string     `json:"category,omitempty"` // parent category name, products only
}

// SearchState is the observable state of a search store.
type SearchState struct {
	Query       string         `json:"query"`
	Results     []SearchResult `json:"results"`
	Initialized bool           `json:"initialized"`
}

// StoreStatus describes the snapshot held by a search store.
type StoreStatus struct {
	Initialized   bool   `json:"initialized"`
	ProductCount  int    `json:"product_count"`
	CategoryCount int    `json:"category_count"`
	LoadedAtMs    int64  `json:"loaded_at_ms,omitempty"`
	LastError     string `json:"last_error,omitempty"`
	Query         string `json:"query"`
	ResultCount   int    `json:"result_count"`
}
