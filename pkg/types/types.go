// Package types provides the shared result types of storefront-search.
// They appear in tool outputs and are designed for external consumption.
package types

// ImageShape is the aspect classification of a fetched image.
type ImageShape struct {
	URL    string  `json:"url"`
	Width  int     `json:"width"`
	Height int     `json:"height"`
	Ratio  float64 `json:"ratio"` // width / height
	Shape  string  `json:"shape"` // square, landscape, portrait, unknown
	Format string  `json:"format,omitempty"`
}
