package tools

import (
	"context"

	"github.com/usestring/storefront-search/internal/config"
	"github.com/usestring/storefront-search/internal/imageshape"
	"github.com/usestring/storefront-search/internal/search"
	"github.com/usestring/storefront-search/pkg/client"
	"github.com/usestring/storefront-search/pkg/pricing"
)

// Deps contains all dependencies needed by tool handlers.
type Deps struct {
	Client  *client.Client
	Store   *search.Store
	Images  *imageshape.Classifier
	Pricing *pricing.Formatter
	Config  *config.Config
}

// Ready lazily loads the catalog snapshot. Every tool calls it first.
func (d *Deps) Ready(ctx context.Context) {
	d.Store.Initialize(ctx)
}

// CatalogUnavailable returns a LISTING_ERROR when the store could not load its
// snapshot, so a lookup miss is not mistaken for NOT_FOUND.
func (d *Deps) CatalogUnavailable() error {
	st := d.Store.Status()
	if st.Initialized {
		return nil
	}
	msg := "catalog not loaded"
	if st.LastError != "" {
		msg = "catalog not loaded: " + st.LastError
	}
	return &CodedError{Code: ErrCodeListingError, Message: msg}
}
