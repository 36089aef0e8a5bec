package mcpsrv

import (
	"github.com/usestring/storefront-search/internal/config"
	"github.com/usestring/storefront-search/internal/imageshape"
	"github.com/usestring/storefront-search/internal/search"
	"github.com/usestring/storefront-search/pkg/client"
	"github.com/usestring/storefront-search/pkg/pricing"
)

// Deps contains all dependencies available to custom tools.
// This gives custom tools access to the same infrastructure as builtin tools.
type Deps struct {
	Client  *client.Client
	Store   *search.Store
	Images  *imageshape.Classifier
	Pricing *pricing.Formatter
	Config  *config.Config
}
