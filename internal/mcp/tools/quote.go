package tools

import (
	"context"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/storefront-search/pkg/pricing"
)

// PriceQuoteInput is the input for storefront_price_quote.
type PriceQuoteInput struct {
	ProductID   string   `json:"product_id" jsonschema:"Product ID, as returned by storefront_search"`
	TierName    string   `json:"tier_name,omitempty" jsonschema:"Configured discount tier to apply"`
	TierPercent *float64 `json:"tier_percent,omitempty" jsonschema:"Ad-hoc tier discount in percent (0-100). Overrides the configured percentage of tier_name."`
}

// ToolPriceQuote prices a snapshot product, optionally for a discount tier.
func ToolPriceQuote(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input PriceQuoteInput) (*sdkmcp.CallToolResult, pricing.Quote, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input PriceQuoteInput) (*sdkmcp.CallToolResult, pricing.Quote, error) {
		if input.ProductID == "" {
			return nil, pricing.Quote{}, ErrInvalidInput("product_id is required")
		}

		tier, err := d.resolveTier(input.TierName, input.TierPercent)
		if err != nil {
			return nil, pricing.Quote{}, err
		}

		d.Ready(ctx)
		if err := d.CatalogUnavailable(); err != nil {
			return nil, pricing.Quote{}, err
		}

		product, ok := d.Store.Product(input.ProductID)
		if !ok {
			return nil, pricing.Quote{}, ErrNotFound("product", input.ProductID)
		}

		return nil, d.Pricing.Quote(product, tier), nil
	}
}

func (d *Deps) resolveTier(name string, percent *float64) (pricing.Tier, error) {
	if percent != nil {
		if *percent < 0 || *percent > 100 {
			return pricing.Tier{}, ErrInvalidInput(fmt.Sprintf("tier_percent must be between 0 and 100, got %g", *percent))
		}
		return pricing.Tier{Name: name, DiscountPercent: *percent}, nil
	}
	if name == "" {
		return pricing.Tier{}, nil
	}
	tier, ok := d.Config.Tier(name)
	if !ok {
		return pricing.Tier{}, ErrNotFound("tier", name)
	}
	return tier, nil
}
