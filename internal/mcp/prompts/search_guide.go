package prompts

import (
	"context"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// HandleSearchGuide serves the tool reference.
func HandleSearchGuide(cfg *Config) func(ctx context.Context, req *sdkmcp.GetPromptRequest) (*sdkmcp.GetPromptResult, error) {
	return func(ctx context.Context, req *sdkmcp.GetPromptRequest) (*sdkmcp.GetPromptResult, error) {
		var sb strings.Builder

		sb.WriteString("# Storefront Tool Guide\n\n")

		sb.WriteString("## Tools\n\n")
		sb.WriteString("| Goal | Tool | Example |\n")
		sb.WriteString("|------|------|--------|\n")
		sb.WriteString("| Find products and categories | `storefront_search` | `query: \"gift card\"` |\n")
		sb.WriteString("| Reset the session query | `storefront_clear` | |\n")
		sb.WriteString("| Check the catalog loaded | `storefront_status` | |\n")
		sb.WriteString("| Price a product | `storefront_price_quote` | `product_id: \"p1\", tier_percent: 10` |\n")
		sb.WriteString("| Classify a product image | `storefront_image_shape` | `product_id: \"p1\"` |\n")

		sb.WriteString("\n**Matching rules**:\n")
		sb.WriteString("- Products match on title or description, categories on name\n")
		sb.WriteString("- Case-insensitive substring match of the trimmed query\n")
		sb.WriteString("- Up to 8 results; products first, then categories, each in catalog order\n")
		sb.WriteString("- A blank query returns no results\n")

		sb.WriteString("\n## Pricing\n")
		sb.WriteString("- Amounts are returned in minor units (`original_minor`, `discounted_minor`) and as labels in " + cfg.CurrencySymbol + "\n")
		sb.WriteString("- The larger of the product's discount and the tier's discount applies\n")
		if len(cfg.TierNames) > 0 {
			sb.WriteString("- Configured tiers: " + strings.Join(cfg.TierNames, ", ") + "\n")
		}

		sb.WriteString("\n## Resources\n")
		sb.WriteString("- `storefront://product/{id}` - full product record\n")
		sb.WriteString("- `storefront://category/{id}` - category record\n")

		sb.WriteString("\n## Error Codes\n")
		sb.WriteString("- `NOT_FOUND` - unknown product, category or tier\n")
		sb.WriteString("- `INVALID_INPUT` - missing or out-of-range argument\n")
		sb.WriteString("- `LISTING_ERROR` - the catalog service failed; retry later\n")
		sb.WriteString("- `IMAGE_ERROR` / `TIMEOUT` - the image could not be fetched or decoded\n")

		return &sdkmcp.GetPromptResult{
			Description: "Essential guide for the storefront tools",
			Messages: []*sdkmcp.PromptMessage{
				{
					Role:    "user",
					Content: &sdkmcp.TextContent{Text: sb.String()},
				},
			},
		}, nil
	}
}
