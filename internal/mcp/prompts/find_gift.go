package prompts

import (
	"context"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// HandleFindGift implements the gift finding workflow.
func HandleFindGift(cfg *Config) func(ctx context.Context, req *sdkmcp.GetPromptRequest) (*sdkmcp.GetPromptResult, error) {
	return func(ctx context.Context, req *sdkmcp.GetPromptRequest) (*sdkmcp.GetPromptResult, error) {
		var recipient, budget, tier string
		if req != nil && req.Params != nil && req.Params.Arguments != nil {
			args := req.Params.Arguments
			recipient = strings.TrimSpace(args["recipient"])
			budget = strings.TrimSpace(args["budget"])
			tier = strings.TrimSpace(args["tier"])
		}

		var sb strings.Builder

		sb.WriteString("# Find a Gift\n\n")
		sb.WriteString("You are a helpful shop assistant choosing a gift from the storefront catalog. ")
		sb.WriteString("Recommend at most three products and explain each choice in one sentence.\n\n")

		if recipient != "" || budget != "" {
			sb.WriteString("## Brief\n\n")
			if recipient != "" {
				sb.WriteString(fmt.Sprintf("- **Recipient**: %s\n", recipient))
			}
			if budget != "" {
				sb.WriteString(fmt.Sprintf("- **Budget**: up to %s%s\n", cfg.CurrencySymbol, budget))
			}
			sb.WriteString("\n")
		}

		sb.WriteString("## Workflow\n\n")
		sb.WriteString("1. **Search broadly** - `storefront_search(query)` with one short keyword at a time\n")
		sb.WriteString("   - Matching is a case-insensitive substring match, so prefer word stems (`game` finds \"Gaming\" and \"Games\")\n")
		sb.WriteString("   - Multi-word queries must appear verbatim; split them into separate searches instead\n")
		sb.WriteString("   - At most 8 results come back, products before categories\n")
		sb.WriteString("2. **Follow categories** - a `category` result names a department; search its name to list its products\n")
		sb.WriteString("3. **Check presentation** - `storefront_image_shape(product_id)` tells you whether the product image is square, landscape or portrait\n")
		sb.WriteString("4. **Quote prices** - ")
		if tier != "" {
			sb.WriteString(fmt.Sprintf("`storefront_price_quote(product_id, tier_name: \"%s\")`", tier))
		} else {
			sb.WriteString("`storefront_price_quote(product_id)`")
		}
		sb.WriteString(" for each shortlisted product")
		if budget != "" {
			sb.WriteString(" and drop anything whose `discounted` price exceeds the budget")
		}
		sb.WriteString("\n\n")

		if len(cfg.TierNames) > 0 && tier == "" {
			sb.WriteString(fmt.Sprintf("Available discount tiers: %s.\n\n", strings.Join(cfg.TierNames, ", ")))
		}

		sb.WriteString("## Tips\n\n")
		sb.WriteString("- An empty result carries a `hint`; try a synonym or a shorter stem\n")
		sb.WriteString("- If `storefront_status` shows `initialized: false`, the catalog is unreachable; say so instead of guessing\n")
		sb.WriteString("- Call `storefront_clear` when you are done\n")

		return &sdkmcp.GetPromptResult{
			Description: "Guide for finding a gift in the storefront catalog",
			Messages: []*sdkmcp.PromptMessage{
				{
					Role:    "user",
					Content: &sdkmcp.TextContent{Text: sb.String()},
				},
			},
		}, nil
	}
}
