package prompts

import (
	"context"
	"testing"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func promptText(t *testing.T, res *sdkmcp.GetPromptResult) string {
	t.Helper()
	require.Len(t, res.Messages, 1)
	text, ok := res.Messages[0].Content.(*sdkmcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestHandleFindGift(t *testing.T) {
	cfg := &Config{CurrencySymbol: "$", TierNames: []string{"silver", "gold"}}

	tests := []struct {
		name        string
		args        map[string]string
		contains    []string
		notContains []string
	}{
		{
			name:        "no arguments",
			args:        nil,
			contains:    []string{"# Find a Gift", "storefront_search(query)", "`storefront_price_quote(product_id)`", "Available discount tiers: silver, gold."},
			notContains: []string{"## Brief", "exceeds the budget"},
		},
		{
			name:     "brief",
			args:     map[string]string{"recipient": "gamer", "budget": "50"},
			contains: []string{"**Recipient**: gamer", "**Budget**: up to $50", "exceeds the budget"},
		},
		{
			name:        "tier",
			args:        map[string]string{"tier": "gold"},
			contains:    []string{`tier_name: "gold"`},
			notContains: []string{"Available discount tiers"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := &sdkmcp.GetPromptRequest{Params: &sdkmcp.GetPromptParams{Name: "find_gift", Arguments: tt.args}}

			res, err := HandleFindGift(cfg)(context.Background(), req)
			require.NoError(t, err)

			text := promptText(t, res)
			for _, s := range tt.contains {
				assert.Contains(t, text, s)
			}
			for _, s := range tt.notContains {
				assert.NotContains(t, text, s)
			}
		})
	}
}

func TestHandleSearchGuide(t *testing.T) {
	res, err := HandleSearchGuide(&Config{CurrencySymbol: "€"})(context.Background(), &sdkmcp.GetPromptRequest{})
	require.NoError(t, err)

	text := promptText(t, res)
	assert.Contains(t, text, "storefront_image_shape")
	assert.Contains(t, text, "labels in €")
	assert.Contains(t, text, "Up to 8 results")
	assert.NotContains(t, text, "Configured tiers")
}
