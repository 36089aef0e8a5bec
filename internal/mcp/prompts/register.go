package prompts

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Register registers all prompts with the MCP server.
func Register(srv *sdkmcp.Server, cfg *Config) {
	// Prompt 1: Find a gift
	srv.AddPrompt(&sdkmcp.Prompt{
		Name:        "find_gift",
		Description: "RECOMMENDED: Find a gift in the storefront catalog. Walks through searching, narrowing by category, checking image shape and quoting prices.",
		Arguments: []*sdkmcp.PromptArgument{
			{
				Name:        "recipient",
				Description: "Who the gift is for and what they like (e.g., 'teenager who plays PC games')",
				Required:    false,
			},
			{
				Name:        "budget",
				Description: "Maximum price in major units (e.g., '50')",
				Required:    false,
			},
			{
				Name:        "tier",
				Description: "Discount tier to quote prices with",
				Required:    false,
			},
		},
	}, HandleFindGift(cfg))

	// Prompt 2: Tool usage guide
	srv.AddPrompt(&sdkmcp.Prompt{
		Name:        "search_guide",
		Description: "Short reference for the storefront tools: matching rules, result limits and error codes.",
	}, HandleSearchGuide(cfg))
}
