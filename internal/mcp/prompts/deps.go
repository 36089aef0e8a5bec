// Package prompts contains MCP prompt implementations for the storefront search.
package prompts

// Config holds configuration needed by prompts.
type Config struct {
	CurrencySymbol string
	TierNames      []string
}
