package tools

import (
	"context"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/storefront-search/pkg/types"
)

// SearchInput is the input for storefront_search.
type SearchInput struct {
	Query string `json:"query" jsonschema:"Text to look for. Case-insensitive substring match against product titles, product descriptions and category names. An empty query clears the results."`
}

// SearchOutput is the output for storefront_search.
type SearchOutput struct {
	Query   string               `json:"query"`
	Results []types.SearchResult `json:"results,omitzero"`
	Hint    string               `json:"hint,omitempty"`
}

// ClearInput is the input for storefront_clear.
type ClearInput struct{}

// ClearOutput is the output for storefront_clear.
type ClearOutput struct {
	Query   string               `json:"query"`
	Results []types.SearchResult `json:"results,omitzero"`
}

// ToolSearch sets the session query and returns its ranked results.
func ToolSearch(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input SearchInput) (*sdkmcp.CallToolResult, SearchOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input SearchInput) (*sdkmcp.CallToolResult, SearchOutput, error) {
		d.Ready(ctx)

		results := d.Store.SetQuery(input.Query)
		output := SearchOutput{
			Query:   input.Query,
			Results: results,
		}

		if len(results) == 0 && strings.TrimSpace(input.Query) != "" {
			output.Hint = noResultsHint(input.Query)
			if st := d.Store.Status(); !st.Initialized && st.LastError != "" {
				output.Hint += ". The catalog could not be loaded: " + st.LastError
			}
		}

		return nil, output, nil
	}
}

// ToolClear resets the session query.
func ToolClear(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input ClearInput) (*sdkmcp.CallToolResult, ClearOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input ClearInput) (*sdkmcp.CallToolResult, ClearOutput, error) {
		d.Ready(ctx)
		d.Store.Clear()

		return nil, ClearOutput{
			Query:   d.Store.Query(),
			Results: d.Store.Results(),
		}, nil
	}
}
