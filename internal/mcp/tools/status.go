package tools

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/storefront-search/pkg/types"
)

// StatusInput is the input for storefront_status.
type StatusInput struct{}

// ToolStatus reports the snapshot state.
func ToolStatus(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input StatusInput) (*sdkmcp.CallToolResult, types.StoreStatus, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input StatusInput) (*sdkmcp.CallToolResult, types.StoreStatus, error) {
		d.Ready(ctx)
		return nil, d.Store.Status(), nil
	}
}
