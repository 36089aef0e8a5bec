package mcpsrv

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/storefront-search/internal/mcp/tools"
)

// AddTool registers a tool with the server after checking its types: input
// fields must carry snake_case json names, and the zero value of Out must pass
// the SDK's inferred output schema. The second check catches nil slices, which
// json.Marshal writes as null where the schema expects an array.
//
// AddTool panics with an actionable message naming the offending fields.
// Use this instead of [sdkmcp.AddTool] to get the additional checks.
func AddTool[In, Out any](srv *sdkmcp.Server, t *sdkmcp.Tool, h sdkmcp.ToolHandlerFor[In, Out]) {
	tools.AddTool(srv, t, h)
}

// WrapListingError converts a listing client error into the coded error the
// builtin tools return, so custom tools report failures the same way.
func WrapListingError(err error) error {
	return tools.WrapListingError(err)
}
