// Package mcpsrv runs the storefront search as an MCP server.
//
// The server exposes the catalog search session as tools (storefront_search,
// storefront_clear, storefront_status, storefront_price_quote,
// storefront_image_shape), products and categories as resources under
// storefront://, and the find_gift and search_guide prompts. The catalog
// snapshot is fetched from the listing service once, on the first tool call
// or at startup with [WithEagerInit].
//
// # Running
//
//	c, err := mcpsrv.NewClientFromEnv()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	server, err := mcpsrv.NewServer(c, mcpsrv.WithEagerInit())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer server.Close()
//	err = server.Run(ctx) // stdio until ctx is cancelled
//
// Configuration comes from the environment and the TOML file named by
// STOREFRONT_CONFIG_FILE; options such as [WithCurrency], [WithTiers] and
// [WithLogLevel] override it.
//
// # Custom tools
//
// [WithDepsTool] builds a tool from the server's [Deps]. The store is shared,
// so a query set by a custom tool is the one storefront_status reports:
//
//	mcpsrv.WithDepsTool(&mcp.Tool{Name: "cheapest_match"}, func(d *mcpsrv.Deps) func(ctx context.Context, req *mcp.CallToolRequest, in Input) (*mcp.CallToolResult, Output, error) {
//	    return func(ctx context.Context, req *mcp.CallToolRequest, in Input) (*mcp.CallToolResult, Output, error) {
//	        d.Store.Initialize(ctx)
//	        ...
//	    }
//	})
//
// Listing failures should go through [WrapListingError] so clients see the
// same error codes as for the builtin tools. Tools are registered with
// [AddTool], which rejects output types whose empty value would fail the
// SDK's schema check.
package mcpsrv
