package tools

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Register registers all tools with the MCP server.
func Register(srv *sdkmcp.Server, d *Deps) {
	// Tool 1: storefront_search
	AddTool(srv, &sdkmcp.Tool{
		Name:        "storefront_search",
		Description: "Search the storefront catalog. Returns up to 8 results, matching products first (title or description), then matching categories (name). Each call replaces the session query. Returns {query, results: [{id, title, type, image, category}], hint}.",
	}, ToolSearch(d))

	// Tool 2: storefront_clear
	AddTool(srv, &sdkmcp.Tool{
		Name:        "storefront_clear",
		Description: "Clear the session query and results",
	}, ToolClear(d))

	// Tool 3: storefront_status
	AddTool(srv, &sdkmcp.Tool{
		Name:        "storefront_status",
		Description: "Report whether the catalog snapshot is loaded, its product and category counts, and the last load error if any",
	}, ToolStatus(d))

	// Tool 4: storefront_price_quote
	AddTool(srv, &sdkmcp.Tool{
		Name:        "storefront_price_quote",
		Description: "Price a product by ID. Applies the larger of the product's own discount and the requested tier's. Returns minor-unit amounts, percent off, and formatted labels.",
	}, ToolPriceQuote(d))

	// Tool 5: storefront_image_shape
	AddTool(srv, &sdkmcp.Tool{
		Name:        "storefront_image_shape",
		Description: "Classify an image as square, landscape or portrait from its dimensions. Pass a url, or a product_id to use that product's image.",
	}, ToolImageShape(d))
}
