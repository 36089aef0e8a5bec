// Package tools contains MCP tool implementations for the storefront search.
package tools

// MIME type constant.
const MimeJSON = "application/json"

// noResultsHint is shown for a non-blank query that matched nothing.
func noResultsHint(query string) string {
	return "No results found for '" + query + "'"
}
