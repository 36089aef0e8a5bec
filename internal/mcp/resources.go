package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/storefront-search/internal/mcp/tools"
)

// Resource URI scheme: storefront://
// Supported URIs:
//   storefront://product/{id}
//   storefront://category/{id}

const resourceScheme = "storefront://"

// registerResources registers resource templates and handlers.
func (s *Server) registerResources() {
	s.mcpServer.AddResourceTemplate(&sdkmcp.ResourceTemplate{
		URITemplate: "storefront://product/{id}",
		Name:        "Product",
		Description: "Full product record from the catalog snapshot, including description, price and discount. Search results already carry title, image and category.",
		MIMEType:    tools.MimeJSON,
		Annotations: &sdkmcp.Annotations{
			Audience: []sdkmcp.Role{"assistant"},
			Priority: 0.6,
		},
	}, s.handleResourceProduct)

	s.mcpServer.AddResourceTemplate(&sdkmcp.ResourceTemplate{
		URITemplate: "storefront://category/{id}",
		Name:        "Category",
		Description: "Category record from the catalog snapshot.",
		MIMEType:    tools.MimeJSON,
		Annotations: &sdkmcp.Annotations{
			Audience: []sdkmcp.Role{"assistant"},
			Priority: 0.3,
		},
	}, s.handleResourceCategory)
}

func (s *Server) handleResourceProduct(ctx context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
	params, err := parseResourceURI(req.Params.URI)
	if err != nil {
		return nil, err
	}

	s.deps.Ready(ctx)
	product, ok := s.deps.Store.Product(params["product"])
	if !ok {
		if err := s.deps.CatalogUnavailable(); err != nil {
			return nil, err
		}
		return nil, sdkmcp.ResourceNotFoundError(req.Params.URI)
	}

	return toResourceResult(req.Params.URI, product)
}

func (s *Server) handleResourceCategory(ctx context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
	params, err := parseResourceURI(req.Params.URI)
	if err != nil {
		return nil, err
	}

	s.deps.Ready(ctx)
	category, ok := s.deps.Store.Category(params["category"])
	if !ok {
		if err := s.deps.CatalogUnavailable(); err != nil {
			return nil, err
		}
		return nil, sdkmcp.ResourceNotFoundError(req.Params.URI)
	}

	return toResourceResult(req.Params.URI, category)
}

// parseResourceURI extracts parameters from a storefront:// URI.
func parseResourceURI(uri string) (map[string]string, error) {
	if !strings.HasPrefix(uri, resourceScheme) {
		return nil, tools.ErrInvalidInput("invalid URI scheme: expected " + resourceScheme)
	}

	parts := strings.Split(strings.TrimPrefix(uri, resourceScheme), "/")
	resourceType := parts[0]
	if resourceType == "" {
		return nil, tools.ErrInvalidInput("empty resource path")
	}

	switch resourceType {
	case "product", "category":
		if len(parts) != 2 || parts[1] == "" {
			return nil, tools.ErrInvalidInput(resourceType + " URI requires exactly one ID")
		}
		id, err := url.PathUnescape(parts[1])
		if err != nil {
			return nil, tools.ErrInvalidInput("malformed " + resourceType + " ID: " + err.Error())
		}
		return map[string]string{resourceType: id}, nil
	default:
		return nil, tools.ErrInvalidInput(fmt.Sprintf("unknown resource type: %s", resourceType))
	}
}

// toResourceResult serializes content to a ReadResourceResult.
func toResourceResult(uri string, content any) (*sdkmcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(content, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("serializing resource: %w", err)
	}

	return &sdkmcp.ReadResourceResult{
		Contents: []*sdkmcp.ResourceContents{
			{
				URI:      uri,
				MIMEType: tools.MimeJSON,
				Text:     string(data),
			},
		},
	}, nil
}
