package tools

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/storefront-search/pkg/types"
)

// ImageShapeInput is the input for storefront_image_shape.
type ImageShapeInput struct {
	URL       string `json:"url,omitempty" jsonschema:"Image URL to classify"`
	ProductID string `json:"product_id,omitempty" jsonschema:"Classify this product's image instead of a URL"`
}

// ToolImageShape classifies an image as square, landscape or portrait.
func ToolImageShape(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input ImageShapeInput) (*sdkmcp.CallToolResult, types.ImageShape, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input ImageShapeInput) (*sdkmcp.CallToolResult, types.ImageShape, error) {
		d.Ready(ctx)

		url := input.URL
		if url == "" && input.ProductID != "" {
			product, ok := d.Store.Product(input.ProductID)
			if !ok {
				if err := d.CatalogUnavailable(); err != nil {
					return nil, types.ImageShape{}, err
				}
				return nil, types.ImageShape{}, ErrNotFound("product", input.ProductID)
			}
			if product.ImageURL == "" {
				return nil, types.ImageShape{}, ErrInvalidInput("product has no image: " + input.ProductID)
			}
			url = product.ImageURL
		}
		if url == "" {
			return nil, types.ImageShape{}, ErrInvalidInput("url or product_id is required")
		}

		shape, err := d.Images.Shape(ctx, url)
		if err != nil {
			return nil, types.ImageShape{}, WrapImageError(err)
		}
		return nil, shape, nil
	}
}
