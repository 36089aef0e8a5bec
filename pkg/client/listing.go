package client

import (
	"context"
	"fmt"
)

// ListProducts retrieves the full product catalog.
func (c *Client) ListProducts(ctx context.Context) ([]Product, error) {
	body, err := c.getRaw(ctx, c.productsPath)
	if err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}
	products, err := decodeList[Product](body, c.productsSelector, productsValidator)
	if err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}
	return products, nil
}

// ListCategories retrieves all product categories.
func (c *Client) ListCategories(ctx context.Context) ([]Category, error) {
	body, err := c.getRaw(ctx, c.categoriesPath)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	categories, err := decodeList[Category](body, c.categoriesSelector, categoriesValidator)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	return categories, nil
}
