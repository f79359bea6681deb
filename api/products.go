package api

import (
	"context"
	"fmt"
	"net/url"
)

// ListProducts fetches the full catalog, optionally scoped to a category.
func (c *Client) ListProducts(ctx context.Context, category string) ([]Product, error) {
	query := url.Values{}
	if category != "" {
		query.Set("category", category)
	}
	var resp struct {
		Products []Product `json:"products"`
	}
	if err := c.get(ctx, "products.List", "/products/", query, &resp); err != nil {
		return nil, err
	}
	return resp.Products, nil
}

// GetProduct fetches one product by id.
func (c *Client) GetProduct(ctx context.Context, productID int) (*Product, error) {
	var product Product
	path := fmt.Sprintf("/products/%d", productID)
	if err := c.get(ctx, "products.Get", path, nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}
