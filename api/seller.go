package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// Seller namespace: product and inventory CRUD plus the revenue summary the
// dashboard renders. These are plain round-trips with no client-side state.

// ListSellerProducts fetches the seller's own products.
func (c *Client) ListSellerProducts(ctx context.Context) ([]Product, error) {
	var resp struct {
		Products []Product `json:"products"`
	}
	if err := c.get(ctx, "seller.ListProducts", "/seller/products", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Products, nil
}

// CreateSellerProduct lists a new product.
func (c *Client) CreateSellerProduct(ctx context.Context, req SellerProductRequest) (*Product, error) {
	var resp struct {
		Product Product `json:"product"`
	}
	if err := c.do(ctx, "seller.CreateProduct", http.MethodPost, "/seller/products", req, &resp); err != nil {
		return nil, err
	}
	return &resp.Product, nil
}

// UpdateSellerProduct rewrites a product listing.
func (c *Client) UpdateSellerProduct(ctx context.Context, productID int, req SellerProductRequest) (*Product, error) {
	var resp struct {
		Product Product `json:"product"`
	}
	path := fmt.Sprintf("/seller/products/%d", productID)
	if err := c.do(ctx, "seller.UpdateProduct", http.MethodPut, path, req, &resp); err != nil {
		return nil, err
	}
	return &resp.Product, nil
}

// DeleteSellerProduct removes a product listing.
func (c *Client) DeleteSellerProduct(ctx context.Context, productID int) error {
	path := fmt.Sprintf("/seller/products/%d", productID)
	return c.do(ctx, "seller.DeleteProduct", http.MethodDelete, path, nil, nil)
}

// UpdateStock adjusts inventory for one product.
func (c *Client) UpdateStock(ctx context.Context, productID, stock int) error {
	path := fmt.Sprintf("/seller/products/%d/stock", productID)
	body := map[string]int{"stock": stock}
	return c.do(ctx, "seller.UpdateStock", http.MethodPut, path, body, nil)
}

// ListSellerOrders fetches orders placed against the seller's products,
// optionally filtered by status.
func (c *Client) ListSellerOrders(ctx context.Context, status string) ([]Order, error) {
	query := url.Values{}
	if status != "" {
		query.Set("status", status)
	}
	var resp struct {
		Orders []Order `json:"orders"`
	}
	if err := c.get(ctx, "seller.ListOrders", "/seller/orders", query, &resp); err != nil {
		return nil, err
	}
	return resp.Orders, nil
}

// UpdateOrderStatus moves a seller order through its lifecycle.
func (c *Client) UpdateOrderStatus(ctx context.Context, orderID int, status string) error {
	path := fmt.Sprintf("/seller/orders/%d/status", orderID)
	body := map[string]string{"status": status}
	return c.do(ctx, "seller.UpdateOrderStatus", http.MethodPut, path, body, nil)
}

// GetRevenueSummary fetches the dashboard revenue widget numbers.
func (c *Client) GetRevenueSummary(ctx context.Context) (*RevenueSummary, error) {
	var summary RevenueSummary
	if err := c.get(ctx, "seller.Revenue", "/seller/revenue", nil, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}
