package api

import (
	"context"
	"fmt"
	"net/http"
)

// GetCart fetches the authenticated customer's server-authoritative cart.
func (c *Client) GetCart(ctx context.Context) (*Cart, error) {
	var cart Cart
	if err := c.get(ctx, "cart.Get", "/cart-items/my-cart", nil, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// AddCartItem adds a product to the cart. The response is discarded; callers
// refetch the authoritative cart afterwards.
func (c *Client) AddCartItem(ctx context.Context, productID, quantity int) error {
	req := AddCartItemRequest{ProductID: productID, Quantity: quantity}
	return c.do(ctx, "cart.AddItem", http.MethodPost, "/cart-items/", req, nil)
}

// UpdateCartItem sets the quantity of an existing cart line.
func (c *Client) UpdateCartItem(ctx context.Context, cartItemID, quantity int) error {
	req := UpdateCartItemRequest{Quantity: quantity}
	path := fmt.Sprintf("/cart-items/%d", cartItemID)
	return c.do(ctx, "cart.UpdateItem", http.MethodPut, path, req, nil)
}

// RemoveCartItem deletes a cart line.
func (c *Client) RemoveCartItem(ctx context.Context, cartItemID int) error {
	path := fmt.Sprintf("/cart-items/%d", cartItemID)
	return c.do(ctx, "cart.RemoveItem", http.MethodDelete, path, nil, nil)
}

// ClearCart empties the server-side cart.
func (c *Client) ClearCart(ctx context.Context) error {
	return c.do(ctx, "cart.Clear", http.MethodDelete, "/cart-items/my-cart/clear", nil, nil)
}
