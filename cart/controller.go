// Package cart is the server-authoritative cart controller. Every mutation
// round-trips to the backend and is followed by a refetch of the
// authoritative cart; nothing is applied optimistically, so price, stock and
// subtotal can never drift from the source of truth.
package cart

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/0xletuss/67foodstreet/api"
	"github.com/0xletuss/67foodstreet/core"
)

// cartAPI is the slice of the api client the controller needs.
type cartAPI interface {
	GetCart(ctx context.Context) (*api.Cart, error)
	AddCartItem(ctx context.Context, productID, quantity int) error
	UpdateCartItem(ctx context.Context, cartItemID, quantity int) error
	RemoveCartItem(ctx context.Context, cartItemID int) error
	ClearCart(ctx context.Context) error
}

// Controller owns the displayed cart snapshot. A failed mutation leaves the
// previous snapshot untouched; the caller surfaces the error as a toast.
type Controller struct {
	client cartAPI
	logger core.Logger

	mu       sync.Mutex
	snapshot *api.Cart

	// onBadge receives the item count after every successful refresh.
	onBadge func(count int)
}

func NewController(client cartAPI, logger core.Logger) *Controller {
	if logger == nil {
		logger = &core.NoOpLogger{}
	}
	return &Controller{client: client, logger: logger}
}

// OnBadgeUpdate registers the item-count badge observer.
func (c *Controller) OnBadgeUpdate(fn func(count int)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onBadge = fn
}

// Cart returns the last fetched snapshot, nil before the first Refresh.
func (c *Controller) Cart() *api.Cart {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot
}

// Refresh refetches the authoritative cart and notifies the badge observer.
func (c *Controller) Refresh(ctx context.Context) (*api.Cart, error) {
	cart, err := c.client.GetCart(ctx)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.snapshot = cart
	fn := c.onBadge
	c.mu.Unlock()

	if fn != nil {
		fn(cart.TotalItems)
	}
	return cart, nil
}

// AddItem adds quantity of a product, validating against the stock most
// recently observed for it.
func (c *Controller) AddItem(ctx context.Context, product *api.Product, quantity int) error {
	if quantity < 1 {
		return core.ValidationError("cart.AddItem", "quantity must be at least 1")
	}
	if !product.IsAvailable || product.Stock <= 0 {
		return &core.ClientError{Op: "cart.AddItem", Kind: "validation",
			ID: strconv.Itoa(product.ProductID), Err: core.ErrOutOfStock}
	}
	if quantity > product.Stock {
		return &core.ClientError{Op: "cart.AddItem", Kind: "validation",
			ID: strconv.Itoa(product.ProductID),
			Message: fmt.Sprintf("only %d in stock", product.Stock),
			Err:     core.ErrStockExceeded}
	}

	if err := c.client.AddCartItem(ctx, product.ProductID, quantity); err != nil {
		return err
	}
	_, err := c.Refresh(ctx)
	return err
}

// UpdateQuantity sets a cart line's quantity. A quantity of zero or less
// behaves identically to RemoveItem.
func (c *Controller) UpdateQuantity(ctx context.Context, cartItemID, quantity int) error {
	if quantity <= 0 {
		return c.RemoveItem(ctx, cartItemID)
	}

	if item := c.findItem(cartItemID); item != nil && quantity > item.Stock {
		return &core.ClientError{Op: "cart.UpdateQuantity", Kind: "validation",
			ID: strconv.Itoa(cartItemID),
			Message: fmt.Sprintf("only %d in stock", item.Stock),
			Err:     core.ErrStockExceeded}
	}

	if err := c.client.UpdateCartItem(ctx, cartItemID, quantity); err != nil {
		return err
	}
	_, err := c.Refresh(ctx)
	return err
}

// RemoveItem deletes a cart line.
func (c *Controller) RemoveItem(ctx context.Context, cartItemID int) error {
	if err := c.client.RemoveCartItem(ctx, cartItemID); err != nil {
		return err
	}
	_, err := c.Refresh(ctx)
	return err
}

// Clear empties the cart.
func (c *Controller) Clear(ctx context.Context) error {
	if err := c.client.ClearCart(ctx); err != nil {
		return err
	}
	_, err := c.Refresh(ctx)
	return err
}

func (c *Controller) findItem(cartItemID int) *api.CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.snapshot == nil {
		return nil
	}
	for i := range c.snapshot.Items {
		if c.snapshot.Items[i].CartItemID == cartItemID {
			return &c.snapshot.Items[i]
		}
	}
	return nil
}
