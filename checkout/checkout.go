// Package checkout runs the order placement flow: authoritative cart in,
// order + payment out, cart cleared only after both succeeded.
package checkout

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/0xletuss/67foodstreet/api"
	"github.com/0xletuss/67foodstreet/core"
)

// checkoutAPI is the slice of the api client the flow needs.
type checkoutAPI interface {
	CreateOrder(ctx context.Context, req api.CreateOrderRequest) (*api.CreateOrderResponse, error)
	CreatePayment(ctx context.Context, orderID int, method string) error
	ClearCart(ctx context.Context) error
}

// Input is the order form state.
type Input struct {
	OrderType       api.OrderType
	DeliveryAddress string
	Notes           string
	PaymentLabel    string
}

// Placement is a successful order.
type Placement struct {
	OrderID int
	Total   decimal.Decimal
}

// Flow places orders from the authoritative cart.
type Flow struct {
	client      checkoutAPI
	logger      core.Logger
	navigator   core.Navigator
	deliveryFee decimal.Decimal

	// clearLegacyCart removes any leftover local cart representation from
	// older releases. Optional.
	clearLegacyCart func()
}

func NewFlow(client checkoutAPI, deliveryFee decimal.Decimal, nav core.Navigator, logger core.Logger) *Flow {
	if logger == nil {
		logger = &core.NoOpLogger{}
	}
	return &Flow{
		client:      client,
		logger:      logger,
		navigator:   nav,
		deliveryFee: deliveryFee,
	}
}

// SetLegacyCartCleaner registers the legacy local-cart removal hook.
func (f *Flow) SetLegacyCartCleaner(fn func()) {
	f.clearLegacyCart = fn
}

// Total computes the order total the screen displays: server subtotal plus
// the flat delivery fee for delivery orders. No tax here; the preview tax
// line belongs to the cart summary only.
func (f *Flow) Total(cart *api.Cart, orderType api.OrderType) decimal.Decimal {
	subtotal := decimal.Zero
	if cart != nil {
		subtotal = cart.Subtotal
	}
	if orderType == api.OrderTypeDelivery {
		return subtotal.Add(f.deliveryFee)
	}
	return subtotal
}

// PlaceOrder validates the form, then runs the sequence: create order →
// create payment → clear server cart → clear legacy local cart → navigate
// to the confirmation page. Failure at order or payment aborts with the
// cart fully intact.
func (f *Flow) PlaceOrder(ctx context.Context, cart *api.Cart, in Input) (*Placement, error) {
	if cart == nil || len(cart.Items) == 0 {
		return nil, &core.ClientError{Op: "checkout.PlaceOrder", Kind: "validation",
			Message: "your cart is empty", Err: core.ErrEmptyCart}
	}
	switch in.OrderType {
	case api.OrderTypePickup:
	case api.OrderTypeDelivery:
		if in.DeliveryAddress == "" {
			return nil, core.ValidationError("checkout.PlaceOrder", "please enter delivery address")
		}
	default:
		return nil, core.ValidationError("checkout.PlaceOrder", "please select an order type")
	}

	items := make([]api.OrderItem, 0, len(cart.Items))
	for _, item := range cart.Items {
		items = append(items, api.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	req := api.CreateOrderRequest{
		Type:  in.OrderType,
		Items: items,
		Notes: in.Notes,
	}
	if in.OrderType == api.OrderTypeDelivery {
		req.DeliveryAddress = in.DeliveryAddress
	}

	orderResp, err := f.client.CreateOrder(ctx, req)
	if err != nil {
		f.logger.Error("Order creation failed", map[string]interface{}{
			"items": len(items),
			"error": err.Error(),
		})
		return nil, err
	}
	orderID := orderResp.Order.OrderID

	if err := f.client.CreatePayment(ctx, orderID, api.MapPaymentMethod(in.PaymentLabel)); err != nil {
		f.logger.Error("Payment creation failed", map[string]interface{}{
			"order_id": orderID,
			"error":    err.Error(),
		})
		return nil, err
	}

	// Both writes succeeded; losing the cart can no longer lose the order.
	if err := f.client.ClearCart(ctx); err != nil {
		f.logger.Warn("Cart clear failed after successful order", map[string]interface{}{
			"order_id": orderID,
			"error":    err.Error(),
		})
	}
	if f.clearLegacyCart != nil {
		f.clearLegacyCart()
	}

	total := f.Total(cart, in.OrderType)
	f.logger.Info("Order placed", map[string]interface{}{
		"order_id": orderID,
		"total":    total.StringFixed(2),
	})

	if f.navigator != nil {
		f.navigator.Navigate(fmt.Sprintf("/order/success?orderId=%d", orderID))
	}
	return &Placement{OrderID: orderID, Total: total}, nil
}
