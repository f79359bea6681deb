package api

import (
	"context"
	"fmt"
	"net/http"
)

// CreateOrder submits an order and returns the server-assigned order id
// needed by the subsequent payment call.
func (c *Client) CreateOrder(ctx context.Context, req CreateOrderRequest) (*CreateOrderResponse, error) {
	var resp CreateOrderResponse
	if err := c.do(ctx, "orders.Create", http.MethodPost, "/orders/create", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CreatePayment records a payment against an existing order. The method must
// already be mapped to the server vocabulary, see MapPaymentMethod.
func (c *Client) CreatePayment(ctx context.Context, orderID int, method string) error {
	path := fmt.Sprintf("/orders/%d/payment", orderID)
	return c.do(ctx, "orders.CreatePayment", http.MethodPost, path, PaymentRequest{PaymentMethod: method}, nil)
}

// ListCustomerOrders fetches the authenticated customer's order history.
func (c *Client) ListCustomerOrders(ctx context.Context) ([]Order, error) {
	var resp struct {
		Orders []Order `json:"orders"`
	}
	if err := c.get(ctx, "orders.ListCustomer", "/customer/orders", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Orders, nil
}

// CancelOrder cancels a pending order.
func (c *Client) CancelOrder(ctx context.Context, orderID int) error {
	path := fmt.Sprintf("/customer/orders/%d/cancel", orderID)
	return c.do(ctx, "orders.Cancel", http.MethodPut, path, nil, nil)
}

// paymentMethodMap translates the labels shown to the user into the ENUM
// values the backend accepts: Cash, Credit Card, E-Wallet, Bank Transfer.
var paymentMethodMap = map[string]string{
	"cash":             "Cash",
	"Cash on Delivery": "Cash",
	"card":             "Credit Card",
	"Credit Card":      "Credit Card",
	"Debit Card":       "Credit Card",
	"gcash":            "E-Wallet",
	"GCash":            "E-Wallet",
	"PayMaya":          "E-Wallet",
	"Bank Transfer":    "Bank Transfer",
}

// MapPaymentMethod maps a user-facing payment label to the server-accepted
// vocabulary. Unknown labels fall back to Cash.
func MapPaymentMethod(label string) string {
	if mapped, ok := paymentMethodMap[label]; ok {
		return mapped
	}
	return "Cash"
}
