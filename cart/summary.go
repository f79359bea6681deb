package cart

import (
	"github.com/shopspring/decimal"

	"github.com/0xletuss/67foodstreet/api"
)

// Summary is the cart-screen money preview. The tax line is display-only:
// the authoritative total is computed server-side at order creation and
// never includes it.
type Summary struct {
	Subtotal    decimal.Decimal
	Tax         decimal.Decimal
	DeliveryFee decimal.Decimal
	Total       decimal.Decimal
}

// Summarize computes the preview numbers from the server-reported subtotal.
// The delivery fee applies only to delivery orders; the tax rate comes from
// configuration (core.CheckoutConfig).
func Summarize(cart *api.Cart, orderType api.OrderType, deliveryFee, taxRate decimal.Decimal) Summary {
	subtotal := decimal.Zero
	if cart != nil {
		subtotal = cart.Subtotal
	}

	fee := decimal.Zero
	if orderType == api.OrderTypeDelivery {
		fee = deliveryFee
	}

	tax := subtotal.Mul(taxRate).Round(2)

	return Summary{
		Subtotal:    subtotal,
		Tax:         tax,
		DeliveryFee: fee,
		Total:       subtotal.Add(tax).Add(fee).Round(2),
	}
}
