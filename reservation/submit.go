package reservation

import (
	"context"
	"fmt"
	"strings"

	"github.com/0xletuss/67foodstreet/api"
	"github.com/0xletuss/67foodstreet/core"
)

// reservationAPI is the slice of the api client the submission needs.
type reservationAPI interface {
	CreateOrder(ctx context.Context, req api.CreateOrderRequest) (*api.CreateOrderResponse, error)
	CreateReservation(ctx context.Context, req api.CreateReservationRequest) (*api.Reservation, error)
	CreatePayment(ctx context.Context, orderID int, method string) error
}

// Result reports a completed submission. Partial carries enrichment
// failures that did not roll back the created order.
type Result struct {
	OrderID       int
	ReservationID int
	Partial       *PartialError
}

// PartialError lists the best-effort writes that failed after the order was
// created. The order is the source of truth; these failures are surfaced
// instead of swallowed so the caller can warn the user or retry.
type PartialError struct {
	OrderID int
	Failed  []string // "reservation-detail", "payment"
	Errs    []error
}

func (e *PartialError) Error() string {
	return fmt.Sprintf("order %d created but enrichment failed: %s",
		e.OrderID, strings.Join(e.Failed, ", "))
}

// Submit finishes the flow from the confirmation step. Sequence: create the
// order; record the reservation detail; record a payment when the method is
// not cash. Order-creation failure aborts everything and the wizard stays at
// the confirmation step for a retry. Enrichment failures leave the order in
// place and are reported through Result.Partial.
func (w *Wizard) Submit(ctx context.Context, client reservationAPI) (*Result, error) {
	if err := w.requireActive("reservation.Submit", StepConfirm); err != nil {
		return nil, err
	}

	d := w.draft
	orderType := api.OrderTypePickup
	if d.DeliveryMethod == DeliveryDelivery {
		orderType = api.OrderTypeDelivery
	}

	orderReq := api.CreateOrderRequest{
		Type: orderType,
		Items: []api.OrderItem{{
			ProductID: d.ProductID,
			Quantity:  d.Quantity,
			UnitPrice: d.UnitPrice,
		}},
		Notes:           d.SpecialRequests,
		DeliveryAddress: d.DeliveryAddress,
	}

	orderResp, err := client.CreateOrder(ctx, orderReq)
	if err != nil {
		w.logger.Error("Reservation order creation failed", map[string]interface{}{
			"product_id": d.ProductID,
			"error":      err.Error(),
		})
		return nil, fmt.Errorf("%w: %v", core.ErrOrderNotCreated, err)
	}
	orderID := orderResp.Order.OrderID

	result := &Result{OrderID: orderID}
	partial := &PartialError{OrderID: orderID}

	detail, err := client.CreateReservation(ctx, api.CreateReservationRequest{
		ProductID:       d.ProductID,
		ReservationDate: d.ReservationDate,
		NumberOfPeople:  d.NumberOfPeople,
		Quantity:        d.Quantity,
		SpecialRequests: d.SpecialRequests,
		DeliveryMethod:  string(d.DeliveryMethod),
		DeliveryAddress: d.DeliveryAddress,
		PaymentMethod:   string(d.PaymentMethod),
	})
	if err != nil {
		w.logger.Warn("Reservation detail write failed after order creation", map[string]interface{}{
			"order_id": orderID,
			"error":    err.Error(),
		})
		partial.Failed = append(partial.Failed, "reservation-detail")
		partial.Errs = append(partial.Errs, err)
	} else {
		result.ReservationID = detail.ReservationID
	}

	if d.PaymentMethod != PaymentCash {
		if err := client.CreatePayment(ctx, orderID, api.MapPaymentMethod(string(d.PaymentMethod))); err != nil {
			w.logger.Warn("Payment write failed after order creation", map[string]interface{}{
				"order_id": orderID,
				"error":    err.Error(),
			})
			partial.Failed = append(partial.Failed, "payment")
			partial.Errs = append(partial.Errs, err)
		}
	}

	if len(partial.Failed) > 0 {
		result.Partial = partial
	}

	w.phase = StateSubmitted
	w.Reset()
	return result, nil
}
