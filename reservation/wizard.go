// Package reservation implements the 4-step booking wizard as an explicit
// state machine: validation and draft collection are pure of any rendering,
// so a UI layer only observes the current step and the confirmation summary.
package reservation

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/0xletuss/67foodstreet/api"
	"github.com/0xletuss/67foodstreet/core"
)

// Step is the wizard position.
type Step int

const (
	StepProductQtyDate Step = 1
	StepDelivery       Step = 2
	StepPayment        Step = 3
	StepConfirm        Step = 4
)

// State covers the wizard lifecycle; Submitted and Cancelled are terminal.
type State int

const (
	StateIdle State = iota
	StateActive
	StateSubmitted
	StateCancelled
)

type DeliveryMethod string

const (
	DeliveryPickup   DeliveryMethod = "pickup"
	DeliveryDelivery DeliveryMethod = "delivery"
)

type PaymentMethod string

const (
	PaymentCash  PaymentMethod = "cash"
	PaymentGCash PaymentMethod = "gcash"
	PaymentCard  PaymentMethod = "card"
)

// paymentLabels are the confirmation-screen names for each method.
var paymentLabels = map[PaymentMethod]string{
	PaymentCash:  "Cash on Delivery/Pickup",
	PaymentGCash: "GCash",
	PaymentCard:  "Credit/Debit Card",
}

// Draft accumulates the form fields across steps. It lives only inside the
// wizard and is never partially persisted to the server.
type Draft struct {
	ProductID       int
	ProductName     string
	UnitPrice       decimal.Decimal
	Quantity        int
	ReservationDate time.Time
	NumberOfPeople  int
	DeliveryMethod  DeliveryMethod
	DeliveryAddress string
	PaymentMethod   PaymentMethod
	SpecialRequests string
	TotalAmount     decimal.Decimal
}

// Step1Input are the product/quantity/date form fields.
type Step1Input struct {
	ReservationDate time.Time
	NumberOfPeople  int
	Quantity        int
	SpecialRequests string
}

// Step2Input are the delivery form fields.
type Step2Input struct {
	Method  DeliveryMethod
	Address string
}

// Step3Input is the payment form field.
type Step3Input struct {
	Method PaymentMethod
}

// Confirmation is the Step4 summary, recomputed purely from the draft.
type Confirmation struct {
	ProductName    string
	Quantity       int
	UnitPrice      decimal.Decimal
	Date           time.Time
	People         int
	DeliveryMethod string
	Address        string
	PaymentMethod  string
	Total          decimal.Decimal
}

// Wizard is one booking flow for one product. Not safe for concurrent use;
// each view owns its own instance.
type Wizard struct {
	logger core.Logger
	now    func() time.Time

	state Step
	phase State
	draft Draft

	// stockBound is captured when the wizard opens and bounds the quantity
	// for the whole flow.
	stockBound int

	confirmation *Confirmation
}

// NewWizard creates an idle wizard. Open starts a flow.
func NewWizard(logger core.Logger) *Wizard {
	if logger == nil {
		logger = &core.NoOpLogger{}
	}
	return &Wizard{logger: logger, now: time.Now}
}

// SetClock overrides the time source, used by tests.
func (w *Wizard) SetClock(now func() time.Time) { w.now = now }

// Open starts the flow for a product, snapshotting its unit price and stock.
func (w *Wizard) Open(product *api.Product) error {
	if product == nil {
		return core.ValidationError("reservation.Open", "product not loaded")
	}
	if product.Stock <= 0 {
		return &core.ClientError{Op: "reservation.Open", Kind: "validation",
			Message: "this product is out of stock", Err: core.ErrOutOfStock}
	}

	w.draft = Draft{
		ProductID:      product.ProductID,
		ProductName:    product.ProductName,
		UnitPrice:      product.UnitPrice,
		Quantity:       1,
		NumberOfPeople: 1,
		DeliveryMethod: DeliveryPickup,
		PaymentMethod:  PaymentCash,
	}
	w.stockBound = product.Stock
	w.state = StepProductQtyDate
	w.phase = StateActive
	w.confirmation = nil
	return nil
}

// Step returns the current wizard position.
func (w *Wizard) Step() Step { return w.state }

// Phase returns the lifecycle state.
func (w *Wizard) Phase() State { return w.phase }

// Draft returns a copy of the accumulated draft.
func (w *Wizard) Draft() Draft { return w.draft }

// StockBound returns the quantity bound captured at open.
func (w *Wizard) StockBound() int { return w.stockBound }

func (w *Wizard) requireActive(op string, at Step) error {
	if w.phase != StateActive {
		return core.ValidationError(op, "wizard is not active")
	}
	if w.state != at {
		return core.ValidationError(op, fmt.Sprintf("wizard is at step %d, not %d", w.state, at))
	}
	return nil
}

// NextFromStep1 validates the product/quantity/date fields and, on success,
// collects them into the draft and advances to the delivery step. On
// failure the wizard stays at Step1 with the draft untouched.
func (w *Wizard) NextFromStep1(in Step1Input) error {
	if err := w.requireActive("reservation.Step1", StepProductQtyDate); err != nil {
		return err
	}

	if in.ReservationDate.IsZero() {
		return core.ValidationError("reservation.Step1", "please select a reservation date")
	}
	if !in.ReservationDate.After(w.now()) {
		return core.ValidationError("reservation.Step1", "reservation date must be in the future")
	}
	if in.NumberOfPeople < 1 {
		return core.ValidationError("reservation.Step1", "please enter number of people")
	}
	if in.Quantity < 1 {
		return core.ValidationError("reservation.Step1", "please select quantity")
	}
	if in.Quantity > w.stockBound {
		return &core.ClientError{Op: "reservation.Step1", Kind: "validation",
			Message: "quantity exceeds available stock", Err: core.ErrStockExceeded}
	}

	w.draft.ReservationDate = in.ReservationDate
	w.draft.NumberOfPeople = in.NumberOfPeople
	w.draft.Quantity = in.Quantity
	w.draft.SpecialRequests = in.SpecialRequests
	// Total is fixed here from the unit price snapshotted at open; a product
	// update mid-flow must not change an amount the user already saw.
	w.draft.TotalAmount = w.draft.UnitPrice.Mul(decimal.NewFromInt(int64(in.Quantity)))

	w.state = StepDelivery
	return nil
}

// NextFromStep2 validates the delivery fields and advances to payment.
func (w *Wizard) NextFromStep2(in Step2Input) error {
	if err := w.requireActive("reservation.Step2", StepDelivery); err != nil {
		return err
	}

	switch in.Method {
	case DeliveryPickup:
		w.draft.DeliveryAddress = ""
	case DeliveryDelivery:
		if in.Address == "" {
			return core.ValidationError("reservation.Step2", "please enter delivery address")
		}
		w.draft.DeliveryAddress = in.Address
	default:
		return core.ValidationError("reservation.Step2", "please select a delivery method")
	}
	w.draft.DeliveryMethod = in.Method

	w.state = StepPayment
	return nil
}

// NextFromStep3 validates the payment method and advances to the
// confirmation step, recomputing the summary purely from the draft.
func (w *Wizard) NextFromStep3(in Step3Input) error {
	if err := w.requireActive("reservation.Step3", StepPayment); err != nil {
		return err
	}

	switch in.Method {
	case PaymentCash, PaymentGCash, PaymentCard:
		w.draft.PaymentMethod = in.Method
	default:
		return core.ValidationError("reservation.Step3", "please select a payment method")
	}

	w.confirmation = w.buildConfirmation()
	w.state = StepConfirm
	return nil
}

// Back moves one step backwards without validating. Collected draft fields
// survive, so returning forward does not lose data.
func (w *Wizard) Back() {
	if w.phase != StateActive || w.state <= StepProductQtyDate {
		return
	}
	w.state--
}

// Confirmation returns the Step4 summary, nil before it is reached.
func (w *Wizard) Confirmation() *Confirmation {
	return w.confirmation
}

func (w *Wizard) buildConfirmation() *Confirmation {
	method := "Pick Up"
	if w.draft.DeliveryMethod == DeliveryDelivery {
		method = "Delivery"
	}
	return &Confirmation{
		ProductName:    w.draft.ProductName,
		Quantity:       w.draft.Quantity,
		UnitPrice:      w.draft.UnitPrice,
		Date:           w.draft.ReservationDate,
		People:         w.draft.NumberOfPeople,
		DeliveryMethod: method,
		Address:        w.draft.DeliveryAddress,
		PaymentMethod:  paymentLabels[w.draft.PaymentMethod],
		Total:          w.draft.TotalAmount,
	}
}

// Cancel abandons the flow from any non-terminal state (modal dismissed,
// escape key, outside click).
func (w *Wizard) Cancel() {
	if w.phase != StateActive {
		return
	}
	w.phase = StateCancelled
	w.Reset()
}

// Reset clears the draft and returns to Step1 for the next invocation.
// Terminal phases stay recorded until the next Open.
func (w *Wizard) Reset() {
	w.draft = Draft{}
	w.stockBound = 0
	w.confirmation = nil
	w.state = StepProductQtyDate
}
