package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0xletuss/67foodstreet/api"
	"github.com/0xletuss/67foodstreet/core"
)

// fakeCartAPI serves the cart it holds and records mutation calls.
type fakeCartAPI struct {
	cart *api.Cart

	getCalls    int
	addCalls    int
	updateCalls int
	removeCalls int
	clearCalls  int

	mutateErr error
	getErr    error
}

func (f *fakeCartAPI) GetCart(ctx context.Context) (*api.Cart, error) {
	f.getCalls++
	if f.getErr != nil {
		return nil, f.getErr
	}
	copied := *f.cart
	return &copied, nil
}

func (f *fakeCartAPI) AddCartItem(ctx context.Context, productID, quantity int) error {
	f.addCalls++
	return f.mutateErr
}

func (f *fakeCartAPI) UpdateCartItem(ctx context.Context, cartItemID, quantity int) error {
	f.updateCalls++
	return f.mutateErr
}

func (f *fakeCartAPI) RemoveCartItem(ctx context.Context, cartItemID int) error {
	f.removeCalls++
	return f.mutateErr
}

func (f *fakeCartAPI) ClearCart(ctx context.Context) error {
	f.clearCalls++
	return f.mutateErr
}

func testCart() *api.Cart {
	return &api.Cart{
		Items: []api.CartItem{
			{CartItemID: 11, ProductID: 1, ProductName: "Adobo Rice Bowl", Quantity: 2, UnitPrice: decimal.NewFromInt(50), Stock: 5},
			{CartItemID: 12, ProductID: 2, ProductName: "Buko Juice", Quantity: 1, UnitPrice: decimal.NewFromInt(100), Stock: 3},
		},
		Subtotal:   decimal.NewFromInt(200),
		TotalItems: 3,
	}
}

func TestRefreshNotifiesBadge(t *testing.T) {
	fake := &fakeCartAPI{cart: testCart()}
	ctrl := NewController(fake, nil)

	var badge int
	ctrl.OnBadgeUpdate(func(count int) { badge = count })

	cart, err := ctrl.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, cart.TotalItems)
	assert.Equal(t, 3, badge)
	assert.NotNil(t, ctrl.Cart())
}

func TestAddItemValidation(t *testing.T) {
	fake := &fakeCartAPI{cart: testCart()}
	ctrl := NewController(fake, nil)

	inStock := &api.Product{ProductID: 1, Stock: 3, IsAvailable: true}

	tests := []struct {
		name     string
		product  *api.Product
		quantity int
		wantErr  error
	}{
		{"zero quantity", inStock, 0, core.ErrValidation},
		{"negative quantity", inStock, -2, core.ErrValidation},
		{"unavailable product", &api.Product{ProductID: 1, Stock: 3}, 1, core.ErrOutOfStock},
		{"zero stock", &api.Product{ProductID: 1, IsAvailable: true}, 1, core.ErrOutOfStock},
		{"quantity above stock", inStock, 5, core.ErrStockExceeded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ctrl.AddItem(context.Background(), tt.product, tt.quantity)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
	// Nothing reached the network.
	assert.Equal(t, 0, fake.addCalls)
}

func TestAddItemRefetchesAfterMutation(t *testing.T) {
	fake := &fakeCartAPI{cart: testCart()}
	ctrl := NewController(fake, nil)

	product := &api.Product{ProductID: 1, Stock: 5, IsAvailable: true}
	require.NoError(t, ctrl.AddItem(context.Background(), product, 2))

	assert.Equal(t, 1, fake.addCalls)
	assert.Equal(t, 1, fake.getCalls)
}

func TestFailedMutationKeepsSnapshot(t *testing.T) {
	fake := &fakeCartAPI{cart: testCart()}
	ctrl := NewController(fake, nil)

	before, err := ctrl.Refresh(context.Background())
	require.NoError(t, err)

	fake.mutateErr = errors.New("insufficient stock")
	err = ctrl.UpdateQuantity(context.Background(), 11, 3)
	require.Error(t, err)

	assert.Equal(t, before, ctrl.Cart())
	// The failed mutation did not trigger a refetch.
	assert.Equal(t, 1, fake.getCalls)
}

func TestUpdateQuantityZeroRemovesLine(t *testing.T) {
	fake := &fakeCartAPI{cart: testCart()}
	ctrl := NewController(fake, nil)

	for _, q := range []int{0, -1} {
		require.NoError(t, ctrl.UpdateQuantity(context.Background(), 11, q))
	}
	assert.Equal(t, 2, fake.removeCalls)
	assert.Equal(t, 0, fake.updateCalls)
}

func TestUpdateQuantityStockBound(t *testing.T) {
	fake := &fakeCartAPI{cart: testCart()}
	ctrl := NewController(fake, nil)
	_, err := ctrl.Refresh(context.Background())
	require.NoError(t, err)

	// Line 12 has 3 in stock.
	err = ctrl.UpdateQuantity(context.Background(), 12, 4)
	assert.ErrorIs(t, err, core.ErrStockExceeded)
	assert.Equal(t, 0, fake.updateCalls)

	require.NoError(t, ctrl.UpdateQuantity(context.Background(), 12, 3))
	assert.Equal(t, 1, fake.updateCalls)
}

func TestClear(t *testing.T) {
	fake := &fakeCartAPI{cart: testCart()}
	ctrl := NewController(fake, nil)

	require.NoError(t, ctrl.Clear(context.Background()))
	assert.Equal(t, 1, fake.clearCalls)
	assert.Equal(t, 1, fake.getCalls)
}

func TestSummarize(t *testing.T) {
	cart := testCart() // subtotal 200

	tests := []struct {
		name      string
		orderType api.OrderType
		wantTax   string
		wantFee   string
		wantTotal string
	}{
		{"pickup has no fee", api.OrderTypePickup, "24", "0", "224"},
		{"delivery adds flat fee", api.OrderTypeDelivery, "24", "50", "274"},
	}

	fee := decimal.NewFromInt(50)
	rate := decimal.RequireFromString("0.12")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Summarize(cart, tt.orderType, fee, rate)
			assert.True(t, s.Tax.Equal(decimal.RequireFromString(tt.wantTax)), "tax = %s", s.Tax)
			assert.True(t, s.DeliveryFee.Equal(decimal.RequireFromString(tt.wantFee)), "fee = %s", s.DeliveryFee)
			assert.True(t, s.Total.Equal(decimal.RequireFromString(tt.wantTotal)), "total = %s", s.Total)
		})
	}
}

func TestSummarizeNilCart(t *testing.T) {
	s := Summarize(nil, api.OrderTypeDelivery, decimal.NewFromInt(50), decimal.RequireFromString("0.12"))
	assert.True(t, s.Subtotal.IsZero())
	assert.True(t, s.Tax.IsZero())
	assert.True(t, s.Total.Equal(decimal.NewFromInt(50)))
}

func TestSummarizeHonorsConfiguredRate(t *testing.T) {
	cart := testCart() // subtotal 200
	s := Summarize(cart, api.OrderTypePickup, decimal.NewFromInt(50), decimal.RequireFromString("0.10"))
	assert.True(t, s.Tax.Equal(decimal.NewFromInt(20)), "tax = %s", s.Tax)
	assert.True(t, s.Total.Equal(decimal.NewFromInt(220)), "total = %s", s.Total)
}

func TestSummarizeRounding(t *testing.T) {
	cart := &api.Cart{Subtotal: decimal.RequireFromString("99.99")}
	s := Summarize(cart, api.OrderTypePickup, decimal.NewFromInt(50), decimal.RequireFromString("0.12"))
	// 99.99 * 0.12 = 11.9988, rounded to centavos.
	assert.Equal(t, "12", s.Tax.String())
	assert.True(t, s.Total.Equal(decimal.RequireFromString("111.99")))
}
