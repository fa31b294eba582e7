package storefront

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrders_PlaceOrder(t *testing.T) {
	t.Parallel()

	api := newStubAPI().reply(http.MethodPost, "/orders", `{"_id":"o1","totalPrice":8,"paymentMethod":"COD","status":"Pending","createdAt":"2026-01-02T03:04:05Z"}`)
	o := NewOrders(api, signedIn("user"))

	items := []CartItem{
		{Product: Product{ID: "p1", Price: NewPrice(2.5)}, Quantity: 2},
		{Product: Product{ID: "p2", Price: NewPrice(1)}, Quantity: 3},
		{Product: Product{ID: "p3", Price: NewPrice(7)}, Quantity: 0},
	}
	got, err := o.PlaceOrder(context.Background(), items, "")
	require.NoError(t, err)
	assert.Equal(t, "o1", got.ID)
	assert.Equal(t, "Pending", got.Status)
	assert.Equal(t, 2026, got.CreatedAt.Year())

	calls := api.recorded()
	require.Len(t, calls, 1)
	assert.JSONEq(t, `{
		"orderItems":[
			{"product":"p1","quantity":2,"price":2.5},
			{"product":"p2","quantity":3,"price":1}
		],
		"totalPrice":8,
		"paymentMethod":"COD"
	}`, calls[0].body)
}

func TestOrders_TotalRoundedToCents(t *testing.T) {
	t.Parallel()

	req, err := newOrderRequest([]CartItem{
		{Product: Product{ID: "p1", Price: NewPrice(0.1)}, Quantity: 3},
	}, "CARD")
	require.NoError(t, err)
	assert.Equal(t, 0.3, req.TotalPrice)
	assert.Equal(t, "CARD", req.PaymentMethod)
}

func TestOrders_EmptyCart(t *testing.T) {
	t.Parallel()

	api := newStubAPI()
	o := NewOrders(api, signedIn("user"))

	_, err := o.PlaceOrder(context.Background(), nil, "COD")
	assert.ErrorIs(t, err, ErrEmptyCart)
	_, err = o.PlaceOrder(context.Background(), []CartItem{{Product: Product{ID: "p1"}, Quantity: 0}}, "COD")
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Empty(t, api.recorded())
}

func TestOrders_History(t *testing.T) {
	t.Parallel()

	api := newStubAPI().reply(http.MethodGet, "/orders/my-orders", `[
		{"_id":"o1","totalPrice":8,"status":"Pending","createdAt":"2026-01-02T03:04:05Z",
		 "orderItems":[{"product":{"_id":"p1","productName":"Latte"},"quantity":2,"price":2.5}]}
	]`)
	o := NewOrders(api, signedIn("user"))

	orders, err := o.History(context.Background())
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "8.00", orders[0].TotalPrice.String())
	require.Len(t, orders[0].OrderItems, 1)
	assert.Equal(t, "Latte", orders[0].OrderItems[0].Product.Name)

	_, err = NewOrders(api, anonymous()).History(context.Background())
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}
