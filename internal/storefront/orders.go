package storefront

import (
	"context"
	"fmt"
	"strings"

	"github.com/Skotchmaster/coffee_shop/pkg/logging"
)

const DefaultPaymentMethod = "COD"

type Orders struct {
	api     API
	session Session
}

func NewOrders(api API, s Session) *Orders {
	return &Orders{api: api, session: s}
}

type orderLine struct {
	Product  string  `json:"product"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

type placeOrderRequest struct {
	OrderItems    []orderLine `json:"orderItems"`
	TotalPrice    float64     `json:"totalPrice"`
	PaymentMethod string      `json:"paymentMethod"`
}

// newOrderRequest builds the checkout body for items. Lines with no quantity
// are left out.
func newOrderRequest(items []CartItem, paymentMethod string) (placeOrderRequest, error) {
	req := placeOrderRequest{PaymentMethod: strings.TrimSpace(paymentMethod)}
	if req.PaymentMethod == "" {
		req.PaymentMethod = DefaultPaymentMethod
	}
	for _, it := range items {
		if it.Quantity <= 0 {
			continue
		}
		req.OrderItems = append(req.OrderItems, orderLine{
			Product:  it.Product.ID,
			Quantity: it.Quantity,
			Price:    it.Product.Price.Value(),
		})
	}
	if len(req.OrderItems) == 0 {
		return placeOrderRequest{}, ErrEmptyCart
	}
	req.TotalPrice = RoundCents(CartTotal(items))
	return req, nil
}

func (o *Orders) PlaceOrder(ctx context.Context, items []CartItem, paymentMethod string) (Order, error) {
	u, err := requireUser(o.session)
	if err != nil {
		return Order{}, err
	}
	body, err := newOrderRequest(items, paymentMethod)
	if err != nil {
		return Order{}, err
	}
	l := logging.FromContext(ctx).With("svc", "orders.place", "user_id", u.ID)

	var out Order
	if err := o.api.Post(ctx, "/orders", body, &out); err != nil {
		l.Warn("place_order_failed", "total", body.TotalPrice, "error", err)
		return Order{}, fmt.Errorf("place order: %w", err)
	}
	l.Info("order_placed", "order_id", out.ID, "total", body.TotalPrice)
	return out, nil
}

func (o *Orders) History(ctx context.Context) ([]Order, error) {
	if _, err := requireUser(o.session); err != nil {
		return nil, err
	}
	var out []Order
	if err := o.api.Get(ctx, "/orders/my-orders", &out); err != nil {
		return nil, fmt.Errorf("load orders: %w", err)
	}
	return out, nil
}
