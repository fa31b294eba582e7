package storefront

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/url"
	"sync"
	"time"

	"github.com/Skotchmaster/coffee_shop/pkg/logging"
)

// Cart keeps an advisory snapshot of the server's cart. The snapshot is
// replaced on Refresh and changed locally only after the server accepts a
// mutation.
type Cart struct {
	api     API
	session Session
	now     func() time.Time

	mu        sync.RWMutex
	items     []CartItem
	loaded    bool
	fetchedAt time.Time
}

func NewCart(api API, s Session) *Cart {
	return &Cart{api: api, session: s, now: time.Now}
}

type cartResponse struct {
	CartItems json.RawMessage `json:"cartItems"`
}

func (c *Cart) Refresh(ctx context.Context) ([]CartItem, error) {
	if _, err := requireUser(c.session); err != nil {
		return nil, err
	}

	var resp cartResponse
	if err := c.api.Get(ctx, "/carts", &resp); err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	raw := bytes.TrimSpace(resp.CartItems)
	if len(raw) == 0 || raw[0] != '[' {
		logging.FromContext(ctx).With("svc", "cart.refresh").Error("cart_malformed", "cart_items", string(raw))
		return nil, fmt.Errorf("cartItems is not an array: %w", ErrMalformedResponse)
	}
	var items []CartItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decode cart items: %w: %v", ErrMalformedResponse, err)
	}

	kept := items[:0]
	for _, it := range items {
		if it.Quantity > 0 {
			kept = append(kept, it)
		}
	}

	c.mu.Lock()
	c.items = kept
	c.loaded = true
	c.fetchedAt = c.now()
	c.mu.Unlock()

	return c.Items(), nil
}

func (c *Cart) Items() []CartItem {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]CartItem(nil), c.items...)
}

func (c *Cart) Total() float64 {
	return CartTotal(c.Items())
}

func (c *Cart) FormatTotal() string {
	return FormatMoney(c.Total())
}

// Invalidate drops the snapshot; the next read goes back to the server.
func (c *Cart) Invalidate() {
	c.mu.Lock()
	c.items = nil
	c.loaded = false
	c.fetchedAt = time.Time{}
	c.mu.Unlock()
}

// FetchedAt is zero when no snapshot is held.
func (c *Cart) FetchedAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.fetchedAt
}

type addToCartRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

func (c *Cart) Add(ctx context.Context, productID string, quantity int) error {
	if _, err := requireUser(c.session); err != nil {
		return err
	}
	if err := requireID("product", productID); err != nil {
		return err
	}
	if quantity < 1 {
		return fmt.Errorf("quantity must be more than zero: %w", ErrValidation)
	}

	if err := c.api.Post(ctx, "/carts/add", addToCartRequest{ProductID: productID, Quantity: quantity}, nil); err != nil {
		logging.FromContext(ctx).With("svc", "cart.add").Warn("add_to_cart_failed", "product_id", productID, "error", err)
		return fmt.Errorf("add to cart: %w", err)
	}
	c.Invalidate()
	return nil
}

func (c *Cart) Increase(ctx context.Context, productID string) error {
	item, err := c.lookup(ctx, productID)
	if err != nil {
		return err
	}
	return c.setQuantity(ctx, productID, item.Quantity+1)
}

// Decrease at quantity one removes the line.
func (c *Cart) Decrease(ctx context.Context, productID string) error {
	item, err := c.lookup(ctx, productID)
	if err != nil {
		return err
	}
	if item.Quantity <= 1 {
		return c.Remove(ctx, productID)
	}
	return c.setQuantity(ctx, productID, item.Quantity-1)
}

func (c *Cart) Remove(ctx context.Context, productID string) error {
	if _, err := requireUser(c.session); err != nil {
		return err
	}
	if err := requireID("product", productID); err != nil {
		return err
	}
	if err := c.api.Delete(ctx, "/carts/remove/"+url.PathEscape(productID), nil); err != nil {
		logging.FromContext(ctx).With("svc", "cart.remove").Warn("remove_from_cart_failed", "product_id", productID, "error", err)
		return fmt.Errorf("remove from cart: %w", err)
	}

	c.mu.Lock()
	kept := c.items[:0]
	for _, it := range c.items {
		if it.Product.ID != productID {
			kept = append(kept, it)
		}
	}
	c.items = kept
	c.mu.Unlock()
	return nil
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

func (c *Cart) setQuantity(ctx context.Context, productID string, quantity int) error {
	if err := c.api.Put(ctx, "/carts/update/"+url.PathEscape(productID), updateQuantityRequest{Quantity: quantity}, nil); err != nil {
		logging.FromContext(ctx).With("svc", "cart.update").Warn("update_quantity_failed", "product_id", productID, "quantity", quantity, "error", err)
		return fmt.Errorf("update quantity: %w", err)
	}

	c.mu.Lock()
	for i := range c.items {
		if c.items[i].Product.ID == productID {
			c.items[i].Quantity = quantity
		}
	}
	c.mu.Unlock()
	return nil
}

// lookup finds a line in the snapshot, loading one first when none is held.
func (c *Cart) lookup(ctx context.Context, productID string) (CartItem, error) {
	if _, err := requireUser(c.session); err != nil {
		return CartItem{}, err
	}
	if err := requireID("product", productID); err != nil {
		return CartItem{}, err
	}

	c.mu.RLock()
	loaded := c.loaded
	c.mu.RUnlock()
	if !loaded {
		if _, err := c.Refresh(ctx); err != nil {
			return CartItem{}, err
		}
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, it := range c.items {
		if it.Product.ID == productID {
			return it, nil
		}
	}
	return CartItem{}, fmt.Errorf("product %s: %w", productID, ErrNotInCart)
}

// CartTotal sums price times quantity. Lines without a numeric price add
// nothing.
func CartTotal(items []CartItem) float64 {
	var sum float64
	for _, it := range items {
		if it.Quantity <= 0 {
			continue
		}
		sum += it.Product.Price.Value() * float64(it.Quantity)
	}
	return sum
}

// RoundCents rounds half away from zero to two decimals.
func RoundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

func FormatMoney(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
