package storefront

import (
	"context"
	"fmt"
	"net/url"
	"sync"

	"github.com/Skotchmaster/coffee_shop/pkg/logging"
)

// Favorites follows the same fetch and replace rule as Cart.
type Favorites struct {
	api     API
	session Session

	mu     sync.RWMutex
	items  []Favorite
	loaded bool
}

func NewFavorites(api API, s Session) *Favorites {
	return &Favorites{api: api, session: s}
}

func (f *Favorites) Refresh(ctx context.Context) ([]Favorite, error) {
	if _, err := requireUser(f.session); err != nil {
		return nil, err
	}
	var out []Favorite
	if err := f.api.Get(ctx, "/favorites", &out); err != nil {
		return nil, fmt.Errorf("load favorites: %w", err)
	}

	f.mu.Lock()
	f.items = out
	f.loaded = true
	f.mu.Unlock()

	return f.Items(), nil
}

func (f *Favorites) Items() []Favorite {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return append([]Favorite(nil), f.items...)
}

func (f *Favorites) Contains(productID string) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, fav := range f.items {
		if fav.Product.ID == productID {
			return true
		}
	}
	return false
}

type addFavoriteRequest struct {
	ProductID string `json:"productId"`
}

func (f *Favorites) Add(ctx context.Context, productID string) error {
	if _, err := requireUser(f.session); err != nil {
		return err
	}
	if err := requireID("product", productID); err != nil {
		return err
	}

	var fav Favorite
	if err := f.api.Post(ctx, "/favorites/add", addFavoriteRequest{ProductID: productID}, &fav); err != nil {
		logging.FromContext(ctx).With("svc", "favorites.add").Warn("add_favorite_failed", "product_id", productID, "error", err)
		return fmt.Errorf("add favorite: %w", err)
	}

	f.mu.Lock()
	if fav.Product.ID == productID {
		f.items = append(f.items, fav)
	} else {
		// the reply did not carry the product; reload on next read
		f.items, f.loaded = nil, false
	}
	f.mu.Unlock()
	return nil
}

func (f *Favorites) Remove(ctx context.Context, productID string) error {
	if _, err := requireUser(f.session); err != nil {
		return err
	}
	if err := requireID("product", productID); err != nil {
		return err
	}
	if err := f.api.Delete(ctx, "/favorites/remove/"+url.PathEscape(productID), nil); err != nil {
		logging.FromContext(ctx).With("svc", "favorites.remove").Warn("remove_favorite_failed", "product_id", productID, "error", err)
		return fmt.Errorf("remove favorite: %w", err)
	}

	f.mu.Lock()
	kept := f.items[:0]
	for _, fav := range f.items {
		if fav.Product.ID != productID {
			kept = append(kept, fav)
		}
	}
	f.items = kept
	f.mu.Unlock()
	return nil
}

// Toggle flips the favorite flag and reports whether the product is now a
// favorite.
func (f *Favorites) Toggle(ctx context.Context, productID string) (bool, error) {
	if _, err := requireUser(f.session); err != nil {
		return false, err
	}
	if err := requireID("product", productID); err != nil {
		return false, err
	}

	f.mu.RLock()
	loaded := f.loaded
	f.mu.RUnlock()
	if !loaded {
		if _, err := f.Refresh(ctx); err != nil {
			return false, err
		}
	}

	if f.Contains(productID) {
		return false, f.Remove(ctx, productID)
	}
	return true, f.Add(ctx, productID)
}
