package storefront

import (
	"context"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/Skotchmaster/coffee_shop/pkg/logging"
)

// Catalog backs the home screen: categories, products and the admin tools
// that add or remove them.
type Catalog struct {
	api     API
	session Session
}

func NewCatalog(api API, s Session) *Catalog {
	return &Catalog{api: api, session: s}
}

func (c *Catalog) Categories(ctx context.Context) ([]Category, error) {
	var out []Category
	if err := c.api.Get(ctx, "/categories", &out); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return out, nil
}

func (c *Catalog) Products(ctx context.Context) ([]Product, error) {
	var out []Product
	if err := c.api.Get(ctx, "/products", &out); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return out, nil
}

type HomePage struct {
	Categories []Category
	Products   []Product
}

// Home loads categories first, then products, the order the home screen
// shows them in.
func (c *Catalog) Home(ctx context.Context) (HomePage, error) {
	cats, err := c.Categories(ctx)
	if err != nil {
		return HomePage{}, err
	}
	prods, err := c.Products(ctx)
	if err != nil {
		return HomePage{}, err
	}
	return HomePage{Categories: cats, Products: prods}, nil
}

// FilterByCategory keeps the products whose category matches. An empty id
// keeps everything.
func FilterByCategory(products []Product, categoryID string) []Product {
	if categoryID == "" {
		return products
	}
	out := make([]Product, 0, len(products))
	for _, p := range products {
		if p.Category.ID == categoryID {
			out = append(out, p)
		}
	}
	return out
}

type categoryPayload struct {
	Name string `json:"categoryName"`
}

func (c *Catalog) AddCategory(ctx context.Context, name string) (Category, error) {
	if err := requireAdmin(c.session); err != nil {
		return Category{}, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return Category{}, fmt.Errorf("category name is required: %w", ErrValidation)
	}

	var out Category
	if err := c.api.Post(ctx, "/categories", categoryPayload{Name: name}, &out); err != nil {
		logging.FromContext(ctx).With("svc", "catalog.add_category").Warn("add_category_failed", "name", name, "error", err)
		return Category{}, fmt.Errorf("add category: %w", err)
	}
	return out, nil
}

func (c *Catalog) DeleteCategory(ctx context.Context, id string) error {
	if err := requireAdmin(c.session); err != nil {
		return err
	}
	if err := requireID("category", id); err != nil {
		return err
	}
	if err := c.api.Delete(ctx, "/categories/"+url.PathEscape(id), nil); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

// ProductInput is the admin form. Price stays text until validated.
type ProductInput struct {
	Name       string
	Price      string
	ImageURL   string
	CategoryID string
}

type productPayload struct {
	Name     string  `json:"productName"`
	Price    float64 `json:"price"`
	ImageURL string  `json:"imageURL"`
	Category string  `json:"category"`
}

func (in ProductInput) payload() (productPayload, error) {
	name := strings.TrimSpace(in.Name)
	priceText := strings.TrimSpace(in.Price)
	if name == "" || priceText == "" {
		return productPayload{}, fmt.Errorf("product name and price are required: %w", ErrValidation)
	}
	price, err := strconv.ParseFloat(priceText, 64)
	if err != nil || !(price > 0) || math.IsInf(price, 1) {
		return productPayload{}, fmt.Errorf("price must be a positive number: %w", ErrValidation)
	}
	return productPayload{
		Name:     name,
		Price:    price,
		ImageURL: strings.TrimSpace(in.ImageURL),
		Category: strings.TrimSpace(in.CategoryID),
	}, nil
}

func (c *Catalog) AddProduct(ctx context.Context, in ProductInput) (Product, error) {
	if err := requireAdmin(c.session); err != nil {
		return Product{}, err
	}
	body, err := in.payload()
	if err != nil {
		return Product{}, err
	}

	var out Product
	if err := c.api.Post(ctx, "/products", body, &out); err != nil {
		logging.FromContext(ctx).With("svc", "catalog.add_product").Warn("add_product_failed", "name", body.Name, "error", err)
		return Product{}, fmt.Errorf("add product: %w", err)
	}
	return out, nil
}

func (c *Catalog) DeleteProduct(ctx context.Context, id string) error {
	if err := requireAdmin(c.session); err != nil {
		return err
	}
	if err := requireID("product", id); err != nil {
		return err
	}
	if err := c.api.Delete(ctx, "/products/"+url.PathEscape(id), nil); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}
