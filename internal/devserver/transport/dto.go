package transport

import (
	"time"

	"github.com/Skotchmaster/coffee_shop/internal/devserver/models"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UpdateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

type CategoryRequest struct {
	Name string `json:"categoryName"`
}

type ProductRequest struct {
	Name        string  `json:"productName"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"imageURL"`
	Category    string  `json:"category"`
}

type AddToCartRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type UpdateCartRequest struct {
	Quantity int `json:"quantity"`
}

type FavoriteRequest struct {
	ProductID string `json:"productId"`
}

type OrderItemRequest struct {
	Product  string  `json:"product"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

type CreateOrderRequest struct {
	OrderItems    []OrderItemRequest `json:"orderItems"`
	TotalPrice    float64            `json:"totalPrice"`
	PaymentMethod string             `json:"paymentMethod"`
}

type Message struct {
	Message string `json:"message"`
}

type User struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
	Token string `json:"token,omitempty"`
}

type Category struct {
	ID   string `json:"_id"`
	Name string `json:"categoryName"`
}

type Product struct {
	ID          string    `json:"_id"`
	Name        string    `json:"productName"`
	Description string    `json:"description,omitempty"`
	Price       float64   `json:"price"`
	ImageURL    string    `json:"imageURL"`
	Category    *Category `json:"category"`
}

type CartItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

type Cart struct {
	CartItems []CartItem `json:"cartItems"`
}

type Favorite struct {
	ID      string  `json:"_id"`
	Product Product `json:"product"`
}

type OrderProduct struct {
	ID   string `json:"_id"`
	Name string `json:"productName"`
}

type OrderItem struct {
	Product  OrderProduct `json:"product"`
	Quantity int          `json:"quantity"`
	Price    float64      `json:"price"`
}

type Order struct {
	ID            string      `json:"_id"`
	OrderItems    []OrderItem `json:"orderItems"`
	TotalPrice    float64     `json:"totalPrice"`
	PaymentMethod string      `json:"paymentMethod"`
	Status        string      `json:"status"`
	CreatedAt     time.Time   `json:"createdAt"`
}

func FromUser(u *models.User, token string) User {
	return User{ID: u.ID.String(), Name: u.Name, Email: u.Email, Role: u.Role, Token: token}
}

func FromCategory(c *models.Category) Category {
	return Category{ID: c.ID.String(), Name: c.Name}
}

func FromCategories(cats []models.Category) []Category {
	out := make([]Category, 0, len(cats))
	for i := range cats {
		out = append(out, FromCategory(&cats[i]))
	}
	return out
}

func FromProduct(p *models.Product) Product {
	out := Product{
		ID:          p.ID.String(),
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		ImageURL:    p.ImageURL,
	}
	if p.Category != nil {
		c := FromCategory(p.Category)
		out.Category = &c
	}
	return out
}

func FromProducts(prods []models.Product) []Product {
	out := make([]Product, 0, len(prods))
	for i := range prods {
		out = append(out, FromProduct(&prods[i]))
	}
	return out
}

func FromCart(items []models.CartItem) Cart {
	out := Cart{CartItems: make([]CartItem, 0, len(items))}
	for i := range items {
		out.CartItems = append(out.CartItems, CartItem{
			Product:  FromProduct(&items[i].Product),
			Quantity: items[i].Quantity,
		})
	}
	return out
}

func FromFavorite(f *models.Favorite) Favorite {
	return Favorite{ID: f.ID.String(), Product: FromProduct(&f.Product)}
}

func FromFavorites(favs []models.Favorite) []Favorite {
	out := make([]Favorite, 0, len(favs))
	for i := range favs {
		out = append(out, FromFavorite(&favs[i]))
	}
	return out
}

func FromOrder(o *models.Order) Order {
	out := Order{
		ID:            o.ID.String(),
		OrderItems:    make([]OrderItem, 0, len(o.Items)),
		TotalPrice:    o.TotalPrice,
		PaymentMethod: o.PaymentMethod,
		Status:        o.Status,
		CreatedAt:     o.CreatedAt,
	}
	for _, it := range o.Items {
		out.OrderItems = append(out.OrderItems, OrderItem{
			Product:  OrderProduct{ID: it.ProductID.String(), Name: it.ProductName},
			Quantity: it.Quantity,
			Price:    it.Price,
		})
	}
	return out
}

func FromOrders(orders []models.Order) []Order {
	out := make([]Order, 0, len(orders))
	for i := range orders {
		out = append(out, FromOrder(&orders[i]))
	}
	return out
}
