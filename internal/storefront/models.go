package storefront

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Price is a product price as the backend sent it. Only a JSON number is a
// usable amount; anything else (a string, a decimal document, null) is kept
// for display and counts as zero in totals.
type Price struct {
	Amount float64
	Valid  bool
	Raw    string
}

func NewPrice(amount float64) Price {
	return Price{Amount: amount, Valid: true}
}

func (p *Price) UnmarshalJSON(b []byte) error {
	*p = Price{}
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}

	var f float64
	if err := json.Unmarshal(b, &f); err == nil {
		p.Amount, p.Valid = f, true
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		p.Raw = s
		return nil
	}

	var dec struct {
		Decimal string `json:"$numberDecimal"`
	}
	if err := json.Unmarshal(b, &dec); err == nil {
		p.Raw = dec.Decimal
	}
	return nil
}

func (p Price) MarshalJSON() ([]byte, error) {
	if !p.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(p.Amount)
}

// Value is the amount used in totals.
func (p Price) Value() float64 {
	if !p.Valid {
		return 0
	}
	return p.Amount
}

func (p Price) String() string {
	switch {
	case p.Valid:
		return fmt.Sprintf("%.2f", p.Amount)
	case p.Raw != "":
		return p.Raw
	default:
		return "0.00"
	}
}

// Ref is a reference the backend sends either as a bare id or as the
// populated document.
type Ref struct {
	ID   string
	Name string
}

func (r *Ref) UnmarshalJSON(b []byte) error {
	*r = Ref{}
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}
	if b[0] == '"' {
		return json.Unmarshal(b, &r.ID)
	}

	var doc struct {
		ID           string `json:"_id"`
		CategoryName string `json:"categoryName"`
		ProductName  string `json:"productName"`
	}
	if err := json.Unmarshal(b, &doc); err != nil {
		return err
	}
	r.ID = doc.ID
	r.Name = doc.CategoryName
	if r.Name == "" {
		r.Name = doc.ProductName
	}
	return nil
}

func (r Ref) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.ID)
}

type Category struct {
	ID   string `json:"_id"`
	Name string `json:"categoryName"`
}

type Product struct {
	ID          string `json:"_id"`
	Name        string `json:"productName"`
	Description string `json:"description,omitempty"`
	Price       Price  `json:"price"`
	ImageURL    string `json:"imageURL"`
	Category    Ref    `json:"category"`
}

type CartItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

type Favorite struct {
	ID      string  `json:"_id,omitempty"`
	Product Product `json:"product"`
}

type OrderItem struct {
	Product  Ref   `json:"product"`
	Quantity int   `json:"quantity"`
	Price    Price `json:"price"`
}

type Order struct {
	ID            string      `json:"_id"`
	OrderItems    []OrderItem `json:"orderItems"`
	TotalPrice    Price       `json:"totalPrice"`
	PaymentMethod string      `json:"paymentMethod"`
	Status        string      `json:"status"`
	CreatedAt     time.Time   `json:"createdAt"`
}
