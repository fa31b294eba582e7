package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"

	OrderStatusPending = "Pending"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name         string    `gorm:"not null"`
	Email        string    `gorm:"uniqueIndex;not null"`
	PasswordHash string    `gorm:"not null"`
	Role         string    `gorm:"not null;default:user"`
	CreatedAt    time.Time
}

type Category struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"uniqueIndex;not null"`
	CreatedAt time.Time
}

type Product struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Name        string     `gorm:"not null"`
	Description string
	Price       float64    `gorm:"not null;check:price>0"`
	ImageURL    string
	CategoryID  *uuid.UUID `gorm:"type:uuid;index"`
	Category    *Category
	CreatedAt   time.Time
}

type CartItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_cart_user_product;not null"`
	ProductID uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_cart_user_product;not null"`
	Product   Product
	Quantity  int `gorm:"not null;check:quantity>0"`
	CreatedAt time.Time
}

func (CartItem) TableName() string {
	return "cart_items"
}

type Favorite struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_favorite_user_product;not null"`
	ProductID uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_favorite_user_product;not null"`
	Product   Product
	CreatedAt time.Time
}

type Order struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID        uuid.UUID `gorm:"type:uuid;index;not null"`
	TotalPrice    float64   `gorm:"not null"`
	PaymentMethod string    `gorm:"not null"`
	Status        string    `gorm:"not null"`
	Items         []OrderItem
	CreatedAt     time.Time
}

type OrderItem struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID `gorm:"type:uuid;index;not null"`
	ProductID   uuid.UUID `gorm:"type:uuid;not null"`
	ProductName string
	Quantity    int     `gorm:"not null;check:quantity>0"`
	Price       float64 `gorm:"not null"`
}

// All lists the tables AutoMigrate creates.
func All() []any {
	return []any{&User{}, &Category{}, &Product{}, &CartItem{}, &Favorite{}, &Order{}, &OrderItem{}}
}

func newID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}

func (u *User) BeforeCreate(*gorm.DB) error      { newID(&u.ID); return nil }
func (c *Category) BeforeCreate(*gorm.DB) error  { newID(&c.ID); return nil }
func (p *Product) BeforeCreate(*gorm.DB) error   { newID(&p.ID); return nil }
func (c *CartItem) BeforeCreate(*gorm.DB) error  { newID(&c.ID); return nil }
func (f *Favorite) BeforeCreate(*gorm.DB) error  { newID(&f.ID); return nil }
func (o *Order) BeforeCreate(*gorm.DB) error     { newID(&o.ID); return nil }
func (i *OrderItem) BeforeCreate(*gorm.DB) error { newID(&i.ID); return nil }
