package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Skotchmaster/coffee_shop/internal/devserver/models"
	"github.com/Skotchmaster/coffee_shop/internal/devserver/repo"
)

type CartService struct {
	Repo *repo.GormRepo
}

func (s *CartService) GetCart(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error) {
	return s.Repo.GetCart(ctx, userID)
}

func (s *CartService) AddToCart(ctx context.Context, userID, productID uuid.UUID, quantity int) ([]models.CartItem, error) {
	if productID == uuid.Nil {
		return nil, fmt.Errorf("product id must be not nil: %w", ErrValidation)
	}
	if quantity <= 0 {
		return nil, fmt.Errorf("quantity must be more than zero: %w", ErrValidation)
	}
	if _, err := s.Repo.GetProduct(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product not found: %w", ErrNotFound)
		}
		return nil, err
	}

	item := models.CartItem{UserID: userID, ProductID: productID, Quantity: quantity}
	if err := s.Repo.AddToCart(ctx, &item); err != nil {
		return nil, err
	}
	return s.Repo.GetCart(ctx, userID)
}

func (s *CartService) UpdateQuantity(ctx context.Context, userID, productID uuid.UUID, quantity int) ([]models.CartItem, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("quantity must be more than zero: %w", ErrValidation)
	}
	if err := s.Repo.SetCartQuantity(ctx, userID, productID, quantity); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product not in cart: %w", ErrNotFound)
		}
		return nil, err
	}
	return s.Repo.GetCart(ctx, userID)
}

func (s *CartService) Remove(ctx context.Context, userID, productID uuid.UUID) ([]models.CartItem, error) {
	if err := s.Repo.RemoveFromCart(ctx, userID, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product not in cart: %w", ErrNotFound)
		}
		return nil, err
	}
	return s.Repo.GetCart(ctx, userID)
}
