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

type FavoriteService struct {
	Repo *repo.GormRepo
}

func (s *FavoriteService) List(ctx context.Context, userID uuid.UUID) ([]models.Favorite, error) {
	return s.Repo.ListFavorites(ctx, userID)
}

func (s *FavoriteService) Add(ctx context.Context, userID, productID uuid.UUID) (*models.Favorite, error) {
	if _, err := s.Repo.GetProduct(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product not found: %w", ErrNotFound)
		}
		return nil, err
	}
	fav := &models.Favorite{UserID: userID, ProductID: productID}
	if err := s.Repo.AddFavorite(ctx, fav); err != nil {
		if errors.Is(err, repo.ErrAlreadyFavorite) {
			return nil, fmt.Errorf("product already in favorites: %w", ErrConflict)
		}
		return nil, err
	}
	return fav, nil
}

func (s *FavoriteService) Remove(ctx context.Context, userID, productID uuid.UUID) error {
	if err := s.Repo.RemoveFavorite(ctx, userID, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("favorite not found: %w", ErrNotFound)
		}
		return err
	}
	return nil
}
