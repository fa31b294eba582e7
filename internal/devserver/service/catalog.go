package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Skotchmaster/coffee_shop/internal/devserver/models"
	"github.com/Skotchmaster/coffee_shop/internal/devserver/repo"
	"github.com/Skotchmaster/coffee_shop/internal/devserver/transport"
)

type CatalogService struct {
	Repo *repo.GormRepo
}

func (s *CatalogService) Categories(ctx context.Context) ([]models.Category, error) {
	return s.Repo.ListCategories(ctx)
}

func (s *CatalogService) CreateCategory(ctx context.Context, name string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("category name is required: %w", ErrValidation)
	}
	c := &models.Category{Name: name}
	if err := s.Repo.CreateCategory(ctx, c); err != nil {
		if errors.Is(err, repo.ErrCategoryExists) || errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("category exists: %w", ErrConflict)
		}
		return nil, err
	}
	return c, nil
}

func (s *CatalogService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if err := s.Repo.DeleteCategory(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("category not found: %w", ErrNotFound)
		}
		return err
	}
	return nil
}

func (s *CatalogService) Products(ctx context.Context) ([]models.Product, error) {
	return s.Repo.ListProducts(ctx)
}

func (s *CatalogService) CreateProduct(ctx context.Context, req transport.ProductRequest) (*models.Product, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("product name is required: %w", ErrValidation)
	}
	if !(req.Price > 0) || math.IsInf(req.Price, 1) {
		return nil, fmt.Errorf("price must be more than zero: %w", ErrValidation)
	}

	p := &models.Product{
		Name:        name,
		Description: strings.TrimSpace(req.Description),
		Price:       req.Price,
		ImageURL:    strings.TrimSpace(req.ImageURL),
	}
	if req.Category != "" {
		catID, err := uuid.Parse(req.Category)
		if err != nil {
			return nil, fmt.Errorf("invalid category id: %w", ErrValidation)
		}
		ok, err := s.Repo.CategoryExists(ctx, catID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("category not found: %w", ErrNotFound)
		}
		p.CategoryID = &catID
	}

	if err := s.Repo.CreateProduct(ctx, p); err != nil {
		return nil, err
	}
	return s.Repo.GetProduct(ctx, p.ID)
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if err := s.Repo.DeleteProduct(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("product not found: %w", ErrNotFound)
		}
		return err
	}
	return nil
}
