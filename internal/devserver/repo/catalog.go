package repo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Skotchmaster/coffee_shop/internal/devserver/models"
)

func (r *GormRepo) ListCategories(ctx context.Context) ([]models.Category, error) {
	var cats []models.Category
	if err := r.DB.WithContext(ctx).Order("created_at, name").Find(&cats).Error; err != nil {
		return nil, err
	}
	return cats, nil
}

var ErrCategoryExists = errors.New("category exists")

func (r *GormRepo) CreateCategory(ctx context.Context, c *models.Category) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&models.Category{}).Where("name = ?", c.Name).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return ErrCategoryExists
		}
		return tx.Create(c).Error
	})
}

func (r *GormRepo) CategoryExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var n int64
	if err := r.DB.WithContext(ctx).Model(&models.Category{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

// DeleteCategory detaches its products before removing it.
func (r *GormRepo) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Product{}).Where("category_id = ?", id).Update("category_id", nil).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&models.Category{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *GormRepo) ListProducts(ctx context.Context) ([]models.Product, error) {
	var prods []models.Product
	if err := r.DB.WithContext(ctx).Preload("Category").Order("created_at, name").Find(&prods).Error; err != nil {
		return nil, err
	}
	return prods, nil
}

func (r *GormRepo) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var p models.Product
	if err := r.DB.WithContext(ctx).Preload("Category").Where("id = ?", id).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *GormRepo) CreateProduct(ctx context.Context, p *models.Product) error {
	return r.DB.WithContext(ctx).Omit(clause.Associations).Create(p).Error
}

// DeleteProduct also drops the cart lines and favorites pointing at it.
func (r *GormRepo) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", id).Delete(&models.Favorite{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&models.Product{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
