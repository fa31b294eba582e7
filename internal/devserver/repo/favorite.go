package repo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Skotchmaster/coffee_shop/internal/devserver/models"
)

var ErrAlreadyFavorite = errors.New("already in favorites")

func (r *GormRepo) ListFavorites(ctx context.Context, userID uuid.UUID) ([]models.Favorite, error) {
	var favs []models.Favorite
	if err := r.DB.WithContext(ctx).
		Preload("Product.Category").
		Where("user_id = ?", userID).
		Order("created_at").
		Find(&favs).Error; err != nil {
		return nil, err
	}
	return favs, nil
}

func (r *GormRepo) AddFavorite(ctx context.Context, fav *models.Favorite) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&models.Favorite{}).
			Where("user_id = ? AND product_id = ?", fav.UserID, fav.ProductID).
			Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return ErrAlreadyFavorite
		}
		if err := tx.Omit(clause.Associations).Create(fav).Error; err != nil {
			return err
		}
		return tx.Preload("Product.Category").Where("id = ?", fav.ID).First(fav).Error
	})
}

func (r *GormRepo) RemoveFavorite(ctx context.Context, userID, productID uuid.UUID) error {
	res := r.DB.WithContext(ctx).Where("user_id = ? AND product_id = ?", userID, productID).Delete(&models.Favorite{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
