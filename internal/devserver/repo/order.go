package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Skotchmaster/coffee_shop/internal/devserver/models"
)

// CreateOrder stores the order with its lines and empties the buyer's cart.
func (r *GormRepo) CreateOrder(ctx context.Context, order *models.Order) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return err
		}
		return tx.Where("user_id = ?", order.UserID).Delete(&models.CartItem{}).Error
	})
}

func (r *GormRepo) ListOrders(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	var orders []models.Order
	if err := r.DB.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// ProductsByID loads the given products keyed by id.
func (r *GormRepo) ProductsByID(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]models.Product, error) {
	var prods []models.Product
	if err := r.DB.WithContext(ctx).Where("id IN ?", ids).Find(&prods).Error; err != nil {
		return nil, err
	}
	out := make(map[uuid.UUID]models.Product, len(prods))
	for _, p := range prods {
		out[p.ID] = p
	}
	return out, nil
}
