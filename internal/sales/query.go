package sales

import (
	"context"
	"errors"
	"fmt"

	"dairy-pos/internal/models"

	"gorm.io/gorm"
)

// ListByShop returns every sale of a shop, newest first, with the customer
// name filled in.
func (e *Engine) ListByShop(ctx context.Context, shopID string) ([]models.Sale, error) {
	list := []models.Sale{}
	err := e.db.WithContext(ctx).
		Preload("Customer").
		Preload("Items", orderItems).
		Where("shop_id = ?", shopID).
		Order("created_at desc").
		Find(&list).Error
	if err != nil {
		return nil, storeErr(err)
	}
	return list, nil
}

// Get returns one sale with its items.
func (e *Engine) Get(ctx context.Context, saleID string) (*models.Sale, error) {
	var sale models.Sale
	err := e.db.WithContext(ctx).
		Preload("Customer").
		Preload("Items", orderItems).
		First(&sale, "id = ?", saleID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: sale %s", ErrNotFound, saleID)
	}
	if err != nil {
		return nil, storeErr(err)
	}
	return &sale, nil
}

func orderItems(db *gorm.DB) *gorm.DB {
	return db.Order("position asc")
}
