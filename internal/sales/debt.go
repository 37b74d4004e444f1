package sales

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"dairy-pos/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ListUnpaidSales returns the open tab of a customer, oldest sale first.
func (e *Engine) ListUnpaidSales(ctx context.Context, customerID string) ([]models.Sale, error) {
	list := []models.Sale{}
	err := e.db.WithContext(ctx).
		Preload("Items", orderItems).
		Where("customer_id = ? AND payment_status = ?", customerID, models.PaymentUnpaid).
		Order("created_at asc").
		Find(&list).Error
	if err != nil {
		return nil, storeErr(err)
	}
	return list, nil
}

// SettlePayment marks an unpaid tab sale as paid with method. Paid is final:
// settling the same sale twice fails with ErrAlreadySettled. Stock is not
// touched, it already left at commit time.
func (e *Engine) SettlePayment(ctx context.Context, saleID string, method models.PaymentMethod) (*models.Sale, error) {
	if !method.Settles() {
		return nil, invalid("a valid payment method (cash or online) is required")
	}
	saleID = strings.TrimSpace(saleID)

	var out models.Sale
	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var sale models.Sale
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&sale, "id = ?", saleID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: sale %s", ErrNotFound, saleID)
		}
		if err != nil {
			return err
		}
		if sale.PaymentStatus == models.PaymentPaid {
			return fmt.Errorf("%w: sale %s", ErrAlreadySettled, saleID)
		}
		if sale.SaleType != models.SaleTypeTab {
			return invalid("sale %s is not a tab sale", saleID)
		}

		res := tx.Model(&models.Sale{}).
			Where("id = ? AND payment_status = ?", saleID, models.PaymentUnpaid).
			Updates(map[string]any{
				"payment_status": models.PaymentPaid,
				"payment_method": method,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: sale %s", ErrAlreadySettled, saleID)
		}

		return tx.Preload("Items", orderItems).First(&out, "id = ?", saleID).Error
	})
	if err != nil {
		return nil, storeErr(err)
	}

	e.log.Info("payment settled", "sale_id", saleID, "payment_method", method)
	return &out, nil
}
