package database

import (
	"context"
	"time"

	"dairy-pos/internal/models"

	"gorm.io/gorm"
)

// SalesReport is the revenue and debt picture of one shop.
type SalesReport struct {
	From            time.Time `json:"from"`
	To              time.Time `json:"to"`
	Revenue         float64   `json:"revenue"`
	SalesCount      int64     `json:"sales_count"`
	OutstandingDebt float64   `json:"outstanding_debt"`
	UnpaidCount     int64     `json:"unpaid_count"`
}

// Debtor is one customer's open tab.
type Debtor struct {
	CustomerID string  `json:"customer_id"`
	Name       string  `json:"name"`
	Total      float64 `json:"total"`
	SaleCount  int64   `json:"sale_count"`
}

// GetSalesReport sums paid sales made in [start, end] and every unpaid sale of the shop.
func GetSalesReport(ctx context.Context, db *gorm.DB, shopID string, start, end time.Time) (*SalesReport, error) {
	result := SalesReport{From: start, To: end}
	db = db.WithContext(ctx)

	// 1. Revenue in the window
	// COALESCE ensures we get 0 instead of NULL if no sales exist
	paid := func() *gorm.DB {
		return db.Model(&models.Sale{}).
			Where("shop_id = ? AND payment_status = ?", shopID, models.PaymentPaid).
			Where("created_at BETWEEN ? AND ?", start, end)
	}
	if err := paid().Select("COALESCE(SUM(total_price), 0)").Scan(&result.Revenue).Error; err != nil {
		return nil, err
	}
	if err := paid().Count(&result.SalesCount).Error; err != nil {
		return nil, err
	}

	// 2. Debt is never windowed, an old tab is still owed
	unpaid := func() *gorm.DB {
		return db.Model(&models.Sale{}).
			Where("shop_id = ? AND payment_status = ?", shopID, models.PaymentUnpaid)
	}
	if err := unpaid().Select("COALESCE(SUM(total_price), 0)").Scan(&result.OutstandingDebt).Error; err != nil {
		return nil, err
	}
	if err := unpaid().Count(&result.UnpaidCount).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

// GetDebtors lists customers with unpaid sales, largest debt first.
func GetDebtors(ctx context.Context, db *gorm.DB, shopID string) ([]Debtor, error) {
	debtors := []Debtor{}
	err := db.WithContext(ctx).Table("sales").
		Select("sales.customer_id AS customer_id, COALESCE(customers.name, '') AS name, "+
			"COALESCE(SUM(sales.total_price), 0) AS total, COUNT(*) AS sale_count").
		Joins("LEFT JOIN customers ON customers.id = sales.customer_id").
		Where("sales.shop_id = ? AND sales.payment_status = ? AND sales.customer_id IS NOT NULL", shopID, models.PaymentUnpaid).
		Group("sales.customer_id, customers.name").
		Order("total desc").
		Scan(&debtors).Error
	if err != nil {
		return nil, err
	}
	return debtors, nil
}
