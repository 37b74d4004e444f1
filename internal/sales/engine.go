// Package sales records sales against the catalog and tracks tab debt.
package sales

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"dairy-pos/internal/catalog"
	"dairy-pos/internal/customers"
	"dairy-pos/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const defaultTimeout = 10 * time.Second

// ProductStore is the part of the catalog a sale commit needs. Every call
// runs inside the caller's transaction.
type ProductStore interface {
	FindProductByID(tx *gorm.DB, shopID, id string) (*models.Product, error)
	DecrementStock(tx *gorm.DB, id string, qty int) (bool, error)
}

// CustomerFinder resolves tab customers.
type CustomerFinder interface {
	FindCustomerByID(tx *gorm.DB, shopID, id string) (*models.Customer, error)
}

type Engine struct {
	db        *gorm.DB
	products  ProductStore
	customers CustomerFinder
	timeout   time.Duration
	log       *slog.Logger
}

type Option func(*Engine)

// WithTimeout bounds every sale commit. A commit that runs out of time is
// rolled back like any other failure.
func WithTimeout(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.timeout = d
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

func New(db *gorm.DB, products ProductStore, customers CustomerFinder, opts ...Option) *Engine {
	e := &Engine{
		db:        db,
		products:  products,
		customers: customers,
		timeout:   defaultTimeout,
		log:       slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ItemInput is one line of a sale as the till sends it. Name and price are
// stored as given, not re-read from the product.
type ItemInput struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

type RecordInput struct {
	ShopID        string               `json:"shop_id"`
	CustomerID    *string              `json:"customer_id"`
	Items         []ItemInput          `json:"items"`
	TotalPrice    *float64             `json:"total_price"` // computed when omitted
	SaleType      models.SaleType      `json:"sale_type"`
	PaymentStatus models.PaymentStatus `json:"payment_status"`
	PaymentMethod models.PaymentMethod `json:"payment_method"`
}

// RecordSale persists a sale and takes its items out of stock, all or
// nothing. The first failing check aborts the whole sale; no stock is moved
// and no sale row survives.
func (e *Engine) RecordSale(ctx context.Context, in RecordInput) (*models.Sale, error) {
	sale, err := buildSale(in)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	err = e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if sale.CustomerID != nil {
			if _, err := e.customers.FindCustomerByID(tx, sale.ShopID, *sale.CustomerID); err != nil {
				if errors.Is(err, customers.ErrNotFound) {
					return fmt.Errorf("%w: customer %s", ErrNotFound, *sale.CustomerID)
				}
				return err
			}
		}

		if err := tx.Create(sale).Error; err != nil {
			return err
		}

		for _, item := range sale.Items {
			if err := e.takeStock(tx, sale.ShopID, item); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		err = storeErr(err)
		e.log.Warn("sale aborted", "shop_id", in.ShopID, "err", err)
		return nil, err
	}

	e.log.Info("sale recorded",
		"shop_id", sale.ShopID,
		"sale_id", sale.ID,
		"items", len(sale.Items),
		"sale_type", sale.SaleType,
		"payment_status", sale.PaymentStatus,
	)
	return sale, nil
}

// takeStock checks and lowers the stock of one line inside tx.
func (e *Engine) takeStock(tx *gorm.DB, shopID string, item models.SaleItem) error {
	p, err := e.products.FindProductByID(tx, shopID, item.ProductID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return fmt.Errorf("%w: product %s", ErrNotFound, item.ProductID)
		}
		return err
	}
	if p.StockLevel < item.Quantity {
		return fmt.Errorf("%w: not enough stock for %s (product %s, have %d, want %d)",
			ErrInsufficientStock, p.Name, p.ID, p.StockLevel, item.Quantity)
	}

	// The conditional decrement is what keeps stock non-negative when the
	// store cannot lock the row above.
	ok, err := e.products.DecrementStock(tx, p.ID, item.Quantity)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: not enough stock for %s (product %s)", ErrInsufficientStock, p.Name, p.ID)
	}
	return nil
}

// buildSale validates in and returns the sale to persist, payment fields
// already normalized.
func buildSale(in RecordInput) (*models.Sale, error) {
	shopID := strings.TrimSpace(in.ShopID)
	if shopID == "" {
		return nil, invalid("shop_id is required")
	}
	if len(in.Items) == 0 {
		return nil, invalid("a sale must have at least one item")
	}
	if in.SaleType == "" {
		return nil, invalid("sale_type is required")
	}
	if !in.SaleType.Valid() {
		return nil, invalid("sale_type %q must be cash or tab", in.SaleType)
	}
	if in.PaymentStatus != "" && !in.PaymentStatus.Valid() {
		return nil, invalid("payment_status %q must be paid or unpaid", in.PaymentStatus)
	}
	if in.PaymentMethod != "" && !in.PaymentMethod.Valid() {
		return nil, invalid("payment_method %q must be cash, online or none", in.PaymentMethod)
	}

	var customerID *string
	if in.CustomerID != nil {
		if id := strings.TrimSpace(*in.CustomerID); id != "" {
			customerID = &id
		}
	}
	if in.SaleType == models.SaleTypeTab && customerID == nil {
		return nil, invalid("customer_id is required for tab sales")
	}

	items := make([]models.SaleItem, 0, len(in.Items))
	total := decimal.Zero
	for i, it := range in.Items {
		switch {
		case strings.TrimSpace(it.ProductID) == "":
			return nil, invalid("item %d: product_id is required", i)
		case strings.TrimSpace(it.Name) == "":
			return nil, invalid("item %d: name is required", i)
		case it.Price < 0:
			return nil, invalid("item %d: price cannot be negative", i)
		case it.Quantity < 1:
			return nil, invalid("item %d: quantity must be at least 1", i)
		}
		items = append(items, models.SaleItem{
			Position:  i,
			ProductID: strings.TrimSpace(it.ProductID),
			Name:      strings.TrimSpace(it.Name),
			Price:     it.Price,
			Quantity:  it.Quantity,
		})
		total = total.Add(LineTotal(it.Price, it.Quantity))
	}
	total = total.Round(2)

	if in.TotalPrice != nil {
		given := decimal.NewFromFloat(*in.TotalPrice).Round(2)
		if given.IsNegative() {
			return nil, invalid("total_price cannot be negative")
		}
		if !given.Equal(total) {
			return nil, invalid("total_price %s does not match the items, expected %s", given.StringFixed(2), total.StringFixed(2))
		}
	}

	status, method := NormalizePayment(in.SaleType, in.PaymentStatus, in.PaymentMethod)
	return &models.Sale{
		ShopID:        shopID,
		CustomerID:    customerID,
		Items:         items,
		TotalPrice:    total.InexactFloat64(),
		SaleType:      in.SaleType,
		PaymentStatus: status,
		PaymentMethod: method,
	}, nil
}

// LineTotal is price × quantity in exact decimal arithmetic.
func LineTotal(price float64, qty int) decimal.Decimal {
	return decimal.NewFromFloat(price).Mul(decimal.NewFromInt(int64(qty)))
}
