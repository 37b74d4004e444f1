// Package catalog is the product store of each shop.
//
// Stock is only ever lowered through DecrementStock, which refuses to go
// below zero, and product edits take the same row lock the sale commit does.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"dairy-pos/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrNotFound     = errors.New("product not found")
	ErrInvalidInput = errors.New("invalid product")
)

const dateLayout = "2006-01-02"

// Input is what a shop owner submits when adding or editing a product.
type Input struct {
	ShopID     string      `json:"shop_id" form:"shop_id"`
	Name       string      `json:"name" form:"name" binding:"required"`
	Price      *float64    `json:"price" form:"price" binding:"required,gte=0"`
	Unit       models.Unit `json:"unit" form:"unit" binding:"required,dairy_unit"`
	StockLevel *int        `json:"stock_level" form:"stock_level" binding:"required,gte=0"`
	Category   string      `json:"category" form:"category"`
	MfgDate    string      `json:"mfg_date" form:"mfg_date"`
	ExpDate    string      `json:"exp_date" form:"exp_date"`
	ImageURL   string      `json:"image_url" form:"image_url"`
}

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Create adds a product to in.ShopID.
func (s *Store) Create(ctx context.Context, in Input) (*models.Product, error) {
	if strings.TrimSpace(in.ShopID) == "" {
		return nil, fmt.Errorf("%w: shop_id is required", ErrInvalidInput)
	}
	var p models.Product
	p.ShopID = in.ShopID
	if err := apply(&p, in); err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Create(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// Update replaces the editable fields of a product. The image is kept unless
// a new one is given.
func (s *Store) Update(ctx context.Context, id string, in Input) (*models.Product, error) {
	var out models.Product
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		p, err := s.lockByID(tx, id)
		if err != nil {
			return err
		}
		if err := apply(p, in); err != nil {
			return err
		}
		if err := s.SaveProduct(tx, p); err != nil {
			return err
		}
		out = *p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Product{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) Get(ctx context.Context, id string) (*models.Product, error) {
	var p models.Product
	if err := s.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

// ListByShop returns the catalog of one shop ordered by name.
func (s *Store) ListByShop(ctx context.Context, shopID string) ([]models.Product, error) {
	products := []models.Product{}
	err := s.db.WithContext(ctx).
		Where("shop_id = ?", shopID).
		Order("name asc").
		Find(&products).Error
	return products, err
}

// FindProductByID loads a product of shopID inside tx and locks its row
// until tx ends. A product of another shop is reported as not found.
func (s *Store) FindProductByID(tx *gorm.DB, shopID, id string) (*models.Product, error) {
	var p models.Product
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND shop_id = ?", id, shopID).
		First(&p).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

// SaveProduct writes every column of p inside tx.
func (s *Store) SaveProduct(tx *gorm.DB, p *models.Product) error {
	return tx.Save(p).Error
}

// DecrementStock lowers stock_level by qty only if at least qty is on hand.
// It reports false, without error, when the stock was short.
func (s *Store) DecrementStock(tx *gorm.DB, id string, qty int) (bool, error) {
	res := tx.Model(&models.Product{}).
		Where("id = ? AND stock_level >= ?", id, qty).
		Update("stock_level", gorm.Expr("stock_level - ?", qty))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (s *Store) lockByID(tx *gorm.DB, id string) (*models.Product, error) {
	var p models.Product
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&p, "id = ?", id).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

// apply validates in and copies it onto p.
func apply(p *models.Product, in Input) error {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if in.Price == nil || *in.Price < 0 {
		return fmt.Errorf("%w: price must be zero or more", ErrInvalidInput)
	}
	if !in.Unit.Valid() {
		return fmt.Errorf("%w: unit %q is not one of %v", ErrInvalidInput, in.Unit, models.Units)
	}
	if in.StockLevel == nil || *in.StockLevel < 0 {
		return fmt.Errorf("%w: stock_level must be a whole number, zero or more", ErrInvalidInput)
	}
	mfg, err := parseDate("mfg_date", in.MfgDate)
	if err != nil {
		return err
	}
	exp, err := parseDate("exp_date", in.ExpDate)
	if err != nil {
		return err
	}
	if mfg != nil && exp != nil && exp.Before(*mfg) {
		return fmt.Errorf("%w: exp_date is before mfg_date", ErrInvalidInput)
	}

	category := strings.TrimSpace(in.Category)
	if category == "" {
		category = models.DefaultCategory
	}

	p.Name = name
	p.Price = *in.Price
	p.Unit = in.Unit
	p.StockLevel = *in.StockLevel
	p.Category = category
	p.MfgDate = mfg
	p.ExpDate = exp
	if in.ImageURL != "" {
		p.ImageURL = in.ImageURL
	}
	return nil
}

func parseDate(field, v string) (*time.Time, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, v)
	if err != nil {
		if t, err = time.Parse(time.RFC3339, v); err != nil {
			return nil, fmt.Errorf("%w: %s must look like YYYY-MM-DD", ErrInvalidInput, field)
		}
	}
	return &t, nil
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
