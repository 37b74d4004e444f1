package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base carries the opaque id and timestamps shared by every record.
type Base struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate assigns a fresh id unless the caller already chose one.
func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}

// User - The shop owner who logs in
type User struct {
	Base
	Name         string `gorm:"size:100;not null" json:"name"`
	Email        string `gorm:"size:255;not null;uniqueIndex" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"` // Never return this in JSON
}

// Shop - One tenant. Everything else hangs off shop_id.
type Shop struct {
	Base
	OwnerID  string `gorm:"size:36;not null;index" json:"owner_id"`
	ShopName string `gorm:"size:255;not null" json:"shop_name"`
	Address  string `gorm:"not null" json:"address"`
	Email    string `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Phone    string `gorm:"size:30" json:"phone"`
}

// Product - The Inventory of one shop
type Product struct {
	Base
	ShopID     string     `gorm:"size:36;not null;index" json:"shop_id"`
	Name       string     `gorm:"size:255;not null" json:"name"`
	Price      float64    `gorm:"not null;check:price >= 0" json:"price"`
	Unit       Unit       `gorm:"size:20;not null" json:"unit"`
	StockLevel int        `gorm:"not null;check:stock_level >= 0" json:"stock_level"`
	Category   string     `gorm:"size:100;not null;default:Uncategorized" json:"category"`
	MfgDate    *time.Time `json:"mfg_date,omitempty"`
	ExpDate    *time.Time `json:"exp_date,omitempty"`
	ImageURL   string     `json:"image_url,omitempty"`
}

// Customer - Someone who may buy on tab. Email is optional but unique per shop when set.
type Customer struct {
	Base
	ShopID  string  `gorm:"size:36;not null;index;uniqueIndex:idx_customer_email_shop" json:"shop_id,omitempty"`
	Name    string  `gorm:"size:255;not null" json:"name"`
	Email   *string `gorm:"size:255;uniqueIndex:idx_customer_email_shop" json:"email,omitempty"`
	Phone   string  `gorm:"size:30" json:"phone,omitempty"`
	Address string  `json:"address,omitempty"`
}

// Sale - The Transaction Header
type Sale struct {
	Base
	ShopID        string        `gorm:"size:36;not null;index" json:"shop_id"`
	CustomerID    *string       `gorm:"size:36;index" json:"customer_id"` // nil = walk-in
	Customer      *SaleCustomer `gorm:"foreignKey:CustomerID;-:migration" json:"customer,omitempty"`
	Items         []SaleItem    `gorm:"foreignKey:SaleID;constraint:OnDelete:CASCADE" json:"items"`
	TotalPrice    float64       `gorm:"not null;check:total_price >= 0" json:"total_price"`
	SaleType      SaleType      `gorm:"size:10;not null" json:"sale_type"`
	PaymentStatus PaymentStatus `gorm:"size:10;not null;index" json:"payment_status"`
	PaymentMethod PaymentMethod `gorm:"size:10;not null" json:"payment_method"`
}

// SaleItem - One line of a sale. Name and price are a snapshot taken at sale time.
type SaleItem struct {
	SaleID    string  `gorm:"primaryKey;size:36" json:"-"`
	Position  int     `gorm:"primaryKey" json:"-"`
	ProductID string  `gorm:"size:36;not null;index" json:"product_id"`
	Name      string  `gorm:"size:255;not null" json:"name"`
	Price     float64 `gorm:"not null" json:"price"`
	Quantity  int     `gorm:"not null" json:"quantity"`
}

// SaleCustomer is the part of a Customer shown next to a sale.
type SaleCustomer struct {
	ID   string `gorm:"primaryKey;size:36" json:"id"`
	Name string `json:"name"`
}

func (SaleCustomer) TableName() string { return "customers" }
