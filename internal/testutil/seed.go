package testutil

import (
	"testing"

	"dairy-pos/internal/models"

	"gorm.io/gorm"
)

// SeedShop creates an owner and their shop.
func SeedShop(t *testing.T, db *gorm.DB, email string) models.Shop {
	t.Helper()

	owner := models.User{Name: "Owner", Email: email, PasswordHash: "x"}
	if err := db.Create(&owner).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	shop := models.Shop{OwnerID: owner.ID, ShopName: "Gokul Dairy", Address: "1 Main Road", Email: email, Phone: "999"}
	if err := db.Create(&shop).Error; err != nil {
		t.Fatalf("seed shop: %v", err)
	}
	return shop
}

func SeedProduct(t *testing.T, db *gorm.DB, shopID, name string, price float64, stock int) models.Product {
	t.Helper()

	p := models.Product{
		ShopID:     shopID,
		Name:       name,
		Price:      price,
		Unit:       models.UnitLitre,
		StockLevel: stock,
		Category:   "Milk",
	}
	if err := db.Create(&p).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return p
}

func SeedCustomer(t *testing.T, db *gorm.DB, shopID, name string) models.Customer {
	t.Helper()

	c := models.Customer{ShopID: shopID, Name: name, Phone: "12345", Address: "Lane 4"}
	if err := db.Create(&c).Error; err != nil {
		t.Fatalf("seed customer: %v", err)
	}
	return c
}

// StockOf re-reads the stock level of a product.
func StockOf(t *testing.T, db *gorm.DB, productID string) int {
	t.Helper()

	var p models.Product
	if err := db.First(&p, "id = ?", productID).Error; err != nil {
		t.Fatalf("read product: %v", err)
	}
	return p.StockLevel
}

func CountSales(t *testing.T, db *gorm.DB) int64 {
	t.Helper()

	var n int64
	if err := db.Model(&models.Sale{}).Count(&n).Error; err != nil {
		t.Fatalf("count sales: %v", err)
	}
	return n
}
