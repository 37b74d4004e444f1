// Package customers is the customer directory of each shop.
package customers

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"dairy-pos/internal/models"

	"gorm.io/gorm"
)

var (
	ErrNotFound       = errors.New("customer not found")
	ErrInvalidInput   = errors.New("invalid customer")
	ErrDuplicateEmail = errors.New("a customer with this email already exists for this shop")
)

var emailPattern = regexp.MustCompile(`.+@.+\..+`)

type Input struct {
	ShopID  string `json:"shop_id"`
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email"`
	Phone   string `json:"phone" binding:"required"`
	Address string `json:"address" binding:"required"`
}

type Directory struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Directory {
	return &Directory{db: db}
}

func (d *Directory) Create(ctx context.Context, in Input) (*models.Customer, error) {
	if strings.TrimSpace(in.ShopID) == "" {
		return nil, fmt.Errorf("%w: shop_id is required", ErrInvalidInput)
	}
	c := models.Customer{ShopID: in.ShopID}
	if err := apply(&c, in); err != nil {
		return nil, err
	}

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureEmailFree(tx, &c); err != nil {
			return err
		}
		return tx.Create(&c).Error
	})
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (d *Directory) Update(ctx context.Context, id string, in Input) (*models.Customer, error) {
	var out models.Customer
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var c models.Customer
		if err := tx.First(&c, "id = ?", id).Error; err != nil {
			return notFound(err)
		}
		if err := apply(&c, in); err != nil {
			return err
		}
		if err := ensureEmailFree(tx, &c); err != nil {
			return err
		}
		if err := tx.Save(&c).Error; err != nil {
			return err
		}
		out = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (d *Directory) Delete(ctx context.Context, id string) error {
	res := d.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Customer{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (d *Directory) ListByShop(ctx context.Context, shopID string) ([]models.Customer, error) {
	list := []models.Customer{}
	err := d.db.WithContext(ctx).
		Where("shop_id = ?", shopID).
		Order("name asc").
		Find(&list).Error
	return list, err
}

// FindCustomerByID loads a customer of shopID. tx may be a transaction or the
// plain handle.
func (d *Directory) FindCustomerByID(tx *gorm.DB, shopID, id string) (*models.Customer, error) {
	var c models.Customer
	if err := tx.Where("id = ? AND shop_id = ?", id, shopID).First(&c).Error; err != nil {
		return nil, notFound(err)
	}
	return &c, nil
}

func apply(c *models.Customer, in Input) error {
	name := strings.TrimSpace(in.Name)
	phone := strings.TrimSpace(in.Phone)
	address := strings.TrimSpace(in.Address)
	switch {
	case name == "":
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	case phone == "":
		return fmt.Errorf("%w: phone is required", ErrInvalidInput)
	case address == "":
		return fmt.Errorf("%w: address is required", ErrInvalidInput)
	}

	var email *string
	if e := strings.ToLower(strings.TrimSpace(in.Email)); e != "" {
		if !emailPattern.MatchString(e) {
			return fmt.Errorf("%w: please enter a valid email address", ErrInvalidInput)
		}
		email = &e
	}

	c.Name = name
	c.Phone = phone
	c.Address = address
	c.Email = email
	return nil
}

// ensureEmailFree enforces (email, shop_id) uniqueness ahead of the unique
// index so the caller gets ErrDuplicateEmail rather than a driver error.
func ensureEmailFree(tx *gorm.DB, c *models.Customer) error {
	if c.Email == nil {
		return nil
	}
	q := tx.Model(&models.Customer{}).Where("shop_id = ? AND email = ?", c.ShopID, *c.Email)
	if c.ID != "" {
		q = q.Where("id <> ?", c.ID)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return ErrDuplicateEmail
	}
	return nil
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
