// Package accounts registers shop owners and logs them in.
package accounts

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"dairy-pos/internal/auth"
	"dairy-pos/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidInput       = errors.New("invalid registration")
	ErrEmailTaken         = errors.New("an account with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNoShop             = errors.New("could not find a shop associated with this user")
	ErrShopNotFound       = errors.New("shop not found")
)

type RegisterInput struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	ShopName string `json:"shop_name" binding:"required"`
	Address  string `json:"address" binding:"required"`
	Phone    string `json:"phone"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Session is what a successful login hands back.
type Session struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
	Shop  models.Shop `json:"shop"`
}

type Service struct {
	db     *gorm.DB
	tokens *auth.Tokens
	cost   int
}

func New(db *gorm.DB, tokens *auth.Tokens) *Service {
	return &Service{db: db, tokens: tokens, cost: bcrypt.DefaultCost}
}

// Register creates the owner and their shop together.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*models.Shop, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.ShopName = strings.TrimSpace(in.ShopName)
	in.Address = strings.TrimSpace(in.Address)
	switch {
	case len(in.Name) < 3:
		return nil, fmt.Errorf("%w: name must be at least 3 characters", ErrInvalidInput)
	case in.Email == "":
		return nil, fmt.Errorf("%w: email is required", ErrInvalidInput)
	case len(in.Password) < 6:
		return nil, fmt.Errorf("%w: password must be at least 6 characters", ErrInvalidInput)
	case in.ShopName == "" || in.Address == "":
		return nil, fmt.Errorf("%w: shop name and address are required", ErrInvalidInput)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	var shop models.Shop
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&models.User{}).Where("email = ?", in.Email).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return ErrEmailTaken
		}

		user := models.User{Name: in.Name, Email: in.Email, PasswordHash: string(hashedPassword)}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		shop = models.Shop{
			OwnerID:  user.ID,
			ShopName: in.ShopName,
			Address:  in.Address,
			Email:    in.Email,
			Phone:    strings.TrimSpace(in.Phone),
		}
		return tx.Create(&shop).Error
	})
	if err != nil {
		return nil, err
	}
	return &shop, nil
}

// Login checks the password and issues a token scoped to the owner's shop.
func (s *Service) Login(ctx context.Context, in LoginInput) (*Session, error) {
	db := s.db.WithContext(ctx)

	var user models.User
	if err := db.Where("email = ?", strings.ToLower(strings.TrimSpace(in.Email))).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	var shop models.Shop
	if err := db.Where("owner_id = ?", user.ID).First(&shop).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoShop
		}
		return nil, err
	}

	token, err := s.tokens.GenerateToken(user.ID, shop.ID)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}
	return &Session{Token: token, User: user, Shop: shop}, nil
}

// Shop returns one shop by id.
func (s *Service) Shop(ctx context.Context, id string) (*models.Shop, error) {
	var shop models.Shop
	if err := s.db.WithContext(ctx).First(&shop, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShopNotFound
		}
		return nil, err
	}
	return &shop, nil
}
