package accounts

import (
	"context"
	"testing"
	"time"

	"dairy-pos/internal/auth"
	"dairy-pos/internal/testutil"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newService(t *testing.T) (*Service, *auth.Tokens) {
	t.Helper()
	tokens := auth.NewTokens("test-secret", time.Hour)
	s := New(testutil.MustOpenDB(t), tokens)
	s.cost = bcrypt.MinCost
	return s, tokens
}

var owner = RegisterInput{
	Name:     "Meera",
	Email:    "Meera@Dairy.test",
	Password: "secret1",
	ShopName: "Meera Dairy",
	Address:  "12 Station Road",
	Phone:    "98765",
}

func TestRegisterAndLogin(t *testing.T) {
	s, tokens := newService(t)

	shop, err := s.Register(context.Background(), owner)
	require.NoError(t, err)
	require.Equal(t, "meera@dairy.test", shop.Email)

	session, err := s.Login(context.Background(), LoginInput{Email: "meera@dairy.test", Password: "secret1"})
	require.NoError(t, err)
	require.Equal(t, shop.ID, session.Shop.ID)
	require.Equal(t, "Meera", session.User.Name)

	claims, err := tokens.ValidateToken(session.Token)
	require.NoError(t, err)
	require.Equal(t, shop.ID, claims.ShopID)
	require.Equal(t, session.User.ID, claims.UserID)

	got, err := s.Shop(context.Background(), shop.ID)
	require.NoError(t, err)
	require.Equal(t, "Meera Dairy", got.ShopName)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	s, _ := newService(t)

	_, err := s.Register(context.Background(), owner)
	require.NoError(t, err)
	_, err = s.Register(context.Background(), owner)
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegister_Validation(t *testing.T) {
	s, _ := newService(t)

	short := owner
	short.Password = "123"
	_, err := s.Register(context.Background(), short)
	require.ErrorIs(t, err, ErrInvalidInput)

	noName := owner
	noName.Name = "Al"
	_, err = s.Register(context.Background(), noName)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestLogin_BadCredentials(t *testing.T) {
	s, _ := newService(t)
	_, err := s.Register(context.Background(), owner)
	require.NoError(t, err)

	_, err = s.Login(context.Background(), LoginInput{Email: owner.Email, Password: "wrong-pass"})
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = s.Login(context.Background(), LoginInput{Email: "nobody@x.test", Password: "secret1"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestShop_NotFound(t *testing.T) {
	s, _ := newService(t)

	_, err := s.Shop(context.Background(), "missing")
	require.ErrorIs(t, err, ErrShopNotFound)
}
