package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTokens_RoundTrip(t *testing.T) {
	tokens := NewTokens("secret", time.Hour)

	raw, err := tokens.GenerateToken("user-1", "shop-1")
	require.NoError(t, err)

	claims, err := tokens.ValidateToken(raw)
	require.NoError(t, err)
	require.Equal(t, "user-1", claims.UserID)
	require.Equal(t, "shop-1", claims.ShopID)
}

func TestTokens_WrongSecret(t *testing.T) {
	raw, err := NewTokens("secret", time.Hour).GenerateToken("user-1", "shop-1")
	require.NoError(t, err)

	_, err = NewTokens("other", time.Hour).ValidateToken(raw)
	require.Error(t, err)
}

func TestTokens_Expired(t *testing.T) {
	tokens := &Tokens{key: []byte("secret"), ttl: -time.Minute}

	raw, err := tokens.GenerateToken("user-1", "shop-1")
	require.NoError(t, err)

	_, err = tokens.ValidateToken(raw)
	require.Error(t, err)
}
