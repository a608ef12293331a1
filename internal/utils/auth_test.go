package utils

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("s3cret!", 4)
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret!", hash)

	assert.True(t, VerifyPassword(hash, "s3cret!"))
	assert.False(t, VerifyPassword(hash, "wrong"))
	assert.False(t, VerifyPassword("not-a-hash", "s3cret!"))
}

func TestHashPasswordClampsCost(t *testing.T) {
	// An out-of-range cost falls back to the bcrypt default instead of erroring.
	hash, err := HashPassword("pw", 99)
	require.NoError(t, err)
	assert.True(t, VerifyPassword(hash, "pw"))
}

func TestNewAccessTokenClaims(t *testing.T) {
	const secret = "test-secret"
	at, err := NewAccessToken(secret, 42, "alice", "CUSTOMER", 15)
	require.NoError(t, err)
	require.NotEmpty(t, at.Token)

	tok, err := jwt.Parse(at.Token, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	require.NoError(t, err)
	require.True(t, tok.Valid)

	claims, ok := tok.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, float64(42), claims["sub"])
	assert.Equal(t, "alice", claims["username"])
	assert.Equal(t, "CUSTOMER", claims["role"])
	assert.Greater(t, claims["exp"], claims["iat"])
}

func TestNewAccessTokenRejectsWrongSecret(t *testing.T) {
	at, err := NewAccessToken("right", 1, "bob", "ADMIN", 5)
	require.NoError(t, err)

	_, err = jwt.Parse(at.Token, func(t *jwt.Token) (interface{}, error) {
		return []byte("wrong"), nil
	})
	assert.Error(t, err)
}

func TestRefreshTokenHashing(t *testing.T) {
	rt, err := NewRefreshToken(7)
	require.NoError(t, err)
	assert.Len(t, rt.Raw, 96) // 48 random bytes hex encoded

	h1 := HashRefreshRaw(rt.Raw)
	h2 := HashRefreshRaw(rt.Raw)
	assert.Equal(t, h1, h2)
	assert.Len(t, h1, 64) // sha256 hex
	assert.NotEqual(t, rt.Raw, h1)

	other, err := NewRefreshToken(7)
	require.NoError(t, err)
	assert.NotEqual(t, rt.Raw, other.Raw)
	assert.NotEqual(t, h1, HashRefreshRaw(other.Raw))
}
