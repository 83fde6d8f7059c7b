package auth

import (
	"testing"
	"time"

	"github.com/ceodigitcare/fastflow01-sub002/internal/infrastructure/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-at-least-32-chars"

func sign(t *testing.T, method jwt.SigningMethod, secret string, claims *Claims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func validClaims(storeID uuid.UUID) *Claims {
	now := time.Now()
	return &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "identity",
			Subject:   "user-1",
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now.Add(-time.Minute)),
			ExpiresAt: jwt.NewNumericDate(now.Add(15 * time.Minute)),
		},
		StoreID: storeID.String(),
		UserID:  "user-1",
		Roles:   []string{"owner"},
	}
}

func TestVerifier_Verify(t *testing.T) {
	v := NewVerifier(config.JWTConfig{Secret: testSecret, Issuer: "identity"})
	storeID := uuid.New()

	t.Run("valid token", func(t *testing.T) {
		claims, err := v.Verify(sign(t, jwt.SigningMethodHS256, testSecret, validClaims(storeID)))
		require.NoError(t, err)
		got, err := claims.StoreUUID()
		require.NoError(t, err)
		assert.Equal(t, storeID, got)
		assert.True(t, claims.HasRole("owner"))
		assert.False(t, claims.HasRole("admin"))
	})

	t.Run("expired", func(t *testing.T) {
		c := validClaims(storeID)
		c.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
		_, err := v.Verify(sign(t, jwt.SigningMethodHS256, testSecret, c))
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("not yet valid", func(t *testing.T) {
		c := validClaims(storeID)
		c.NotBefore = jwt.NewNumericDate(time.Now().Add(time.Hour))
		_, err := v.Verify(sign(t, jwt.SigningMethodHS256, testSecret, c))
		assert.ErrorIs(t, err, ErrTokenNotYetValid)
	})

	t.Run("wrong secret", func(t *testing.T) {
		_, err := v.Verify(sign(t, jwt.SigningMethodHS256, "another-secret", validClaims(storeID)))
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		c := validClaims(storeID)
		c.Issuer = "someone-else"
		_, err := v.Verify(sign(t, jwt.SigningMethodHS256, testSecret, c))
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("missing store", func(t *testing.T) {
		c := validClaims(storeID)
		c.StoreID = ""
		_, err := v.Verify(sign(t, jwt.SigningMethodHS256, testSecret, c))
		assert.ErrorIs(t, err, ErrMissingStoreID)
	})

	t.Run("malformed store", func(t *testing.T) {
		c := validClaims(storeID)
		c.StoreID = "not-a-uuid"
		_, err := v.Verify(sign(t, jwt.SigningMethodHS256, testSecret, c))
		assert.ErrorIs(t, err, ErrInvalidClaims)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := v.Verify("not.a.jwt")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestVerifier_AnyIssuer(t *testing.T) {
	v := NewVerifier(config.JWTConfig{Secret: testSecret})
	c := validClaims(uuid.New())
	c.Issuer = "whoever"
	_, err := v.Verify(sign(t, jwt.SigningMethodHS512, testSecret, c))
	assert.NoError(t, err)
}
