package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	vo "github.com/upkeep-inc/upkeep/internal/domain/user/valueobjects"
)

func TestJWTService_RoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret", 60)

	token, err := svc.Generate("user2", vo.RoleUser)
	require.NoError(t, err)
	assert.Equal(t, int64(3600), token.ExpiresIn)

	claims, err := svc.Verify(token.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "user2", claims.Username)
	assert.Equal(t, vo.RoleUser, claims.Role)
	assert.False(t, svc.ShouldRefresh(claims))
}

func TestJWTService_Rejects(t *testing.T) {
	svc := NewJWTService("test-secret", 60)

	t.Run("wrong secret", func(t *testing.T) {
		token, err := NewJWTService("other", 60).Generate("admin", vo.RoleAdmin)
		require.NoError(t, err)
		_, err = svc.Verify(token.AccessToken)
		assert.Error(t, err)
	})

	t.Run("expired", func(t *testing.T) {
		past := time.Now().Add(-time.Hour)
		claims := &Claims{
			Username: "admin",
			Role:     vo.RoleAdmin,
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(past),
			},
		}
		signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
		require.NoError(t, err)
		_, err = svc.Verify(signed)
		assert.ErrorIs(t, err, jwt.ErrTokenExpired)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := svc.Verify("not-a-token")
		assert.Error(t, err)
	})
}

func TestPasswordHashers(t *testing.T) {
	t.Run("plaintext", func(t *testing.T) {
		h, err := NewPasswordHasher("", 0)
		require.NoError(t, err)
		stored, err := h.Hash("password123")
		require.NoError(t, err)
		assert.Equal(t, "password123", stored)
		assert.True(t, h.Verify(stored, "password123"))
		assert.False(t, h.Verify(stored, "password124"))
	})

	t.Run("bcrypt", func(t *testing.T) {
		h, err := NewPasswordHasher("bcrypt", bcrypt.MinCost)
		require.NoError(t, err)
		stored, err := h.Hash("user123")
		require.NoError(t, err)
		assert.NotEqual(t, "user123", stored)
		assert.True(t, h.Verify(stored, "user123"))
		assert.False(t, h.Verify(stored, "wrong"))
		assert.False(t, h.Verify("not-a-hash", "user123"))
	})

	t.Run("unknown scheme", func(t *testing.T) {
		_, err := NewPasswordHasher("md5", 0)
		assert.Error(t, err)
	})
}
