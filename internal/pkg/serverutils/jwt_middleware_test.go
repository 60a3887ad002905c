package serverutils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestParseUserIdFromToken(t *testing.T) {
	SetJwtSecret("test-secret")

	signed := signToken(t, "test-secret", jwt.MapClaims{
		"user_id": 42,
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	userId, err := ParseUserIdFromToken(signed)
	require.NoError(t, err)
	assert.Equal(t, uint(42), userId)
}

func TestParseUserIdRejectsBadTokens(t *testing.T) {
	SetJwtSecret("test-secret")

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-token"},
		{"wrong secret", signToken(t, "other-secret", jwt.MapClaims{
			"user_id": 42,
			"exp":     time.Now().Add(time.Hour).Unix(),
		})},
		{"expired", signToken(t, "test-secret", jwt.MapClaims{
			"user_id": 42,
			"exp":     time.Now().Add(-time.Hour).Unix(),
		})},
		{"missing user id", signToken(t, "test-secret", jwt.MapClaims{
			"exp": time.Now().Add(time.Hour).Unix(),
		})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseUserIdFromToken(tt.token)
			assert.Error(t, err)
		})
	}
}
