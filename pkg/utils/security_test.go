package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vidtube/internal/config"
)

var testJWT = &config.JWTConfig{Secret: "test-secret", Issuer: "vidtube-auth"}

func sign(t *testing.T, method jwt.SigningMethod, key any, claims Claims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return s
}

func claimsFor(userID int64, issuer string, exp time.Time) Claims {
	return Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)
	assert.True(t, VerifyPassword("s3cret-pass", hash))
	assert.False(t, VerifyPassword("wrong", hash))
}

func TestParseToken(t *testing.T) {
	future := time.Now().Add(time.Hour)
	secret := []byte(testJWT.Secret)

	claims, err := ParseToken(sign(t, jwt.SigningMethodHS256, secret, claimsFor(7, "vidtube-auth", future)), testJWT)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)

	tests := []struct {
		name  string
		token string
		want  error
	}{
		{"expired", sign(t, jwt.SigningMethodHS256, secret, claimsFor(7, "vidtube-auth", time.Now().Add(-time.Minute))), ErrExpiredToken},
		{"wrong secret", sign(t, jwt.SigningMethodHS256, []byte("other"), claimsFor(7, "vidtube-auth", future)), ErrInvalidToken},
		{"wrong issuer", sign(t, jwt.SigningMethodHS256, secret, claimsFor(7, "someone-else", future)), ErrInvalidToken},
		{"wrong method", sign(t, jwt.SigningMethodHS512, secret, claimsFor(7, "vidtube-auth", future)), ErrInvalidToken},
		{"missing user", sign(t, jwt.SigningMethodHS256, secret, claimsFor(0, "vidtube-auth", future)), ErrInvalidToken},
		{"garbage", "not-a-token", ErrInvalidToken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseToken(tt.token, testJWT)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
