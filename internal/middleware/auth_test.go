package middleware

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-that-is-long-enough-123456"

func TestGenerateAndParseToken(t *testing.T) {
	token, err := GenerateToken(testSecret, 42)
	require.NoError(t, err)

	userID, err := ParseToken(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), userID)
}

func TestGenerateToken_NoSecret(t *testing.T) {
	_, err := GenerateToken("", 1)
	assert.Error(t, err)
}

func TestParseToken_Rejects(t *testing.T) {
	sign := func(claims jwt.MapClaims) string {
		s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
		require.NoError(t, err)
		return s
	}
	exp := time.Now().Add(time.Hour).Unix()

	tests := []struct {
		name  string
		token string
	}{
		{"Garbage", "not-a-token"},
		{"Wrong issuer", sign(jwt.MapClaims{"sub": "1", "iss": "other", "aud": TokenAudience, "exp": exp})},
		{"Wrong audience", sign(jwt.MapClaims{"sub": "1", "iss": TokenIssuer, "aud": "other", "exp": exp})},
		{"Expired", sign(jwt.MapClaims{"sub": "1", "iss": TokenIssuer, "aud": TokenAudience, "exp": time.Now().Add(-time.Hour).Unix()})},
		{"No expiry", sign(jwt.MapClaims{"sub": "1", "iss": TokenIssuer, "aud": TokenAudience})},
		{"Non numeric subject", sign(jwt.MapClaims{"sub": "abc", "iss": TokenIssuer, "aud": TokenAudience, "exp": exp})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseToken(testSecret, tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}

	t.Run("Wrong secret", func(t *testing.T) {
		token, err := GenerateToken(testSecret, 1)
		require.NoError(t, err)
		_, err = ParseToken("another-secret", token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestBearerToken(t *testing.T) {
	tok, err := BearerToken("Bearer abc.def")
	require.NoError(t, err)
	assert.Equal(t, "abc.def", tok)

	_, err = BearerToken("")
	assert.ErrorIs(t, err, ErrMissingToken)

	_, err = BearerToken("Token abc")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
