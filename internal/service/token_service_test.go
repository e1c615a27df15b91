package service

import (
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/teaching-scheduler-api/internal/models"
	appErrors "github.com/noah-isme/teaching-scheduler-api/pkg/errors"
)

func signToken(t *testing.T, secret string, method jwt.SigningMethod, claims models.AccessClaims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func accessClaims(role string, expires time.Time) models.AccessClaims {
	return models.AccessClaims{
		Role:  role,
		Email: "staff@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}
}

func TestTokenVerifierAcceptsValidToken(t *testing.T) {
	verifier := NewTokenVerifier("secret")
	token := signToken(t, "secret", jwt.SigningMethodHS256, accessClaims("authenticated", time.Now().Add(time.Hour)))

	claims, err := verifier.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "authenticated", claims.Role)
	assert.Equal(t, "user-1", claims.Subject)
}

func TestTokenVerifierRejects(t *testing.T) {
	verifier := NewTokenVerifier("secret")
	cases := map[string]string{
		"wrong secret": signToken(t, "other", jwt.SigningMethodHS256, accessClaims("authenticated", time.Now().Add(time.Hour))),
		"expired":      signToken(t, "secret", jwt.SigningMethodHS256, accessClaims("authenticated", time.Now().Add(-time.Minute))),
		"wrong alg":    signToken(t, "secret", jwt.SigningMethodHS512, accessClaims("authenticated", time.Now().Add(time.Hour))),
		"garbage":      "not-a-token",
	}
	for name, token := range cases {
		_, err := verifier.Verify(token)
		require.Error(t, err, name)
		assert.Equal(t, http.StatusUnauthorized, appErrors.FromError(err).Status, name)
	}
}

func TestTokenVerifierWithoutSecret(t *testing.T) {
	verifier := NewTokenVerifier("")

	assert.False(t, verifier.Enabled())
	_, err := verifier.Verify("anything")
	assert.Error(t, err)
}
