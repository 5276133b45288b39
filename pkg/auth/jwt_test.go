package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, secret string, claims jwt.Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestVerifyTokenExtractsSubjectAndEmail(t *testing.T) {
	v := NewVerifier("secret")
	token := signToken(t, "secret", TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Email: "ada@example.com",
	})

	claims, err := v.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "ada@example.com", claims.Email)
}

func TestVerifyTokenRejectsWrongSecret(t *testing.T) {
	v := NewVerifier("secret")
	token := signToken(t, "other-secret", TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "user-1"},
	})

	_, err := v.VerifyToken(token)
	assert.Error(t, err)
}

func TestVerifyTokenRejectsExpired(t *testing.T) {
	v := NewVerifier("secret")
	token := signToken(t, "secret", TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	})

	_, err := v.VerifyToken(token)
	assert.Error(t, err)
}

func TestVerifyTokenRequiresSubject(t *testing.T) {
	v := NewVerifier("secret")
	token := signToken(t, "secret", TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	_, err := v.VerifyToken(token)
	assert.ErrorContains(t, err, "subject")
}

func TestVerifyTokenRejectsGarbage(t *testing.T) {
	v := NewVerifier("secret")
	_, err := v.VerifyToken("not.a.token")
	assert.Error(t, err)
}
