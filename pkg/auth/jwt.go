// Package auth verifies access tokens issued by the external auth provider.
// This service never mints tokens; it only checks the shared-secret signature
// and extracts the subject.
package auth

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims are the claims the portal cares about.
type TokenClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email,omitempty"`
}

// Verifier validates externally-issued tokens.
type Verifier interface {
	VerifyToken(token string) (*TokenClaims, error)
}

type hmacVerifier struct {
	secret []byte
}

// NewVerifier builds a shared-secret HS256 verifier.
func NewVerifier(secret string) Verifier {
	return &hmacVerifier{secret: []byte(secret)}
}

func (v *hmacVerifier) VerifyToken(tokenString string) (*TokenClaims, error) {
	claims := &TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("token missing subject")
	}
	return claims, nil
}
