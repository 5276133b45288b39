package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/carebridge/portal-api/pkg/auth"
)

type fakeVerifier struct {
	claims *auth.TokenClaims
	err    error
}

func (f *fakeVerifier) VerifyToken(token string) (*auth.TokenClaims, error) {
	return f.claims, f.err
}

func authRequest(t *testing.T, verifier auth.Verifier, header string) (*httptest.ResponseRecorder, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	var userID string
	r := gin.New()
	r.Use(NewAuthMiddleware(verifier).Authenticate())
	r.GET("/ping", func(c *gin.Context) {
		userID = c.GetString(ContextUserID)
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	r.ServeHTTP(w, req)
	return w, userID
}

func TestAuthenticateSetsUserID(t *testing.T) {
	verifier := &fakeVerifier{claims: &auth.TokenClaims{}}
	verifier.claims.Subject = "user-1"

	w, userID := authRequest(t, verifier, "Bearer good-token")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user-1", userID)
}

func TestAuthenticateMissingHeader(t *testing.T) {
	w, _ := authRequest(t, &fakeVerifier{}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticateMalformedHeader(t *testing.T) {
	w, _ := authRequest(t, &fakeVerifier{}, "Token abc")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticateInvalidToken(t *testing.T) {
	verifier := &fakeVerifier{err: errors.New("invalid token")}
	w, _ := authRequest(t, verifier, "Bearer bad-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
