package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/you/agrialert/domain"
	"github.com/you/agrialert/internal/mocks"
)

func setupAuthRouter(tokenSvc domain.TokenService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", AuthMiddleware(tokenSvc), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func doRequest(r *gin.Engine, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddlewareMissingHeader(t *testing.T) {
	r := setupAuthRouter(mocks.NewMockTokenService())

	w := doRequest(r, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Authorization header required")
}

func TestAuthMiddlewareBadHeaderFormat(t *testing.T) {
	r := setupAuthRouter(mocks.NewMockTokenService())

	w := doRequest(r, "Basic abc123")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid authorization header format")
}

func TestAuthMiddlewareExpiredToken(t *testing.T) {
	tokenSvc := mocks.NewMockTokenService()
	tokenSvc.ValidateFunc = func(token string) (*domain.TokenClaims, error) {
		return nil, domain.ErrTokenExpired
	}
	r := setupAuthRouter(tokenSvc)

	w := doRequest(r, "Bearer expired-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Token expired")
}

func TestAuthMiddlewareInvalidToken(t *testing.T) {
	tokenSvc := mocks.NewMockTokenService()
	tokenSvc.ValidateFunc = func(token string) (*domain.TokenClaims, error) {
		return nil, domain.ErrTokenInvalid
	}
	r := setupAuthRouter(tokenSvc)

	w := doRequest(r, "Bearer forged-token")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid token")
}

func TestAuthMiddlewareValidTokenSetsContext(t *testing.T) {
	tokenSvc := mocks.NewMockTokenService()
	tokenSvc.ValidateFunc = func(token string) (*domain.TokenClaims, error) {
		return &domain.TokenClaims{UserID: 42, Role: domain.RoleFarmer, LoginKey: "+15550002222"}, nil
	}

	gin.SetMode(gin.TestMode)
	var captured domain.AuthContext
	var found bool
	r := gin.New()
	r.GET("/protected", AuthMiddleware(tokenSvc), func(c *gin.Context) {
		captured, found = GetAuthContext(c)
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	w := doRequest(r, "Bearer good-token")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, found)
	assert.Equal(t, uint(42), captured.UserID)
	assert.Equal(t, domain.RoleFarmer, captured.Role)
	assert.Equal(t, "+15550002222", captured.LoginKey)
}
