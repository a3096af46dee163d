package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/you/agrialert/domain"
)

// AuthMiddleware creates the token verification middleware. A missing or
// expired token is 401 (the expired message tells clients to force a
// logout); a forged or malformed token is 403. The request is aborted
// before business logic on every failure.
func AuthMiddleware(tokenSvc domain.TokenService) gin.HandlerFunc {
	return gin.HandlerFunc(func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Authorization header required"})
			c.Abort()
			return
		}

		tokenParts := strings.SplitN(authHeader, " ", 2)
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid authorization header format"})
			c.Abort()
			return
		}

		claims, err := tokenSvc.Validate(tokenParts[1])
		if err != nil {
			switch err {
			case domain.ErrTokenExpired:
				c.JSON(http.StatusUnauthorized, gin.H{"message": "Token expired"})
			case domain.ErrTokenInvalid, domain.ErrTokenMalformed:
				c.JSON(http.StatusForbidden, gin.H{"message": "Invalid token"})
			default:
				c.JSON(http.StatusForbidden, gin.H{"message": "Token validation failed"})
			}
			c.Abort()
			return
		}

		SetAuthContext(c, domain.AuthContext{
			UserID:   claims.UserID,
			Role:     claims.Role,
			LoginKey: claims.LoginKey,
		})

		c.Next()
	})
}
