package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/you/agrialert/domain"
)

// authContextKey is the single gin context key the verified identity lives
// under. Handlers go through the typed accessors below instead of reading
// raw values.
const authContextKey = "auth_context"

// SetAuthContext attaches the verified identity to the request context.
func SetAuthContext(c *gin.Context, auth domain.AuthContext) {
	c.Set(authContextKey, auth)
}

// GetAuthContext returns the verified identity attached by the JWT
// middleware, or false when the request never passed verification.
func GetAuthContext(c *gin.Context) (domain.AuthContext, bool) {
	v, ok := c.Get(authContextKey)
	if !ok {
		return domain.AuthContext{}, false
	}
	auth, ok := v.(domain.AuthContext)
	return auth, ok
}
