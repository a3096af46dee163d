package middleware

import (
	"net/http"

	"github.com/casbin/casbin/v2"
	"github.com/gin-gonic/gin"
)

// CasbinMW wraps the casbin enforcer for route-level role authorization.
// Record-level ownership is decided later, in the access service, because it
// needs database lookups (farm and device owner chains) that a route matcher
// cannot perform.
type CasbinMW struct {
	enforcer *casbin.Enforcer
}

// NewCasbinMW creates new casbin middleware wrapper
func NewCasbinMW(enforcer *casbin.Enforcer) *CasbinMW {
	return &CasbinMW{enforcer: enforcer}
}

// Enforce returns the role authorization middleware. It must run after the
// JWT middleware. Unknown roles fail closed: no policy row, no access.
func (mw *CasbinMW) Enforce() gin.HandlerFunc {
	return gin.HandlerFunc(func(c *gin.Context) {
		auth, ok := GetAuthContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Identity not found in request context"})
			c.Abort()
			return
		}

		casbinRole := "role_" + auth.Role
		allowed, err := mw.enforcer.Enforce(casbinRole, c.Request.URL.Path, c.Request.Method)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Authorization check failed"})
			c.Abort()
			return
		}

		if !allowed {
			c.JSON(http.StatusForbidden, gin.H{"message": "Access Denied"})
			c.Abort()
			return
		}

		c.Next()
	})
}
