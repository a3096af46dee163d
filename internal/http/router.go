package httpx

import (
	"github.com/gin-gonic/gin"

	"github.com/you/agrialert/internal/http/handlers"
	"github.com/you/agrialert/internal/http/middleware"
)

func BuildRouter(
	ah *handlers.AuthHandlers,
	alh *handlers.AlertHandlers,
	fh *handlers.FarmHandlers,
	dh *handlers.DeviceHandlers,
	ph *handlers.PolicyHandlers,
	jwtmw *middleware.AuthMW,
	cb *middleware.CasbinMW,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	auth := r.Group("/auth")
	auth.POST("/register", ah.Register)
	auth.POST("/login", ah.Login)

	v := r.Group("/").Use(jwtmw.WithJWT(), cb.Enforce())
	v.GET("/auth/me", ah.Me)

	v.GET("/alerts", alh.List)
	v.POST("/alerts", alh.Create)
	v.GET("/alerts/:id", alh.Get)
	v.PUT("/alerts/:id", alh.Update)

	v.GET("/farms", fh.ListFarms)
	v.POST("/farms", fh.CreateFarm)
	v.GET("/farms/:id", fh.GetFarm)
	v.PUT("/farms/:id", fh.UpdateFarm)
	v.GET("/farms/:id/fields", fh.ListFields)
	v.POST("/farms/:id/fields", fh.CreateField)
	v.GET("/fields/:id", fh.GetField)
	v.PUT("/fields/:id", fh.UpdateField)

	v.GET("/devices", dh.List)
	v.POST("/devices", dh.Create)
	v.GET("/devices/:id", dh.Get)
	v.PUT("/devices/:id", dh.Update)
	v.DELETE("/devices/:id", dh.Delete)
	v.POST("/devices/:id/heartbeat", dh.Heartbeat)

	adm := r.Group("/admin").Use(jwtmw.WithJWT(), cb.Enforce())
	adm.GET("/policies", ph.List)
	adm.POST("/policies", ph.Add)
	adm.DELETE("/policies", ph.Remove)

	return r
}
