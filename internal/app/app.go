package app

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/casbin/casbin/v2"
	"github.com/gin-gonic/gin"

	"github.com/you/agrialert/internal/config"
	httpx "github.com/you/agrialert/internal/http"
	"github.com/you/agrialert/internal/http/handlers"
	"github.com/you/agrialert/internal/http/middleware"
	"github.com/you/agrialert/internal/infrastructure/auth"
	"github.com/you/agrialert/internal/infrastructure/database"
	"github.com/you/agrialert/internal/infrastructure/notifications"
	"github.com/you/agrialert/internal/infrastructure/repositories"
	"github.com/you/agrialert/internal/services"
)

// defaultPolicies is the role policy table installed on first boot. Admins
// hold the wildcard rule; farmers get read/update access to their own scope.
var defaultPolicies = [][3]string{
	{"role_admin", "/*", "(GET|POST|PUT|DELETE)"},
	{"role_farmer", "/auth/me", "GET"},
	{"role_farmer", "/alerts", "GET"},
	{"role_farmer", "/alerts/*", "(GET|PUT)"},
	{"role_farmer", "/farms", "(GET|POST)"},
	{"role_farmer", "/farms/*", "(GET|POST|PUT)"},
	{"role_farmer", "/fields/*", "(GET|PUT)"},
	{"role_farmer", "/devices", "GET"},
	{"role_farmer", "/devices/*", "(GET|POST)"},
}

// seedPolicies installs defaultPolicies when the policy table is empty. A
// half-seeded or silently unseeded table locks every role out, so any
// failure aborts startup.
func seedPolicies(e *casbin.Enforcer) error {
	policies, err := e.GetPolicy()
	if err != nil {
		return fmt.Errorf("casbin: failed to read policies: %w", err)
	}
	if len(policies) > 0 {
		return nil
	}
	for _, p := range defaultPolicies {
		if _, err := e.AddPolicy(p[0], p[1], p[2]); err != nil {
			return fmt.Errorf("casbin: failed to seed policy %v: %w", p, err)
		}
	}
	if err := e.SavePolicy(); err != nil {
		return fmt.Errorf("casbin: failed to persist seeded policies: %w", err)
	}
	log.Println("casbin: seeded default policies")
	return nil
}

func Run(cfg *config.Config) error {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	gdb, err := database.Open(cfg.DSN)
	if err != nil {
		return err
	}
	if err := database.AutoMigrate(gdb); err != nil {
		return err
	}
	cas, err := auth.NewCasbinService(gdb, cfg.CasbinModelPath)
	if err != nil {
		return err
	}
	rdb := database.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB).Client
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return err
	}

	// Infrastructure services
	passwordSvc := auth.NewPasswordService()
	tokenSvc := auth.NewJWTService(cfg.JWTSecret, cfg.JWTIssuer, cfg.AccessTTL)
	notificationSvc := notifications.NewTwilioService(cfg.TwilioSID, cfg.TwilioToken, cfg.TwilioFrom)

	// Repositories
	userRepo := repositories.NewUserRepository(gdb)
	farmRepo := repositories.NewFarmRepository(gdb)
	fieldRepo := repositories.NewFieldRepository(gdb)
	deviceRepo := repositories.NewDeviceRepository(gdb)
	alertRepo := repositories.NewAlertRepository(gdb)
	ownershipCache := repositories.NewOwnershipCache(rdb, cfg.OwnershipTTL)

	// Services
	accessSvc := services.NewAccessService(farmRepo, fieldRepo, deviceRepo, ownershipCache)
	authSvc := services.NewAuthService(userRepo, passwordSvc, tokenSvc, int64(cfg.AccessTTL.Seconds()))
	alertSvc := services.NewAlertService(alertRepo, userRepo, farmRepo, fieldRepo, deviceRepo, accessSvc, notificationSvc)
	farmSvc := services.NewFarmService(farmRepo, userRepo, accessSvc)
	fieldSvc := services.NewFieldService(fieldRepo, farmRepo, accessSvc)
	deviceSvc := services.NewDeviceService(deviceRepo, accessSvc, ownershipCache)
	policySvc := services.NewPolicyService(cas.E)

	// Handlers
	authH := handlers.NewAuthHandlers(authSvc)
	alertH := handlers.NewAlertHandlers(alertSvc)
	farmH := handlers.NewFarmHandlers(farmSvc, fieldSvc)
	deviceH := handlers.NewDeviceHandlers(deviceSvc)
	policyH := handlers.NewPolicyHandlers(policySvc)

	// Middleware
	jwtMW := middleware.NewAuthMW(tokenSvc)
	casbinMW := middleware.NewCasbinMW(cas.E)

	r := httpx.BuildRouter(authH, alertH, farmH, deviceH, policyH, jwtMW, casbinMW)

	if err := seedPolicies(cas.E); err != nil {
		return err
	}

	addr := ":" + cfg.Port
	log.Printf("listening on %s", addr)
	return http.ListenAndServe(addr, r)
}
