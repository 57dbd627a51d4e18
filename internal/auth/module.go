// Package auth provides the shared-secret admin gate module.
package auth

import (
	"meteory_backend/internal/auth/handler"
	"meteory_backend/internal/auth/limiter"
	"meteory_backend/internal/auth/service"
	apphttp "meteory_backend/internal/http"
	"meteory_backend/platform/config"
	"meteory_backend/platform/logger"
)

// Module represents the auth domain module
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates a new auth module with all dependencies wired.
// The throttle may be nil when redis is not configured.
func NewModule(authCfg config.AdminAuthConfig, cookieCfg config.CookieConfig, throttle *limiter.LoginThrottle, log *logger.Logger) *Module {
	svc := service.New(authCfg)
	return &Module{
		handler: handler.New(svc, cookieCfg, throttle, log),
		service: svc,
	}
}

// Name returns the module name for logging
func (m *Module) Name() string {
	return "auth"
}

// RegisterRoutes registers the module's routes
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	// The in-process limiter fronts all three verbs; the redis throttle
	// inside Login additionally meters password attempts.
	group := ctx.API.Group("")
	group.Use(ctx.AuthRateLimiter.RateLimit())
	m.handler.RegisterRoutes(group)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
