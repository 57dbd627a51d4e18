// Package http provides HTTP server infrastructure including the Module interface
// that all domain modules must implement for route registration.
package http

import (
	"meteory_backend/platform/config"
	"meteory_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// Module represents a bounded context that can register its HTTP routes.
// Each domain module implements this interface to encapsulate its own
// route setup, keeping the main router decoupled from specific endpoints.
type Module interface {
	// Name returns the module's identifier for logging purposes.
	Name() string
	// RegisterRoutes mounts the module's routes on the provided router group.
	// The RouterContext provides access to shared middleware and configuration.
	RegisterRoutes(ctx *RouterContext)
}

// RouterContext provides shared dependencies for module route registration.
// This avoids passing many parameters to each module's RegisterRoutes method.
type RouterContext struct {
	// Engine is the root Gin engine for modules that need engine-level access.
	Engine *gin.Engine
	// API is the /api route group. The public frontend calls these paths
	// directly, so there is no version segment.
	API *gin.RouterGroup
	// Admin is the route group guarded by the admin cookie.
	Admin *gin.RouterGroup
	// Cookie is the admin cookie configuration for auth handlers.
	Cookie config.CookieConfig
	// AdminRequired is the admin cookie middleware.
	AdminRequired gin.HandlerFunc
	// AuthRateLimiter is the stricter rate limiter for the auth gate.
	AuthRateLimiter *httpkit.AuthRateLimiter
}
