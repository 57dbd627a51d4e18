// Package router builds the Gin engine from the application's modules.
package router

import (
	"context"
	"net/http"
	"time"

	apphttp "meteory_backend/internal/http"
	"meteory_backend/platform/httpkit"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// New assembles the engine: global middleware, health endpoint, and each
// module's routes. The admin group carries the cookie middleware; everything
// else is public.
func New(app *apphttp.App) *gin.Engine {
	if app.Config.GetEnvironment() == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		app.Logger.Error("panic recovered", "panic", recovered, "path", c.Request.URL.Path)
		c.AbortWithStatusJSON(http.StatusInternalServerError, httpkit.Envelope{Success: false, Error: "Internal server error"})
	}))
	engine.Use(httpkit.RequestID())
	engine.Use(httpkit.RequestLogger(app.Logger))
	engine.Use(httpkit.SecurityHeaders())
	engine.Use(corsMiddleware(app))

	// The admin frontend relies on explicit 405s to distinguish wrong verbs
	// from missing routes.
	engine.HandleMethodNotAllowed = true
	engine.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, httpkit.Envelope{Success: false, Error: "Method not allowed"})
	})
	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, httpkit.Envelope{Success: false, Error: "Not found"})
	})

	engine.GET("/api/health", healthHandler(app))

	adminRequired := httpkit.AdminRequired(app.Config)

	api := engine.Group("/api")
	admin := engine.Group("/api")
	admin.Use(adminRequired)

	ctx := &apphttp.RouterContext{
		Engine:          engine,
		API:             api,
		Admin:           admin,
		Cookie:          app.Config,
		AdminRequired:   adminRequired,
		AuthRateLimiter: httpkit.NewAuthRateLimiter(app.Logger),
	}

	for _, m := range app.Modules {
		m.RegisterRoutes(ctx)
		app.Logger.Info("registered module routes", "module", m.Name())
	}

	return engine
}

func corsMiddleware(app *apphttp.App) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: app.Config.GetCORSAllowCreds(),
		MaxAge:           12 * time.Hour,
	}

	// Config validation already rejects wildcard + credentials at boot.
	if app.Config.GetCORSAllowAll() {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = app.Config.GetCORSOrigins()
	}

	return cors.New(cfg)
}

func healthHandler(app *apphttp.App) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := app.Health.Ping(ctx); err != nil {
			app.Logger.DatabaseError("health ping", err)
			c.JSON(http.StatusServiceUnavailable, httpkit.Envelope{Success: false, Error: "database unavailable"})
			return
		}
		httpkit.OK(c, gin.H{"status": "ok"})
	}
}
