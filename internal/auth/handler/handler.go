// Package handler exposes the admin gate over HTTP.
package handler

import (
	"net/http"

	"meteory_backend/internal/auth/limiter"
	"meteory_backend/internal/auth/service"
	"meteory_backend/platform/config"
	"meteory_backend/platform/httpkit"
	"meteory_backend/platform/logger"

	"github.com/gin-gonic/gin"
)

const adminCookieValue = "1"

// Handler handles the admin gate endpoints.
type Handler struct {
	service  *service.Service
	cookie   config.CookieConfig
	throttle *limiter.LoginThrottle
	log      *logger.Logger
}

// New creates an auth handler. The throttle may be nil when redis is not
// configured.
func New(svc *service.Service, cookie config.CookieConfig, throttle *limiter.LoginThrottle, log *logger.Logger) *Handler {
	return &Handler{service: svc, cookie: cookie, throttle: throttle, log: log}
}

// RegisterRoutes mounts the gate endpoints.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/auth", h.Check)
	rg.POST("/auth", h.Login)
	rg.DELETE("/auth", h.Logout)
}

type loginRequest struct {
	Password string `json:"password"`
}

// Check handles GET /api/auth. It always answers 200; authenticated reflects
// the cookie state. The field sits at the envelope's top level because the
// admin frontend reads it there.
func (h *Handler) Check(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "authenticated": httpkit.IsAdmin(c, h.cookie)})
}

// Login handles POST /api/auth.
func (h *Handler) Login(c *gin.Context) {
	clientIP := c.ClientIP()

	if h.throttle != nil && !h.throttle.Allow(c.Request.Context(), clientIP) {
		c.JSON(http.StatusTooManyRequests, httpkit.Envelope{Success: false, Error: "Too many attempts, try again later"})
		return
	}

	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// Treat an unreadable body as a wrong password, same status either way.
		req.Password = ""
	}

	if err := h.service.VerifyPassword(req.Password); err != nil {
		h.log.AuthEvent("admin login", clientIP, false, "password mismatch")
		httpkit.HandleError(c, err)
		return
	}

	if h.throttle != nil {
		h.throttle.Reset(c.Request.Context(), clientIP)
	}
	h.log.AuthEvent("admin login", clientIP, true, "")

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.GetAdminCookieName(), adminCookieValue,
		int(h.cookie.GetAdminCookieTTL().Seconds()), "/", "", h.cookie.GetAdminCookieSecure(), true)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Logout handles DELETE /api/auth.
func (h *Handler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.GetAdminCookieName(), "", -1, "/", "", h.cookie.GetAdminCookieSecure(), true)
	c.JSON(http.StatusOK, gin.H{"success": true})
}
