// Package handler exposes the estimation suite over HTTP.
package handler

import (
	"meteory_backend/internal/calculators/service"
	"meteory_backend/internal/calculators/transport"
	"meteory_backend/platform/httpkit"
	"meteory_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

// Handler handles calculator HTTP requests.
type Handler struct {
	service   *service.Service
	validator *validator.Validator
}

// New creates a calculators handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{service: svc, validator: val}
}

// RegisterRoutes mounts the calculator endpoints.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/extinguishers", h.Extinguishers)
	rg.POST("/clean-agent", h.CleanAgent)
	rg.POST("/sprinklers", h.Sprinklers)
	rg.POST("/hose-reels", h.HoseReels)
	rg.POST("/hydrants", h.Hydrants)
}

// Extinguishers handles POST /api/calculators/extinguishers
func (h *Handler) Extinguishers(c *gin.Context) {
	var req transport.ExtinguisherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, 400, "Invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpkit.Error(c, 400, err.Error())
		return
	}
	httpkit.OK(c, h.service.Extinguishers(req))
}

// CleanAgent handles POST /api/calculators/clean-agent
func (h *Handler) CleanAgent(c *gin.Context) {
	var req transport.CleanAgentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, 400, "Invalid request body")
		return
	}
	res, err := h.service.CleanAgent(req)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}
	httpkit.OK(c, res)
}

// Sprinklers handles POST /api/calculators/sprinklers
func (h *Handler) Sprinklers(c *gin.Context) {
	var req transport.SprinklerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, 400, "Invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpkit.Error(c, 400, err.Error())
		return
	}
	httpkit.OK(c, h.service.Sprinklers(req))
}

// HoseReels handles POST /api/calculators/hose-reels
func (h *Handler) HoseReels(c *gin.Context) {
	var req transport.HoseReelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, 400, "Invalid request body")
		return
	}
	httpkit.OK(c, h.service.HoseReels(req))
}

// Hydrants handles POST /api/calculators/hydrants
func (h *Handler) Hydrants(c *gin.Context) {
	var req transport.HydrantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, 400, "Invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpkit.Error(c, 400, err.Error())
		return
	}
	httpkit.OK(c, h.service.Hydrants(req))
}
