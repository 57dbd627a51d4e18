// Package handler exposes lead intake and the admin pipeline over HTTP.
package handler

import (
	"net/http"

	"meteory_backend/internal/leads/service"
	"meteory_backend/internal/leads/transport"
	"meteory_backend/platform/httpkit"
	"meteory_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

// Handler handles lead HTTP requests.
type Handler struct {
	service   *service.Service
	validator *validator.Validator
}

// New creates a leads handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{service: svc, validator: val}
}

// RegisterRoutes mounts the lead endpoints. Intake is public; listing and
// status changes require the admin cookie.
func (h *Handler) RegisterRoutes(public, admin *gin.RouterGroup) {
	public.POST("/leads", h.Create)
	admin.GET("/leads", h.List)
	admin.PATCH("/leads", h.UpdateStatus)
}

// Create handles POST /api/leads
func (h *Handler) Create(c *gin.Context) {
	var req transport.CreateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	// The admin frontend matches on this exact message.
	if err := h.validator.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "name and email required")
		return
	}

	res, err := h.service.CreateLead(c.Request.Context(), req)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}
	httpkit.OK(c, res)
}

// List handles GET /api/leads
func (h *Handler) List(c *gin.Context) {
	items, err := h.service.ListLeads(c.Request.Context())
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}
	httpkit.OK(c, items)
}

// UpdateStatus handles PATCH /api/leads
func (h *Handler) UpdateStatus(c *gin.Context) {
	var req transport.UpdateLeadStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "id and status required")
		return
	}

	res, err := h.service.UpdateStatus(c.Request.Context(), req)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}
	httpkit.OK(c, res)
}
