// Package calculators provides the fire-safety estimation suite module.
package calculators

import (
	"meteory_backend/internal/calculators/handler"
	"meteory_backend/internal/calculators/service"
	apphttp "meteory_backend/internal/http"
	"meteory_backend/platform/validator"
)

// Module represents the calculators domain module
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates a new calculators module with all dependencies wired
func NewModule(val *validator.Validator) (*Module, error) {
	svc, err := service.New()
	if err != nil {
		return nil, err
	}
	return &Module{
		handler: handler.New(svc, val),
		service: svc,
	}, nil
}

// Name returns the module name for logging
func (m *Module) Name() string {
	return "calculators"
}

// Service returns the service layer for external use
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes registers the module's routes
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.API.Group("/calculators"))
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
