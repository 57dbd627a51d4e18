package exports

import (
	apphttp "meteory_backend/internal/http"
	"meteory_backend/platform/logger"
)

// Module represents the exports domain module
type Module struct {
	handler *Handler
}

// NewModule creates the exports module. store may be nil when MinIO is not
// configured; exports then stream inline.
func NewModule(leads LeadLister, store ObjectStore, bucket string, log *logger.Logger) *Module {
	return &Module{handler: NewHandler(leads, store, bucket, log)}
}

// Name returns the module name for logging
func (m *Module) Name() string {
	return "exports"
}

// RegisterRoutes registers the module's routes
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Admin.GET("/leads/export", m.handler.Export)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
