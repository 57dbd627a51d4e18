// Package leads provides the lead intake and pipeline module.
package leads

import (
	apphttp "meteory_backend/internal/http"
	"meteory_backend/internal/leads/handler"
	"meteory_backend/internal/leads/repository"
	"meteory_backend/internal/leads/service"
	"meteory_backend/platform/events"
	"meteory_backend/platform/logger"
	"meteory_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module represents the leads domain module
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates a new leads module with all dependencies wired.
// The scheduler may be nil when redis is not configured.
func NewModule(pool *pgxpool.Pool, bus events.Bus, scheduler service.FollowUpScheduler, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, bus, scheduler, log)

	return &Module{
		handler: handler.New(svc, val),
		service: svc,
	}
}

// Name returns the module name for logging
func (m *Module) Name() string {
	return "leads"
}

// Service returns the service layer for external use
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes registers the module's routes
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.API, ctx.Admin)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
