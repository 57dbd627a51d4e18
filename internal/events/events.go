// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"meteory_backend/platform/events"
	"meteory_backend/platform/logger"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
	InMemoryBus = events.InMemoryBus
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// NewInMemoryBus creates a new in-memory event bus.
func NewInMemoryBus(log *logger.Logger) *InMemoryBus {
	return events.NewInMemoryBus(log)
}

// =============================================================================
// Lead Domain Events
// =============================================================================

// LeadCreated is published when a visitor submission is stored.
// Subscribers: the sales notification mailer and the follow-up scheduler.
type LeadCreated struct {
	BaseEvent
	LeadID  int64  `json:"leadId"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	AppName string `json:"appName,omitempty"`
}

func (e LeadCreated) EventName() string { return "leads.created" }

// LeadStatusChanged is published when an admin moves a lead through the
// pipeline.
type LeadStatusChanged struct {
	BaseEvent
	LeadID    int64  `json:"leadId"`
	OldStatus string `json:"oldStatus"`
	NewStatus string `json:"newStatus"`
}

func (e LeadStatusChanged) EventName() string { return "leads.status_changed" }
