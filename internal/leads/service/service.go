// Package service implements lead intake and pipeline management.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"meteory_backend/internal/events"
	"meteory_backend/internal/leads/repository"
	"meteory_backend/internal/leads/transport"
	"meteory_backend/platform/apperr"
	"meteory_backend/platform/logger"
	"meteory_backend/platform/phone"
	"meteory_backend/platform/sanitize"
)

// LeadRepository is the persistence surface the service needs.
type LeadRepository interface {
	Create(ctx context.Context, lead repository.NewLead) (int64, time.Time, error)
	List(ctx context.Context) ([]repository.Lead, error)
	UpdateStatus(ctx context.Context, id int64, status string) (string, error)
}

// FollowUpScheduler enqueues a delayed follow-up reminder for a new lead.
// Scheduling is best-effort; intake never fails because redis is down.
type FollowUpScheduler interface {
	ScheduleFollowUp(ctx context.Context, leadID int64, name, email string) error
}

// Service implements lead business logic.
type Service struct {
	repo      LeadRepository
	eventBus  events.Bus
	scheduler FollowUpScheduler
	log       *logger.Logger
}

// New creates a lead service. The scheduler may be nil when redis is not
// configured.
func New(repo LeadRepository, bus events.Bus, scheduler FollowUpScheduler, log *logger.Logger) *Service {
	return &Service{repo: repo, eventBus: bus, scheduler: scheduler, log: log}
}

// CreateLead stores a visitor submission. Free-text fields are sanitized and
// the phone number normalized before persistence. On success a LeadCreated
// event is published and a follow-up reminder scheduled.
func (s *Service) CreateLead(ctx context.Context, req transport.CreateLeadRequest) (transport.CreateLeadResponse, error) {
	name := sanitize.Text(req.Name)
	email := sanitize.Text(req.Email)
	if name == "" || email == "" {
		return transport.CreateLeadResponse{}, apperr.Validation("name and email required").WithOp("leads.CreateLead")
	}

	var data []byte
	if req.Data != nil {
		if !req.Data.MatchesKind() {
			return transport.CreateLeadResponse{}, apperr.Validation(
				fmt.Sprintf("data payload must set exactly the %q record", req.Data.Kind)).
				WithOp("leads.CreateLead")
		}
		encoded, err := json.Marshal(req.Data)
		if err != nil {
			return transport.CreateLeadResponse{}, apperr.Wrap(apperr.KindInternal, "encoding submission payload", err)
		}
		data = encoded
	}

	lead := repository.NewLead{
		Name:         name,
		Email:        email,
		Phone:        optionalText(phone.NormalizeE164(req.Phone)),
		AppName:      optionalText(sanitize.Text(req.AppName)),
		FacilityType: optionalText(sanitize.Text(req.FacilityType)),
		HazardLevel:  optionalText(sanitize.Text(req.HazardLevel)),
		Data:         data,
	}
	if req.Area != nil {
		area := req.Area.Float64()
		lead.Area = &area
	}
	if req.TotalUnits != nil {
		units := int(req.TotalUnits.Float64())
		lead.TotalUnits = &units
	}

	id, createdAt, err := s.repo.Create(ctx, lead)
	if err != nil {
		return transport.CreateLeadResponse{}, apperr.Wrap(apperr.KindInternal, "creating lead", err)
	}

	appName := ""
	if lead.AppName != nil {
		appName = *lead.AppName
	}
	s.log.LeadEvent("lead created", id, appName)

	phoneValue := ""
	if lead.Phone != nil {
		phoneValue = *lead.Phone
	}
	s.eventBus.Publish(ctx, events.LeadCreated{
		BaseEvent: events.NewBaseEvent(),
		LeadID:    id,
		Name:      name,
		Email:     email,
		Phone:     phoneValue,
		AppName:   appName,
	})

	if s.scheduler != nil {
		if err := s.scheduler.ScheduleFollowUp(ctx, id, name, email); err != nil {
			s.log.Error("scheduling follow-up failed", "leadId", id, "error", err)
		}
	}

	return transport.CreateLeadResponse{ID: id, CreatedAt: createdAt}, nil
}

// ListLeads returns every lead, newest first, for the admin dashboard.
func (s *Service) ListLeads(ctx context.Context) ([]transport.LeadResponse, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "listing leads", err)
	}

	out := make([]transport.LeadResponse, 0, len(items))
	for _, item := range items {
		out = append(out, leadToResponse(item))
	}
	return out, nil
}

// UpdateStatus moves a lead through the pipeline. Unknown statuses are
// rejected and unknown ids reported as not found.
func (s *Service) UpdateStatus(ctx context.Context, req transport.UpdateLeadStatusRequest) (transport.UpdateLeadStatusResponse, error) {
	if !transport.IsValidStatus(req.Status) {
		return transport.UpdateLeadStatusResponse{}, apperr.Validation(
			fmt.Sprintf("unknown status %q", req.Status)).WithOp("leads.UpdateStatus")
	}

	oldStatus, err := s.repo.UpdateStatus(ctx, req.ID, req.Status)
	if errors.Is(err, repository.ErrNotFound) {
		return transport.UpdateLeadStatusResponse{}, apperr.NotFound("lead not found").WithOp("leads.UpdateStatus")
	}
	if err != nil {
		return transport.UpdateLeadStatusResponse{}, apperr.Wrap(apperr.KindInternal, "updating lead status", err)
	}

	if oldStatus != req.Status {
		s.eventBus.Publish(ctx, events.LeadStatusChanged{
			BaseEvent: events.NewBaseEvent(),
			LeadID:    req.ID,
			OldStatus: oldStatus,
			NewStatus: req.Status,
		})
	}

	return transport.UpdateLeadStatusResponse{ID: req.ID, Status: req.Status}, nil
}

func leadToResponse(item repository.Lead) transport.LeadResponse {
	return transport.LeadResponse{
		ID:           item.ID,
		Name:         item.Name,
		Email:        item.Email,
		Phone:        item.Phone,
		AppName:      item.AppName,
		FacilityType: item.FacilityType,
		Area:         item.Area,
		HazardLevel:  item.HazardLevel,
		TotalUnits:   item.TotalUnits,
		Data:         json.RawMessage(item.Data),
		Status:       item.Status,
		CreatedAt:    item.CreatedAt,
	}
}

func optionalText(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
