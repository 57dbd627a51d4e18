package notification

import (
	"context"
	"testing"

	"meteory_backend/internal/events"
	"meteory_backend/platform/logger"
)

type recordingSender struct {
	newLeads  []NewLeadEmail
	reminders []int64
}

func (r *recordingSender) SendNewLeadEmail(ctx context.Context, lead NewLeadEmail) error {
	r.newLeads = append(r.newLeads, lead)
	return nil
}

func (r *recordingSender) SendFollowUpReminderEmail(ctx context.Context, leadID int64, name, email string) error {
	r.reminders = append(r.reminders, leadID)
	return nil
}

func TestLeadCreatedTriggersSalesAlert(t *testing.T) {
	log := logger.New("test")
	bus := events.NewInMemoryBus(log)
	sender := &recordingSender{}
	m := &Module{sender: sender, log: log}
	m.Subscribe(bus)

	err := bus.PublishSync(context.Background(), events.LeadCreated{
		BaseEvent: events.NewBaseEvent(),
		LeadID:    7,
		Name:      "Ali",
		Email:     "ali@example.com",
		Phone:     "+966501234567",
		AppName:   "Sprinkler Layout",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(sender.newLeads) != 1 {
		t.Fatalf("expected one sales alert, got %d", len(sender.newLeads))
	}
	got := sender.newLeads[0]
	if got.LeadID != 7 || got.Name != "Ali" || got.AppName != "Sprinkler Layout" {
		t.Fatalf("wrong alert payload: %+v", got)
	}
}

func TestStatusChangeDoesNotTriggerAlert(t *testing.T) {
	log := logger.New("test")
	bus := events.NewInMemoryBus(log)
	sender := &recordingSender{}
	m := &Module{sender: sender, log: log}
	m.Subscribe(bus)

	err := bus.PublishSync(context.Background(), events.LeadStatusChanged{
		BaseEvent: events.NewBaseEvent(),
		LeadID:    7,
		OldStatus: "New",
		NewStatus: "Contacted",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sender.newLeads) != 0 {
		t.Fatal("status changes must not email sales")
	}
}
