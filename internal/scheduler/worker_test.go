package scheduler

import (
	"context"
	"testing"

	"meteory_backend/internal/leads/repository"
	"meteory_backend/internal/notification"
	"meteory_backend/platform/logger"
)

type stubStatusReader struct {
	statuses map[int64]string
}

func (s stubStatusReader) GetStatus(ctx context.Context, id int64) (string, error) {
	status, ok := s.statuses[id]
	if !ok {
		return "", repository.ErrNotFound
	}
	return status, nil
}

type followupRecorder struct {
	reminders []int64
}

func (r *followupRecorder) SendNewLeadEmail(ctx context.Context, lead notification.NewLeadEmail) error {
	return nil
}

func (r *followupRecorder) SendFollowUpReminderEmail(ctx context.Context, leadID int64, name, email string) error {
	r.reminders = append(r.reminders, leadID)
	return nil
}

func TestLeadFollowupTaskRoundTrip(t *testing.T) {
	payload := LeadFollowupPayload{LeadID: 7, Name: "Ali", Email: "ali@example.com"}

	task, err := NewLeadFollowupTask(payload)
	if err != nil {
		t.Fatalf("building task: %v", err)
	}
	if task.Type() != TaskLeadFollowup {
		t.Fatalf("wrong task type %q", task.Type())
	}

	got, err := ParseLeadFollowupPayload(task)
	if err != nil {
		t.Fatalf("parsing payload: %v", err)
	}
	if got != payload {
		t.Fatalf("payload round trip lost data: %+v", got)
	}
}

func TestHandleLeadFollowup(t *testing.T) {
	tests := []struct {
		name         string
		statuses     map[int64]string
		wantReminder bool
	}{
		{"still new sends reminder", map[int64]string{7: "New"}, true},
		{"contacted lead skipped", map[int64]string{7: "Contacted"}, false},
		{"archived lead skipped", map[int64]string{7: "Archived"}, false},
		{"deleted lead skipped", map[int64]string{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sender := &followupRecorder{}
			w := &Worker{
				leads:  stubStatusReader{statuses: tt.statuses},
				sender: sender,
				log:    logger.New("test"),
			}

			task, err := NewLeadFollowupTask(LeadFollowupPayload{LeadID: 7, Name: "Ali", Email: "ali@example.com"})
			if err != nil {
				t.Fatalf("building task: %v", err)
			}
			if err := w.handleLeadFollowup(context.Background(), task); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if tt.wantReminder && len(sender.reminders) != 1 {
				t.Fatalf("expected a reminder, got %d", len(sender.reminders))
			}
			if !tt.wantReminder && len(sender.reminders) != 0 {
				t.Fatalf("expected no reminder, got %d", len(sender.reminders))
			}
		})
	}
}
