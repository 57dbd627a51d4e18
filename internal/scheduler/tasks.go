// Package scheduler runs delayed follow-up reminders through asynq.
package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

// TaskLeadFollowup reminds sales about a lead that is still untouched.
const TaskLeadFollowup = "leads.followup"

// LeadFollowupPayload identifies the lead to check when the task fires.
type LeadFollowupPayload struct {
	LeadID int64  `json:"leadId"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

// NewLeadFollowupTask builds the asynq task for a follow-up reminder.
func NewLeadFollowupTask(payload LeadFollowupPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskLeadFollowup, data), nil
}

// ParseLeadFollowupPayload decodes a follow-up task payload.
func ParseLeadFollowupPayload(task *asynq.Task) (LeadFollowupPayload, error) {
	var payload LeadFollowupPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return LeadFollowupPayload{}, err
	}
	return payload, nil
}
