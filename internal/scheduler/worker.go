package scheduler

import (
	"context"
	"errors"
	"fmt"

	"meteory_backend/internal/leads/repository"
	"meteory_backend/internal/leads/transport"
	"meteory_backend/internal/notification"
	"meteory_backend/platform/config"
	"meteory_backend/platform/logger"

	"github.com/hibiken/asynq"
)

// LeadStatusReader reads the current status of a lead.
type LeadStatusReader interface {
	GetStatus(ctx context.Context, id int64) (string, error)
}

// Worker consumes follow-up tasks and reminds sales when a lead went stale.
type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	leads  LeadStatusReader
	sender notification.Sender
	log    *logger.Logger
}

// NewWorker creates the follow-up worker.
func NewWorker(cfg config.SchedulerConfig, leads LeadStatusReader, sender notification.Sender, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queue: 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server: server,
		mux:    mux,
		leads:  leads,
		sender: sender,
		log:    log,
	}

	mux.HandleFunc(TaskLeadFollowup, w.handleLeadFollowup)

	return w, nil
}

func (w *Worker) handleLeadFollowup(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseLeadFollowupPayload(task)
	if err != nil {
		return err
	}

	status, err := w.leads.GetStatus(ctx, payload.LeadID)
	if errors.Is(err, repository.ErrNotFound) {
		// Lead was deleted out-of-band; nothing to remind about.
		return nil
	}
	if err != nil {
		return err
	}

	if status != transport.StatusNew {
		w.log.Info("follow-up skipped, lead already handled", "leadId", payload.LeadID, "status", status)
		return nil
	}

	if err := w.sender.SendFollowUpReminderEmail(ctx, payload.LeadID, payload.Name, payload.Email); err != nil {
		w.log.MailError("follow-up reminder", payload.Email, err)
		return err
	}

	w.log.LeadEvent("follow-up reminder sent", payload.LeadID, "")
	return nil
}

// Run starts the worker and blocks until the context is cancelled.
func (w *Worker) Run(ctx context.Context) error {
	if w == nil || w.server == nil {
		return nil
	}

	if err := w.server.Start(w.mux); err != nil {
		return fmt.Errorf("starting asynq server: %w", err)
	}

	<-ctx.Done()
	w.server.Shutdown()
	return nil
}
