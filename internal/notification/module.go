package notification

import (
	"context"

	"meteory_backend/internal/events"
	"meteory_backend/platform/config"
	"meteory_backend/platform/logger"
)

// Module wires lead events to the sales inbox.
type Module struct {
	sender Sender
	log    *logger.Logger
}

// NewModule creates the notification module. Without SMTP configuration all
// sends become no-ops so the rest of the system behaves identically in
// development.
func NewModule(cfg config.SMTPConfig, log *logger.Logger) *Module {
	var sender Sender = NoopSender{}
	if cfg.IsEmailEnabled() {
		sender = NewSMTPSender(cfg.GetSMTPHost(), cfg.GetSMTPPort(), cfg.GetSMTPUsername(),
			cfg.GetSMTPPassword(), cfg.GetEmailFromAddress(), cfg.GetEmailFromName(), cfg.GetSalesEmail())
	} else {
		log.Info("email notifications disabled, SMTP not configured")
	}
	return &Module{sender: sender, log: log}
}

// Sender returns the configured sender for other modules (scheduler worker).
func (m *Module) Sender() Sender {
	return m.sender
}

// Subscribe attaches the module's handlers to the event bus.
func (m *Module) Subscribe(bus events.Bus) {
	bus.Subscribe(events.LeadCreated{}.EventName(), events.HandlerFunc(m.onLeadCreated))
}

func (m *Module) onLeadCreated(ctx context.Context, evt events.Event) error {
	created, ok := evt.(events.LeadCreated)
	if !ok {
		return nil
	}

	err := m.sender.SendNewLeadEmail(ctx, NewLeadEmail{
		LeadID:  created.LeadID,
		Name:    created.Name,
		Email:   created.Email,
		Phone:   created.Phone,
		AppName: created.AppName,
	})
	if err != nil {
		m.log.MailError("new lead alert", created.Email, err)
		return err
	}
	return nil
}
