// Package notification delivers sales alerts for incoming leads.
package notification

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net"
	"time"

	gomail "github.com/wneessen/go-mail"
)

// NewLeadEmail holds the fields rendered into the sales alert.
type NewLeadEmail struct {
	LeadID  int64
	Name    string
	Email   string
	Phone   string
	AppName string
}

// Sender delivers lead notifications to the sales inbox.
type Sender interface {
	SendNewLeadEmail(ctx context.Context, lead NewLeadEmail) error
	SendFollowUpReminderEmail(ctx context.Context, leadID int64, name, email string) error
}

// NoopSender is used when SMTP is not configured.
type NoopSender struct{}

func (NoopSender) SendNewLeadEmail(ctx context.Context, lead NewLeadEmail) error { return nil }

func (NoopSender) SendFollowUpReminderEmail(ctx context.Context, leadID int64, name, email string) error {
	return nil
}

var newLeadTemplate = template.Must(template.New("new_lead").Parse(`
<h2>New lead #{{.LeadID}}</h2>
<p><strong>{{.Name}}</strong> &lt;{{.Email}}&gt;{{if .Phone}}, {{.Phone}}{{end}}</p>
{{if .AppName}}<p>Source: {{.AppName}}</p>{{end}}
<p>Open the admin dashboard to follow up.</p>
`))

var followUpTemplate = template.Must(template.New("follow_up").Parse(`
<h2>Follow-up due: lead #{{.LeadID}}</h2>
<p><strong>{{.Name}}</strong> &lt;{{.Email}}&gt; is still marked New.</p>
<p>Reach out or archive the lead.</p>
`))

// SMTPSender delivers notifications over SMTP via go-mail.
type SMTPSender struct {
	host       string
	port       int
	username   string
	password   string
	fromName   string
	fromEmail  string
	salesEmail string
}

// NewSMTPSender creates a sender with the given SMTP credentials.
func NewSMTPSender(host string, port int, username, password, fromEmail, fromName, salesEmail string) *SMTPSender {
	return &SMTPSender{
		host:       host,
		port:       port,
		username:   username,
		password:   password,
		fromName:   fromName,
		fromEmail:  fromEmail,
		salesEmail: salesEmail,
	}
}

func (s *SMTPSender) send(ctx context.Context, subject, htmlContent string) error {
	msg := gomail.NewMsg()
	if err := msg.FromFormat(s.fromName, s.fromEmail); err != nil {
		return fmt.Errorf("smtp from: %w", err)
	}
	if err := msg.To(s.salesEmail); err != nil {
		return fmt.Errorf("smtp to: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextHTML, htmlContent)

	client, err := gomail.NewClient(s.host,
		gomail.WithPort(s.port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(s.username),
		gomail.WithPassword(s.password),
		gomail.WithTLSPortPolicy(gomail.TLSOpportunistic),
		gomail.WithTimeout(15*time.Second),
		gomail.WithDialContextFunc(func(dctx context.Context, _ string, addr string) (net.Conn, error) {
			return (&net.Dialer{}).DialContext(dctx, "tcp4", addr)
		}),
	)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}

	return nil
}

// SendNewLeadEmail alerts the sales inbox about a fresh lead.
func (s *SMTPSender) SendNewLeadEmail(ctx context.Context, lead NewLeadEmail) error {
	var buf bytes.Buffer
	if err := newLeadTemplate.Execute(&buf, lead); err != nil {
		return fmt.Errorf("rendering new lead email: %w", err)
	}
	subject := fmt.Sprintf("New lead: %s", lead.Name)
	if lead.AppName != "" {
		subject = fmt.Sprintf("New lead: %s (%s)", lead.Name, lead.AppName)
	}
	return s.send(ctx, subject, buf.String())
}

// SendFollowUpReminderEmail nudges sales about a lead that stayed New.
func (s *SMTPSender) SendFollowUpReminderEmail(ctx context.Context, leadID int64, name, email string) error {
	var buf bytes.Buffer
	if err := followUpTemplate.Execute(&buf, NewLeadEmail{LeadID: leadID, Name: name, Email: email}); err != nil {
		return fmt.Errorf("rendering follow-up email: %w", err)
	}
	return s.send(ctx, fmt.Sprintf("Follow-up due: lead #%d", leadID), buf.String())
}
