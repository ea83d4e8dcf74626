package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html/template"

	"github.com/rs/zerolog/log"
	"gopkg.in/gomail.v2"

	"github.com/Maxfurry/Hospital-Managment-Software/internal/config"
	"github.com/Maxfurry/Hospital-Managment-Software/internal/model"
)

type Sender interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// SMTPSender delivers mail through an SMTP relay.
type SMTPSender struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPSender(cfg config.SMTPConfig) *SMTPSender {
	return &SMTPSender{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

func (s *SMTPSender) Send(ctx context.Context, to, subject, htmlBody string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	return nil
}

// LogSender writes mail to the log instead of sending it. Used when no
// SMTP relay is configured.
type LogSender struct{}

func (LogSender) Send(ctx context.Context, to, subject, htmlBody string) error {
	log.Info().Str("to", to).Str("subject", subject).Msg("email not sent, smtp disabled")
	return nil
}

var welcomeTemplate = template.Must(template.New("welcome").Parse(
	`<p>Hello {{.FirstName}} {{.LastName}},</p>
<p>An account with the role <strong>{{.Role}}</strong> has been created for you.
Sign in with <strong>{{.Email}}</strong> and the password given to you by your administrator.</p>`))

type Service struct {
	sender Sender
}

func NewService(sender Sender) *Service {
	return &Service{sender: sender}
}

func (s *Service) SendWelcome(ctx context.Context, employee *model.Employee) error {
	var body bytes.Buffer
	if err := welcomeTemplate.Execute(&body, employee); err != nil {
		return fmt.Errorf("failed to render welcome email: %w", err)
	}
	return s.sender.Send(ctx, employee.Email, "Welcome to the hospital portal", body.String())
}

// HandleEmployeeCreated sends the welcome email for an EMPLOYEE_CREATED
// outbox event.
func (s *Service) HandleEmployeeCreated(ctx context.Context, event *model.OutboxEvent) error {
	var employee model.Employee
	if err := json.Unmarshal(event.Payload, &employee); err != nil {
		return fmt.Errorf("failed to decode %s payload: %w", event.EventType, err)
	}
	if employee.Email == "" {
		return fmt.Errorf("%s payload has no email", event.EventType)
	}
	return s.SendWelcome(ctx, &employee)
}
