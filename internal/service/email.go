package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/resend/resend-go/v2"
	"github.com/wellpath/portal/internal/model"
)

var ErrEmailNotConfigured = errors.New("email service not configured (missing RESEND_API_KEY)")

// Mailer sends the notifications patients receive.
type Mailer interface {
	SendWelcome(ctx context.Context, email, name string) error
	SendOverdueReminders(ctx context.Context, email, name string, reminders []*model.Reminder) error
}

type EmailService struct {
	client    *resend.Client
	fromEmail string
	logOnly   bool
	appURL    string
	appName   string
}

func NewEmailService(apiKey, fromEmail, appURL, appName string, logOnly bool) *EmailService {
	var client *resend.Client
	if apiKey != "" && !logOnly {
		client = resend.NewClient(apiKey)
	}

	return &EmailService{
		client:    client,
		fromEmail: fromEmail,
		logOnly:   logOnly,
		appURL:    appURL,
		appName:   appName,
	}
}

func (s *EmailService) dashboardURL() string {
	return fmt.Sprintf("%s/patient/dashboard", s.appURL)
}

func (s *EmailService) SendWelcome(ctx context.Context, email, name string) error {
	msg, err := renderEmail("welcome.md", welcomeEmailData{
		Name:         name,
		DashboardURL: s.dashboardURL(),
		AppName:      s.appName,
	})
	if err != nil {
		return err
	}
	return s.send(ctx, "welcome", email, msg)
}

func (s *EmailService) SendOverdueReminders(ctx context.Context, email, name string, reminders []*model.Reminder) error {
	msg, err := renderEmail("overdue.md", overdueEmailData{
		Name:         name,
		Reminders:    reminders,
		DashboardURL: s.dashboardURL(),
		AppName:      s.appName,
	})
	if err != nil {
		return err
	}
	return s.send(ctx, "overdue_reminders", email, msg)
}

func (s *EmailService) send(ctx context.Context, kind, to string, msg *renderedEmail) error {
	if s.logOnly {
		slog.Info("email sent (log only)", "type", kind, "to", to, "subject", msg.Subject)
		return nil
	}

	if s.client == nil {
		return ErrEmailNotConfigured
	}

	params := &resend.SendEmailRequest{
		From:    s.fromEmail,
		To:      []string{to},
		Subject: msg.Subject,
		Text:    msg.Text,
		Html:    msg.HTML,
	}

	_, err := s.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("failed to send %s email: %w", kind, err)
	}

	slog.Info("email sent", "type", kind, "to", to)
	return nil
}
