package email

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/carebridge/portal-api/internal/model"
)

// Config holds SMTP settings.
type Config struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username" envconfig:"SMTP_USERNAME"`
	Password string `mapstructure:"password" envconfig:"SMTP_PASSWORD"`
	From     string `mapstructure:"from"`
}

type Service interface {
	SendAppointmentConfirmation(ctx context.Context, to string, appt *model.Appointment) error
}

type service struct {
	dialer *gomail.Dialer
	from   string
}

func NewService(cfg Config) Service {
	return &service{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

func (s *service) SendAppointmentConfirmation(ctx context.Context, to string, appt *model.Appointment) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Your appointment is booked")
	m.SetBody("text/html", fmt.Sprintf(
		"<p>Your %s consultation with a %s is scheduled for %s at %s.</p><p>Status: %s</p>",
		appt.ConsultationType, appt.ProviderType, appt.ScheduledDate, appt.ScheduledTime, appt.Status,
	))

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send confirmation email: %w", err)
	}
	return nil
}

// Nop discards outgoing mail. Used when SMTP is not configured and in tests.
type Nop struct{}

func (Nop) SendAppointmentConfirmation(ctx context.Context, to string, appt *model.Appointment) error {
	return nil
}
