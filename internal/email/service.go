package email

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// Config holds SMTP settings. An empty Host disables outbound mail.
type Config struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
}

type Service interface {
	SendWelcome(to, username string) error
}

func NewService(cfg Config) Service {
	if cfg.Host == "" {
		return &noopService{}
	}
	return &smtpService{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

type smtpService struct {
	dialer *gomail.Dialer
	from   string
}

func (s *smtpService) SendWelcome(to, username string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Welcome to HealthBridge")
	m.SetBody("text/plain", fmt.Sprintf(
		"Hi %s,\n\nYour account has been created. Please sign in and create your patient or doctor profile to get started.\n",
		username,
	))

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send welcome email: %w", err)
	}
	return nil
}

type noopService struct{}

func (s *noopService) SendWelcome(to, username string) error { return nil }
