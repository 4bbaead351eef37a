package mailx

import (
	"context"
	"fmt"

	gomail "github.com/wneessen/go-mail"
)

// SMTPConfig configures SMTPMailer.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string

	FromName    string
	FromAddress string
}

// SMTPMailer delivers over SMTP with opportunistic STARTTLS.
type SMTPMailer struct {
	client   *gomail.Client
	fromName string
	fromAddr string
}

// NewSMTPMailer builds a client. No connection is made until Deliver.
func NewSMTPMailer(cfg SMTPConfig) (*SMTPMailer, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("mailx: smtp host is required")
	}
	if cfg.FromAddress == "" {
		return nil, fmt.Errorf("mailx: from address is required")
	}

	opts := []gomail.Option{
		gomail.WithTLSPortPolicy(gomail.TLSOpportunistic),
	}
	if cfg.Port > 0 {
		opts = append(opts, gomail.WithPort(cfg.Port))
	}
	if cfg.Username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(cfg.Username),
			gomail.WithPassword(cfg.Password),
		)
	}

	client, err := gomail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("mailx: new smtp client: %w", err)
	}

	return &SMTPMailer{client: client, fromName: cfg.FromName, fromAddr: cfg.FromAddress}, nil
}

func (s *SMTPMailer) Deliver(ctx context.Context, msg Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}

	m := gomail.NewMsg()
	if err := m.FromFormat(s.fromName, s.fromAddr); err != nil {
		return fmt.Errorf("mailx: from: %w", err)
	}
	if err := m.To(msg.To); err != nil {
		return fmt.Errorf("mailx: to: %w", err)
	}
	m.Subject(msg.Subject)
	m.SetBodyString(gomail.TypeTextPlain, msg.Text)
	if msg.HTML != "" {
		m.AddAlternativeString(gomail.TypeTextHTML, msg.HTML)
	}

	if err := s.client.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("mailx: smtp send: %w", err)
	}
	return nil
}
