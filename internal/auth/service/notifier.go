package service

import (
	"context"
	"fmt"
	"html"
	"net/url"
	"strings"

	"github.com/qurehealth/qure/pkg/mailx"
)

const (
	templateAccessCode    = "access_code"
	templatePasswordReset = "password_reset"
)

// Notifier renders and sends the service's transactional emails. A nil
// Notifier, or one without a Mailer, sends nothing.
type Notifier struct {
	Mailer       mailx.Mailer
	ResetBaseURL string
	Metrics      *Metrics
}

// AccessCode sends a new hospital's access code to its primary staff member.
func (n *Notifier) AccessCode(ctx context.Context, to, hospitalName, code string) error {
	if !n.enabled() {
		return nil
	}
	msg := mailx.Message{
		To:      to,
		Subject: "Hospital Access Code",
		Text:    fmt.Sprintf("Your hospital access code for %s is: %s", hospitalName, code),
		HTML: fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #0e3995;">Hospital Access Code</h2>
  <p>Hello,</p>
  <p>Your hospital access code for <strong>%s</strong> is:</p>
  <div style="background-color: #f5f5f5; padding: 1.5rem; border-radius: 0.5rem; margin: 1.5rem 0; text-align: center;">
    <h1 style="color: #0e3995; margin: 0; font-size: 2rem; letter-spacing: 0.2em;">%s</h1>
  </div>
  <p>Please keep this code secure and share it with your hospital staff who need to register.</p>
  <p>Best regards,<br>The Qure Team</p>
</div>`, html.EscapeString(hospitalName), code),
	}
	return n.deliver(ctx, templateAccessCode, msg)
}

// PasswordReset sends the reset link carrying the raw token.
func (n *Notifier) PasswordReset(ctx context.Context, to, firstName, token string) error {
	if !n.enabled() {
		return nil
	}
	link := n.ResetLink(token)
	msg := mailx.Message{
		To:      to,
		Subject: "Reset your Qure password",
		Text: fmt.Sprintf("Hello %s,\n\nUse the link below to choose a new password. It expires in one hour and can be used once.\n\n%s\n\nIf you did not ask for this, you can ignore this email.",
			firstName, link),
		HTML: fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #0e3995;">Reset your password</h2>
  <p>Hello %s,</p>
  <p>Use the button below to choose a new password. It expires in one hour and can be used once.</p>
  <p><a href="%s" style="background-color: #0e3995; color: #fff; padding: 0.75rem 1.5rem; border-radius: 0.5rem; text-decoration: none;">Reset password</a></p>
  <p>If you did not ask for this, you can ignore this email.</p>
  <p>Best regards,<br>The Qure Team</p>
</div>`, html.EscapeString(firstName), link),
	}
	return n.deliver(ctx, templatePasswordReset, msg)
}

// ResetLink builds {ResetBaseURL}/reset-password?token=<token>.
func (n *Notifier) ResetLink(token string) string {
	base := strings.TrimRight(n.ResetBaseURL, "/")
	return base + "/reset-password?token=" + url.QueryEscape(token)
}

func (n *Notifier) enabled() bool { return n != nil && n.Mailer != nil }

func (n *Notifier) deliver(ctx context.Context, template string, msg mailx.Message) error {
	err := n.Mailer.Deliver(ctx, msg)
	if err != nil {
		err = fmt.Errorf("%w: %s: %v", ErrDelivery, template, err)
	}
	n.Metrics.delivery(template, err)
	return err
}
