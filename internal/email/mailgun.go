package email

import (
	"context"
	"fmt"

	"github.com/mailgun/mailgun-go/v4"
)

func NewMailgunEmailer(mg *mailgun.MailgunImpl, host string) *MailgunEmailer {
	return &MailgunEmailer{
		mg:   mg,
		host: host,
	}
}

// MailgunEmailer is responsible for mailgun API interactions.
type MailgunEmailer struct {
	mg   *mailgun.MailgunImpl
	host string
}

const (
	resetPassword = "reset_password"
	verifyEmail   = "verify_email"
	earlyAccess   = "early_access"
)

// SendPasswordReset sends a reset_password email to the "to" email specified.
// Mailgun templates are used, acquire access to the Mailgun UI to learn more.
func (e MailgunEmailer) SendPasswordReset(ctx context.Context, to, hash string) error {
	msg := e.mg.NewMessage("password-reset@mg.roamvista.com", "Forgot your password?", "", to)
	msg.SetTemplate(resetPassword)
	if err := msg.AddTemplateVariable(
		"resetPasswordURL",
		fmt.Sprintf("https://%s/reset-password?hash=%s", e.host, hash),
	); err != nil {
		return err
	}

	return e.send(ctx, msg)
}

// SendVerifyEmail sends a verify_email email to the "to" email specified.
func (e MailgunEmailer) SendVerifyEmail(ctx context.Context, to, hash string) error {
	msg := e.mg.NewMessage("verify-email@mg.roamvista.com", "Verify your email.", "", to)
	msg.SetTemplate(verifyEmail)
	if err := msg.AddTemplateVariable(
		"verifyEmailURL",
		fmt.Sprintf("https://%s/verify-email?hash=%s", e.host, hash),
	); err != nil {
		return err
	}

	return e.send(ctx, msg)
}

// SendEarlyAccessConfirmation sends an early_access confirmation email to the
// "to" email specified.
func (e MailgunEmailer) SendEarlyAccessConfirmation(ctx context.Context, to, name string) error {
	msg := e.mg.NewMessage("hello@mg.roamvista.com", "You're on the Roamvista early-access list.", "", to)
	msg.SetTemplate(earlyAccess)
	if err := msg.AddTemplateVariable("name", name); err != nil {
		return err
	}

	return e.send(ctx, msg)
}

func (e MailgunEmailer) send(ctx context.Context, msg *mailgun.Message) error {
	if _, _, err := e.mg.Send(ctx, msg); err != nil {
		return err
	}
	return nil
}
