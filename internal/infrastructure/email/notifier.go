package email

import (
	"context"
	"fmt"
	"html"

	"github.com/rs/zerolog"
	"github.com/wneessen/go-mail"
)

// Config holds the SMTP settings for outbound notifications.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	// SupportEmail receives customer feedback submissions.
	SupportEmail string
	// BaseURL is the public site root used to build tracking links,
	// e.g. https://track.example.com.
	BaseURL string
}

// Notifier sends the receiver an email when an administrator leaves a new
// comment on their shipment.
type Notifier struct {
	cfg Config
	log zerolog.Logger
}

func NewNotifier(cfg Config, log zerolog.Logger) *Notifier {
	return &Notifier{cfg: cfg, log: log}
}

func (n *Notifier) NotifyAdminComment(ctx context.Context, toEmail, code, comment string) error {
	msg := mail.NewMsg()
	if err := msg.From(n.cfg.From); err != nil {
		return fmt.Errorf("notification from address: %w", err)
	}
	if err := msg.To(toEmail); err != nil {
		return fmt.Errorf("notification to address: %w", err)
	}

	msg.Subject(fmt.Sprintf("Update on your shipment %s", code))
	msg.SetBodyString(mail.TypeTextPlain, plainBody(n.cfg.BaseURL, code, comment))
	msg.SetBodyString(mail.TypeTextHTML, htmlBody(n.cfg.BaseURL, code, comment))

	client, err := mail.NewClient(n.cfg.Host,
		mail.WithPort(n.cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(n.cfg.Username),
		mail.WithPassword(n.cfg.Password),
	)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send notification: %w", err)
	}

	n.log.Info().Str("code", code).Msg("comment notification sent")
	return nil
}

// NotifyFeedback forwards a customer feedback submission to the support
// inbox. The customer's address goes in Reply-To so support can answer
// directly without the relay rejecting a spoofed sender.
func (n *Notifier) NotifyFeedback(ctx context.Context, name, email, message string) error {
	msg := mail.NewMsg()
	if err := msg.From(n.cfg.From); err != nil {
		return fmt.Errorf("feedback from address: %w", err)
	}
	if err := msg.To(n.cfg.SupportEmail); err != nil {
		return fmt.Errorf("feedback to address: %w", err)
	}
	if err := msg.ReplyTo(email); err != nil {
		return fmt.Errorf("feedback reply-to address: %w", err)
	}

	msg.Subject(fmt.Sprintf("Feedback from %s", name))
	msg.SetBodyString(mail.TypeTextPlain,
		fmt.Sprintf("%s\n\nFrom: %s (%s)\n", message, name, email))
	msg.SetBodyString(mail.TypeTextHTML,
		fmt.Sprintf("<p>%s</p><p>From: %s (%s)</p>",
			html.EscapeString(message), html.EscapeString(name), html.EscapeString(email)))

	client, err := mail.NewClient(n.cfg.Host,
		mail.WithPort(n.cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(n.cfg.Username),
		mail.WithPassword(n.cfg.Password),
	)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send feedback: %w", err)
	}

	n.log.Info().Str("from", email).Msg("feedback forwarded to support")
	return nil
}

func trackingURL(baseURL, code string) string {
	return fmt.Sprintf("%s/track/%s", baseURL, code)
}

func plainBody(baseURL, code, comment string) string {
	return fmt.Sprintf(
		"There is a new note on your shipment %s:\n\n%s\n\nFollow your delivery at %s\n",
		code, comment, trackingURL(baseURL, code))
}

func htmlBody(baseURL, code, comment string) string {
	link := trackingURL(baseURL, code)
	return fmt.Sprintf(`<p>There is a new note on your shipment <strong>%s</strong>:</p>
<blockquote>%s</blockquote>
<p><a href="%s">Follow your delivery</a></p>`,
		html.EscapeString(code), html.EscapeString(comment), link)
}
