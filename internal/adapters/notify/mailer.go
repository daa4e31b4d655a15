package notify

import (
	"context"
	"fmt"

	resend "github.com/resend/resend-go/v2"

	"github.com/matchpoint/gamenight/pkg/logger"
)

// Mailer sends one email to a list of recipients.
type Mailer interface {
	Send(ctx context.Context, to []string, subject, html string) error
}

// ResendMailer delivers mail through the Resend API.
type ResendMailer struct {
	client *resend.Client
	from   string
}

// NewResendMailer creates a mailer authenticated with apiKey, sending as from.
func NewResendMailer(apiKey, from string) *ResendMailer {
	return &ResendMailer{
		client: resend.NewClient(apiKey),
		from:   from,
	}
}

// Send delivers one email to the recipients.
func (m *ResendMailer) Send(ctx context.Context, to []string, subject, html string) error {
	params := &resend.SendEmailRequest{
		From:    m.from,
		To:      to,
		Subject: subject,
		Html:    html,
	}
	if _, err := m.client.Emails.SendWithContext(ctx, params); err != nil {
		return fmt.Errorf("resend send failed: %w", err)
	}
	return nil
}

// LogMailer is a no-delivery Mailer used when no API key is configured.
type LogMailer struct {
	log logger.Logger
}

// NewLogMailer creates a mailer that only logs.
func NewLogMailer(log logger.Logger) *LogMailer {
	return &LogMailer{log: log}
}

// Send logs the would-be delivery and succeeds.
func (m *LogMailer) Send(ctx context.Context, to []string, subject, _ string) error {
	m.log.Info(ctx, "mail delivery skipped (no api key)",
		logger.String("subject", subject),
		logger.Int("recipients", len(to)),
	)
	return nil
}

func subjectFor(n Notification) string {
	return fmt.Sprintf("Game night draw is out: %s", n.EventName)
}

func bodyFor(n Notification) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px;">
  <div style="background-color: #ffffff; max-width: 600px; margin: 0 auto; padding: 20px;">
    <h2>The draw for %s is ready</h2>
    <p>Courts and rounds for %s have been published. Check the app for your
    team, your tier and your first round.</p>
    <p>See you on court!</p>
  </div>
</body>
</html>`, n.EventName, n.Date.Format("Monday, 2 January 2006"))
}
