package utils

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/sirupsen/logrus"

	"learnhub/config"
)

const (
	sendgridHost     = "https://api.sendgrid.com"
	sendgridEndpoint = "/v3/mail/send"
	appName          = "LearnHub"
)

// Mailer delivers a single HTML email
type Mailer interface {
	Send(ctx context.Context, to []string, subject, htmlBody string) error
}

// SendGridMailer sends through the SendGrid v3 API
type SendGridMailer struct {
	key  string
	from *sgmail.Email
	host string
}

func NewSendGridMailer(key, fromEmail string) *SendGridMailer {
	return &SendGridMailer{
		key:  key,
		from: sgmail.NewEmail(appName, fromEmail),
		host: sendgridHost,
	}
}

func (m *SendGridMailer) prepare(to []string, subject, htmlBody string) *sgmail.SGMailV3 {
	p := sgmail.NewPersonalization()
	p.Subject = "[" + appName + "] " + subject
	for _, addr := range to {
		p.AddTos(sgmail.NewEmail("", addr))
	}

	msg := sgmail.NewV3Mail()
	msg.SetFrom(m.from)
	msg.AddPersonalizations(p)
	msg.AddContent(sgmail.NewContent("text/html", htmlBody))
	return msg
}

func (m *SendGridMailer) Send(ctx context.Context, to []string, subject, htmlBody string) error {
	if len(to) == 0 {
		return fmt.Errorf("sendgrid: no recipients")
	}
	req := sendgrid.GetRequest(m.key, sendgridEndpoint, m.host)
	req.Method = http.MethodPost
	req.Body = sgmail.GetRequestBody(m.prepare(to, subject, htmlBody))

	res, err := sendgrid.MakeRequestWithContext(ctx, req)
	if err != nil {
		return fmt.Errorf("sendgrid: %w", err)
	}
	if res.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("sendgrid: status %d: %s", res.StatusCode, res.Body)
	}
	return nil
}

// LogMailer writes emails to the log instead of sending them
type LogMailer struct {
	log *logrus.Entry
}

func NewLogMailer(log *logrus.Entry) *LogMailer {
	return &LogMailer{log: log}
}

func (m *LogMailer) Send(_ context.Context, to []string, subject, htmlBody string) error {
	m.log.WithFields(logrus.Fields{"to": to, "subject": subject, "bytes": len(htmlBody)}).Info("email not sent: no mail provider configured")
	return nil
}

// NewMailer picks SendGrid when an API key is configured
func NewMailer(cfg *config.Config, log *logrus.Entry) Mailer {
	if cfg.SendGridAPIKey == "" {
		return NewLogMailer(log.WithField("component", "mailer"))
	}
	return NewSendGridMailer(cfg.SendGridAPIKey, cfg.EmailSender)
}

func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; }
			.header { background-color: #1E3A8A; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; }
			.content { padding: 40px 30px; color: #1F2937; line-height: 1.6; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header"><h1>%s</h1></div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">You receive this email because you review certificate requests.</div>
		</div>
	</body>
	</html>
	`, appName, title, bodyContent)
}

// PendingDigestEmail builds the subject and body of the pending request digest
func PendingDigestEmail(pending, today int64) (string, string) {
	subject := fmt.Sprintf("%d certificate request(s) awaiting review", pending)
	body := fmt.Sprintf(`
		<p>There are <strong>%d</strong> certificate requests waiting for your review, %d of them submitted today.</p>
		<p>Open the educator dashboard to approve or decline them.</p>
	`, pending, today)
	return subject, getEmailTemplate("Pending Certificate Requests", body)
}
