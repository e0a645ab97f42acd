// Package mailer renders and dispatches contact-form notification
// emails over SMTP. When the transport is not configured the service
// fails open by default: the submission is written to the operational
// log and the caller still sees success.
package mailer

import (
	"context"
	"fmt"
	"html/template"
	"net/mail"
	"strings"
	texttemplate "text/template"
	"time"

	"github.com/afandihd/portfolio-backend/internal/config"
	"github.com/afandihd/portfolio-backend/internal/logging"
)

// ContactData is the user-provided content of one submission.
type ContactData struct {
	Name    string
	Email   string
	Message string
}

// Metadata is attached to a single send attempt and never persisted.
type Metadata struct {
	Timestamp time.Time
	// IPAddress is empty when the client IP could not be resolved.
	IPAddress string
	// SubmissionTime is milliseconds from form render to submit.
	SubmissionTime *int64
	UserAgent      string
}

// SendResult is the outcome of one dispatch attempt.
type SendResult struct {
	Success bool
	Error   string
	Warning string
}

// Sender dispatches a contact submission to the site operator.
type Sender interface {
	Send(ctx context.Context, data ContactData, meta Metadata) SendResult
}

// Service is the SMTP-backed Sender.
type Service struct {
	cfg      config.SMTPConfig
	siteName string
	siteURL  string
	logger   *logging.Logger

	// transport is swapped out in tests.
	transport transportFunc
}

// transportFunc delivers a finished RFC 822 message.
type transportFunc func(cfg config.SMTPConfig, from string, to string, msg []byte) error

// NewService creates an SMTP mailer. siteName/siteURL only feed the
// template branding text.
func NewService(cfg config.SMTPConfig, siteName, siteURL string, logger *logging.Logger) *Service {
	return &Service{
		cfg:       cfg,
		siteName:  siteName,
		siteURL:   siteURL,
		logger:    logger,
		transport: smtpTransport,
	}
}

// Send renders and dispatches the notification email.
//
// Unconfigured SMTP follows the operator-selected policy: "log" writes
// the submission to the log and reports success with a warning, "fail"
// reports failure. Transport errors always produce Success=false; the
// HTTP handler decides that those are not user-visible.
func (s *Service) Send(ctx context.Context, data ContactData, meta Metadata) SendResult {
	if !s.cfg.Configured() {
		missing := strings.Join(s.cfg.MissingSettings(), ", ")
		if s.cfg.OnMisconfigured == config.MisconfiguredFail {
			return SendResult{Success: false, Error: fmt.Sprintf("SMTP not configured: missing %s", missing)}
		}

		s.logger.Warn("SMTP not configured (missing %s), logging submission instead", missing)
		s.logger.Info("Contact form submission (email skipped): name=%q email=%q message=%q",
			data.Name, data.Email, data.Message)
		return SendResult{Success: true, Warning: "SMTP not configured"}
	}

	// Header values are sanitized separately from body content: a CR/LF
	// smuggled through the name would otherwise forge extra headers.
	fromName := sanitizeHeader(data.Name)
	replyTo := sanitizeHeader(data.Email)

	if _, err := mail.ParseAddress(replyTo); err != nil {
		return SendResult{Success: false, Error: fmt.Sprintf("invalid reply-to address: %v", err)}
	}

	msg, err := s.buildMessage(fromName, replyTo, data, meta)
	if err != nil {
		return SendResult{Success: false, Error: fmt.Sprintf("failed to render email: %v", err)}
	}

	if err := s.transport(s.cfg, s.cfg.FromEmail, s.cfg.ToEmail, msg); err != nil {
		return SendResult{Success: false, Error: err.Error()}
	}

	return SendResult{Success: true}
}

// sanitizeHeader strips header-injection vectors (CR, LF, angle
// brackets) and caps the value at 100 characters.
func sanitizeHeader(v string) string {
	v = strings.Map(func(r rune) rune {
		switch r {
		case '\r', '\n', '<', '>':
			return -1
		}
		return r
	}, v)
	v = strings.TrimSpace(v)
	if len(v) > 100 {
		v = v[:100]
	}
	return v
}

// templateData is what both body templates render.
type templateData struct {
	Name           string
	Email          string
	Message        string
	MessageHTML    template.HTML
	SiteName       string
	SiteURL        string
	Timestamp      string
	IPAddress      string
	SubmissionTime string
	UserAgent      string
}

var htmlBody = template.Must(template.New("contact-html").Parse(`<h2>New Contact Form Submission</h2>
<p><strong>Name:</strong> {{.Name}}</p>
<p><strong>Email:</strong> {{.Email}}</p>
<p><strong>Message:</strong></p>
<p>{{.MessageHTML}}</p>
<hr>
<p><small>Received {{.Timestamp}}{{if .IPAddress}} from {{.IPAddress}}{{end}}{{if .SubmissionTime}}, form filled in {{.SubmissionTime}}{{end}}{{if .UserAgent}}, via {{.UserAgent}}{{end}}.</small></p>
<p><small>Sent by the {{.SiteName}} contact form{{if .SiteURL}} ({{.SiteURL}}){{end}}.</small></p>
`))

var textBody = texttemplate.Must(texttemplate.New("contact-text").Parse(`New Contact Form Submission

Name: {{.Name}}
Email: {{.Email}}

Message:
{{.Message}}

--
Received {{.Timestamp}}{{if .IPAddress}} from {{.IPAddress}}{{end}}{{if .SubmissionTime}}, form filled in {{.SubmissionTime}}{{end}}{{if .UserAgent}}, via {{.UserAgent}}{{end}}.
Sent by the {{.SiteName}} contact form{{if .SiteURL}} ({{.SiteURL}}){{end}}.
`))

func (s *Service) templateData(data ContactData, meta Metadata) templateData {
	td := templateData{
		Name:      data.Name,
		Email:     data.Email,
		Message:   data.Message,
		SiteName:  s.siteName,
		SiteURL:   s.siteURL,
		Timestamp: meta.Timestamp.UTC().Format(time.RFC3339),
		IPAddress: meta.IPAddress,
		UserAgent: meta.UserAgent,
	}

	// html/template escapes every interpolated field; the message
	// additionally needs its newlines turned into <br>, so it is
	// escaped here and injected pre-rendered.
	escaped := template.HTMLEscapeString(data.Message)
	td.MessageHTML = template.HTML(strings.ReplaceAll(escaped, "\n", "<br>"))

	if meta.SubmissionTime != nil {
		td.SubmissionTime = formatSubmissionTime(*meta.SubmissionTime)
	}
	return td
}

// formatSubmissionTime renders milliseconds as a human duration.
func formatSubmissionTime(ms int64) string {
	d := time.Duration(ms) * time.Millisecond
	if d < time.Second {
		return fmt.Sprintf("%dms", ms)
	}
	return fmt.Sprintf("%.1fs", d.Seconds())
}
