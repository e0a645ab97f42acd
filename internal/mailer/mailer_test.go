package mailer

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/afandihd/portfolio-backend/internal/config"
	"github.com/afandihd/portfolio-backend/internal/logging"
)

func testSMTPConfig() config.SMTPConfig {
	return config.SMTPConfig{
		Host:               "smtp.example.com",
		Port:               587,
		User:               "mailer",
		Pass:               "secret",
		FromEmail:          "noreply@example.com",
		ToEmail:            "owner@example.com",
		RejectUnauthorized: true,
		OnMisconfigured:    config.MisconfiguredLog,
	}
}

// capture replaces the SMTP transport and records the message.
type capture struct {
	from string
	to   string
	msg  []byte
	err  error
	sent int
}

func newTestService(t *testing.T, cfg config.SMTPConfig) (*Service, *capture) {
	t.Helper()
	s := NewService(cfg, "Example Site", "https://example.com", logging.GetLogger())
	cap := &capture{}
	s.transport = func(_ config.SMTPConfig, from, to string, msg []byte) error {
		cap.sent++
		cap.from, cap.to, cap.msg = from, to, msg
		return cap.err
	}
	return s, cap
}

func testData() ContactData {
	return ContactData{
		Name:    "John Doe",
		Email:   "john@example.com",
		Message: "Hello there,\nI would like to work with you.",
	}
}

func testMeta() Metadata {
	st := int64(5000)
	return Metadata{
		Timestamp:      time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		IPAddress:      "203.0.113.9",
		SubmissionTime: &st,
		UserAgent:      "Mozilla/5.0",
	}
}

func TestService_Send(t *testing.T) {
	ctx := context.Background()

	t.Run("sends to configured recipient with submitter reply-to", func(t *testing.T) {
		s, cap := newTestService(t, testSMTPConfig())

		result := s.Send(ctx, testData(), testMeta())
		require.True(t, result.Success, "error: %s", result.Error)
		assert.Equal(t, 1, cap.sent)
		assert.Equal(t, "noreply@example.com", cap.from)
		assert.Equal(t, "owner@example.com", cap.to)

		msg := string(cap.msg)
		assert.Contains(t, msg, "Reply-To: john@example.com\r\n")
		assert.Contains(t, msg, "To: owner@example.com\r\n")
		assert.Contains(t, msg, "Contact Form:")
	})

	t.Run("escapes HTML in the rendered body", func(t *testing.T) {
		s, cap := newTestService(t, testSMTPConfig())

		data := testData()
		data.Message = "check this <script>alert(1)</script> out!"

		result := s.Send(ctx, data, testMeta())
		require.True(t, result.Success)

		msg := string(cap.msg)
		htmlStart := strings.Index(msg, "text/html")
		require.Greater(t, htmlStart, 0)
		htmlPart := msg[htmlStart:]
		assert.Contains(t, htmlPart, "&lt;script&gt;")
		assert.NotContains(t, htmlPart, "<script>")
	})

	t.Run("renders message newlines as br tags", func(t *testing.T) {
		s, cap := newTestService(t, testSMTPConfig())

		result := s.Send(ctx, testData(), testMeta())
		require.True(t, result.Success)
		assert.Contains(t, string(cap.msg), "Hello there,<br>I would like to work with you.")
	})

	t.Run("embeds metadata", func(t *testing.T) {
		s, cap := newTestService(t, testSMTPConfig())

		result := s.Send(ctx, testData(), testMeta())
		require.True(t, result.Success)

		msg := string(cap.msg)
		assert.Contains(t, msg, "2025-06-01T12:00:00Z")
		assert.Contains(t, msg, "203.0.113.9")
		assert.Contains(t, msg, "5.0s")
		assert.Contains(t, msg, "Mozilla/5.0")
	})

	t.Run("omits IP when unresolved", func(t *testing.T) {
		s, cap := newTestService(t, testSMTPConfig())

		meta := testMeta()
		meta.IPAddress = ""

		result := s.Send(ctx, testData(), meta)
		require.True(t, result.Success)
		assert.NotContains(t, string(cap.msg), "from 203")
	})

	t.Run("strips header injection from the name", func(t *testing.T) {
		s, cap := newTestService(t, testSMTPConfig())

		data := testData()
		data.Name = "Evil\r\nBcc: victim@example.com\r\n<attacker>"

		result := s.Send(ctx, data, testMeta())
		require.True(t, result.Success)

		msg := string(cap.msg)
		assert.NotContains(t, msg, "Bcc: victim@example.com\r\n")
		// The From display name is one sanitized line.
		for _, line := range strings.Split(msg, "\r\n") {
			if strings.HasPrefix(line, "From: ") {
				assert.NotContains(t, line, "<attacker>")
			}
		}
	})

	t.Run("rejects an unparseable reply-to address", func(t *testing.T) {
		s, cap := newTestService(t, testSMTPConfig())

		data := testData()
		data.Email = "@@definitely not an address@@"

		result := s.Send(ctx, data, testMeta())
		assert.False(t, result.Success)
		assert.Contains(t, result.Error, "invalid reply-to address")
		assert.Equal(t, 0, cap.sent)
	})

	t.Run("transport failure returns the error without panicking", func(t *testing.T) {
		s, cap := newTestService(t, testSMTPConfig())
		cap.err = assert.AnError

		result := s.Send(ctx, testData(), testMeta())
		assert.False(t, result.Success)
		assert.Equal(t, assert.AnError.Error(), result.Error)
	})
}

func TestService_Send_Unconfigured(t *testing.T) {
	ctx := context.Background()

	t.Run("log policy reports success with a warning", func(t *testing.T) {
		cfg := testSMTPConfig()
		cfg.Host = ""
		s, cap := newTestService(t, cfg)

		result := s.Send(ctx, testData(), testMeta())
		assert.True(t, result.Success)
		assert.Equal(t, "SMTP not configured", result.Warning)
		assert.Equal(t, 0, cap.sent)
	})

	t.Run("fail policy reports failure naming the missing settings", func(t *testing.T) {
		cfg := testSMTPConfig()
		cfg.Host = ""
		cfg.Pass = ""
		cfg.OnMisconfigured = config.MisconfiguredFail
		s, cap := newTestService(t, cfg)

		result := s.Send(ctx, testData(), testMeta())
		assert.False(t, result.Success)
		assert.Contains(t, result.Error, "SMTP_HOST")
		assert.Contains(t, result.Error, "SMTP_PASS")
		assert.Equal(t, 0, cap.sent)
	})
}

func TestFormatSubmissionTime(t *testing.T) {
	assert.Equal(t, "800ms", formatSubmissionTime(800))
	assert.Equal(t, "2.5s", formatSubmissionTime(2500))
	assert.Equal(t, "60.0s", formatSubmissionTime(60000))
}
