package mailer

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"math/rand"
	"mime"
	"net"
	"net/smtp"
	"time"

	"github.com/afandihd/portfolio-backend/internal/config"
)

// buildMessage assembles the multipart/alternative RFC 822 message.
// fromName and replyTo must already be header-sanitized.
func (s *Service) buildMessage(fromName, replyTo string, data ContactData, meta Metadata) ([]byte, error) {
	td := s.templateData(data, meta)

	var htmlPart bytes.Buffer
	if err := htmlBody.Execute(&htmlPart, td); err != nil {
		return nil, fmt.Errorf("html template: %w", err)
	}

	var textPart bytes.Buffer
	if err := textBody.Execute(&textPart, td); err != nil {
		return nil, fmt.Errorf("text template: %w", err)
	}

	subject := mime.QEncoding.Encode("utf-8", fmt.Sprintf("Contact Form: %s", fromName))
	encodedFromName := mime.QEncoding.Encode("utf-8", fromName)
	boundary := fmt.Sprintf("part-%d-%d", time.Now().UnixNano(), rand.Int63())

	var msg bytes.Buffer
	fmt.Fprintf(&msg, "Message-ID: %s\r\n", generateMessageID(s.cfg.Host))
	fmt.Fprintf(&msg, "Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	fmt.Fprintf(&msg, "From: %s <%s>\r\n", encodedFromName, s.cfg.FromEmail)
	fmt.Fprintf(&msg, "To: %s\r\n", s.cfg.ToEmail)
	fmt.Fprintf(&msg, "Reply-To: %s\r\n", replyTo)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&msg, "Content-Type: multipart/alternative; boundary=%q\r\n", boundary)
	msg.WriteString("\r\n")

	fmt.Fprintf(&msg, "--%s\r\n", boundary)
	msg.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n\r\n")
	msg.Write(textPart.Bytes())
	msg.WriteString("\r\n")

	fmt.Fprintf(&msg, "--%s\r\n", boundary)
	msg.WriteString("Content-Type: text/html; charset=\"utf-8\"\r\n\r\n")
	msg.Write(htmlPart.Bytes())
	msg.WriteString("\r\n")

	fmt.Fprintf(&msg, "--%s--\r\n", boundary)

	return msg.Bytes(), nil
}

func generateMessageID(domain string) string {
	return fmt.Sprintf("<%d.%d@%s>", time.Now().UnixNano(), rand.Int63(), domain)
}

const smtpTimeout = 10 * time.Second

// smtpTransport delivers msg via net/smtp. Port 465 (or SMTP_SECURE)
// means implicit TLS; anything else upgrades with STARTTLS.
func smtpTransport(cfg config.SMTPConfig, from, to string, msg []byte) error {
	address := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	tlsConfig := &tls.Config{
		ServerName:         cfg.Host,
		InsecureSkipVerify: !cfg.RejectUnauthorized,
	}

	if cfg.Secure || cfg.Port == 465 {
		return sendImplicitTLS(cfg, address, tlsConfig, from, to, msg)
	}
	return sendSTARTTLS(cfg, address, tlsConfig, from, to, msg)
}

// sendImplicitTLS sends over a connection that is TLS from the start.
func sendImplicitTLS(cfg config.SMTPConfig, address string, tlsConfig *tls.Config, from, to string, msg []byte) error {
	conn, err := tls.DialWithDialer(&net.Dialer{Timeout: smtpTimeout}, "tcp", address, tlsConfig)
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP server (implicit TLS): %w", err)
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, cfg.Host)
	if err != nil {
		return fmt.Errorf("failed to create SMTP client: %w", err)
	}
	defer client.Close()

	return sendViaClient(client, cfg, from, to, msg)
}

// sendSTARTTLS sends by upgrading a plain connection to TLS.
func sendSTARTTLS(cfg config.SMTPConfig, address string, tlsConfig *tls.Config, from, to string, msg []byte) error {
	conn, err := net.DialTimeout("tcp", address, smtpTimeout)
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, cfg.Host)
	if err != nil {
		return fmt.Errorf("failed to create SMTP client: %w", err)
	}
	defer client.Close()

	if err := client.StartTLS(tlsConfig); err != nil {
		return fmt.Errorf("failed to start TLS: %w", err)
	}

	return sendViaClient(client, cfg, from, to, msg)
}

// sendViaClient performs auth, sets sender/recipient, and writes the
// message body.
func sendViaClient(client *smtp.Client, cfg config.SMTPConfig, from, to string, msg []byte) error {
	if cfg.User != "" {
		auth := smtp.PlainAuth("", cfg.User, cfg.Pass, cfg.Host)
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("SMTP authentication failed: %w", err)
		}
	}

	if err := client.Mail(from); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}

	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("failed to set recipient: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to get data writer: %w", err)
	}

	if _, err := w.Write(msg); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close data writer: %w", err)
	}

	return client.Quit()
}
