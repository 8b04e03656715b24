// Package smtp dispatches reminder messages over SMTP.
//
// The server, port, TLS flag, credentials and default sender all come from
// MailConfig, which is populated from the MAIL_* environment variables and
// the config file. STARTTLS is used when MAIL_USE_TLS is set (the usual
// port 587 submission setup).
package smtp

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"time"

	"github.com/lateowl-labs/driveminder/internal/core/domain"
	"github.com/lateowl-labs/driveminder/internal/core/ports/driven"
)

// dialTimeout bounds the TCP connect to the SMTP server.
const dialTimeout = 30 * time.Second

// Ensure Mailer implements the interface.
var _ driven.Mailer = (*Mailer)(nil)

// Mailer sends messages through a single configured SMTP account.
type Mailer struct {
	cfg domain.MailConfig
}

// NewMailer creates a mailer. Returns domain.ErrMailNotConfigured when the
// settings are incomplete, so misconfiguration is caught at startup rather
// than at the first 01:00 pass.
func NewMailer(cfg domain.MailConfig) (*Mailer, error) {
	if !cfg.Configured() {
		return nil, domain.ErrMailNotConfigured
	}
	if cfg.DefaultSender == "" {
		cfg.DefaultSender = cfg.Username
	}
	return &Mailer{cfg: cfg}, nil
}

// Send dispatches one message synchronously.
func (m *Mailer) Send(ctx context.Context, msg driven.Message) error {
	dialer := net.Dialer{Timeout: dialTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", m.cfg.Addr())
	if err != nil {
		return fmt.Errorf("dial %s: %w", m.cfg.Addr(), err)
	}

	client, err := smtp.NewClient(conn, m.cfg.Server)
	if err != nil {
		conn.Close()
		return fmt.Errorf("smtp handshake: %w", err)
	}
	defer client.Close()

	// Upgrade the connection when TLS is configured, and opportunistically
	// when the server offers it anyway: PLAIN auth refuses to cross an
	// unencrypted link to a non-local server.
	hasStartTLS, _ := client.Extension("STARTTLS")
	if m.cfg.UseTLS || hasStartTLS {
		if err := client.StartTLS(&tls.Config{ServerName: m.cfg.Server}); err != nil {
			return fmt.Errorf("starttls: %w", err)
		}
	}

	// Servers without AUTH (local relays, mostly) take mail unauthenticated.
	if hasAuth, _ := client.Extension("AUTH"); hasAuth {
		auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Server)
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("smtp auth: %w", err)
		}
	}

	if err := client.Mail(m.cfg.Username); err != nil {
		return fmt.Errorf("mail from: %w", err)
	}
	if err := client.Rcpt(msg.To); err != nil {
		return fmt.Errorf("rcpt to %s: %w", msg.To, err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("smtp data: %w", err)
	}
	if _, err := w.Write(buildMessage(m.cfg.DefaultSender, msg)); err != nil {
		w.Close()
		return fmt.Errorf("write message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close message: %w", err)
	}

	return client.Quit()
}

// buildMessage renders the RFC 5322 wire form of the message.
func buildMessage(sender string, msg driven.Message) []byte {
	headers := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nDate: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n",
		sender, msg.To, msg.Subject, time.Now().Format(time.RFC1123Z))
	return []byte(headers + msg.Body)
}
