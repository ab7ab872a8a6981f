package adapter

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"

	"github.com/MKhiriev/go-blog/internal/logger"
)

// sendMailFunc matches smtp.SendMail.
type sendMailFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

type smtpMailer struct {
	addr     string
	host     string
	username string
	password string
	from     string
	send     sendMailFunc
	logger   *logger.Logger
}

// NewSMTPMailer constructs a [Mailer] delivering through host:port. PLAIN
// auth is used when a username or password is configured.
func NewSMTPMailer(host string, port int, username, password, from string, logger *logger.Logger) Mailer {
	host = strings.TrimSpace(host)
	return &smtpMailer{
		addr:     net.JoinHostPort(host, strconv.Itoa(port)),
		host:     host,
		username: username,
		password: password,
		from:     strings.TrimSpace(from),
		send:     smtp.SendMail,
		logger:   logger,
	}
}

func (m *smtpMailer) Send(ctx context.Context, msg Message) error {
	if msg.To == "" {
		return ErrNoRecipient
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	var auth smtp.Auth
	if m.username != "" || m.password != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}

	if err := m.send(m.addr, auth, m.from, []string{msg.To}, buildMessage(m.from, msg)); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*smtpMailer.Send").Str("addr", m.addr).Msg("error sending mail")
		return fmt.Errorf("smtp send: %w", err)
	}

	return nil
}

// buildMessage renders an RFC 5322 plain-text message. Header values have
// CR and LF stripped.
func buildMessage(from string, msg Message) []byte {
	var b strings.Builder
	b.WriteString("From: " + headerValue(from) + "\r\n")
	b.WriteString("To: " + headerValue(msg.To) + "\r\n")
	b.WriteString("Subject: " + headerValue(msg.Subject) + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	b.WriteString("Content-Transfer-Encoding: 8bit\r\n\r\n")
	b.WriteString(strings.ReplaceAll(msg.Body, "\n", "\r\n"))
	b.WriteString("\r\n")
	return []byte(b.String())
}

func headerValue(v string) string {
	return strings.NewReplacer("\r", "", "\n", "").Replace(v)
}
