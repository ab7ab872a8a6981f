package adapter

import (
	"context"
	"errors"
	"net/smtp"
	"strings"
	"testing"

	"github.com/MKhiriev/go-blog/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSMTPMailer_Send(t *testing.T) {
	m := NewSMTPMailer(" mail.example.com ", 587, "user", "pass", "noreply@demo.com", logger.Nop()).(*smtpMailer)

	var (
		gotAddr string
		gotAuth smtp.Auth
		gotFrom string
		gotTo   []string
		gotMsg  string
	)
	m.send = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotAuth, gotFrom, gotTo, gotMsg = addr, a, from, to, string(msg)
		return nil
	}

	err := m.Send(context.Background(), Message{To: "alice@x.com", Subject: "Reset", Body: "line1\nline2"})
	require.NoError(t, err)

	assert.Equal(t, "mail.example.com:587", gotAddr)
	assert.NotNil(t, gotAuth)
	assert.Equal(t, "noreply@demo.com", gotFrom)
	assert.Equal(t, []string{"alice@x.com"}, gotTo)
	assert.True(t, strings.HasPrefix(gotMsg, "From: noreply@demo.com\r\nTo: alice@x.com\r\nSubject: Reset\r\n"))
	assert.Contains(t, gotMsg, "\r\n\r\nline1\r\nline2\r\n")
}

func TestSMTPMailer_NoAuthWithoutCredentials(t *testing.T) {
	m := NewSMTPMailer("localhost", 25, "", "", "noreply@demo.com", logger.Nop()).(*smtpMailer)

	m.send = func(_ string, a smtp.Auth, _ string, _ []string, _ []byte) error {
		assert.Nil(t, a)
		return nil
	}

	require.NoError(t, m.Send(context.Background(), Message{To: "a@x.com"}))
}

func TestSMTPMailer_Errors(t *testing.T) {
	m := NewSMTPMailer("localhost", 25, "", "", "noreply@demo.com", logger.Nop()).(*smtpMailer)
	sendErr := errors.New("550 mailbox unavailable")
	m.send = func(string, smtp.Auth, string, []string, []byte) error { return sendErr }

	require.ErrorIs(t, m.Send(context.Background(), Message{}), ErrNoRecipient)
	require.ErrorIs(t, m.Send(context.Background(), Message{To: "a@x.com"}), sendErr)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, m.Send(ctx, Message{To: "a@x.com"}), context.Canceled)
}

func TestBuildMessage_StripsHeaderInjection(t *testing.T) {
	msg := string(buildMessage("a@x.com", Message{To: "b@x.com\r\nBcc: evil@x.com", Subject: "hi\nthere"}))

	assert.Contains(t, msg, "To: b@x.comBcc: evil@x.com\r\n")
	assert.Contains(t, msg, "Subject: hithere\r\n")
	assert.NotContains(t, msg, "\r\nBcc:")
}
