package mail

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewSMTPMailer(t *testing.T) {
	t.Parallel()

	t.Run("defaults port and from", func(t *testing.T) {
		m := NewSMTPMailer("smtp.example.com", "", "noreply@example.com", "secret", "")
		assert.Equal(t, "smtp.example.com", m.host)
		assert.Equal(t, "587", m.port)
		assert.Equal(t, "noreply@example.com", m.from, "from should fall back to username")
	})

	t.Run("explicit from wins", func(t *testing.T) {
		m := NewSMTPMailer("smtp.example.com", "587", "login@example.com", "secret", "TaskBite <noreply@example.com>")
		assert.Equal(t, "TaskBite <noreply@example.com>", m.from)
	})
}

func TestBuildMessage(t *testing.T) {
	t.Parallel()

	msg := string(BuildMessage("noreply@example.com", "user@example.com", "Verify your email", "hello\nworld"))

	assert.True(t, strings.HasPrefix(msg, "From: noreply@example.com\r\n"))
	assert.Contains(t, msg, "To: user@example.com\r\n")
	assert.Contains(t, msg, "Subject: Verify your email\r\n")
	assert.Contains(t, msg, "charset=\"utf-8\"")

	// Headers and body are separated by a blank line
	parts := strings.SplitN(msg, "\r\n\r\n", 2)
	assert.Len(t, parts, 2)
	assert.Equal(t, "hello\nworld", parts[1])
}

func TestSMTPMailer_Send_CancelledContext(t *testing.T) {
	t.Parallel()

	m := &SMTPMailer{host: "smtp.example.com", port: "587", from: "noreply@example.com"}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := m.Send(ctx, "user@example.com", "subject", "body")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLogMailer_Send(t *testing.T) {
	t.Parallel()

	err := LogMailer{}.Send(context.Background(), "user@example.com", "subject", "body")
	assert.NoError(t, err)
}
