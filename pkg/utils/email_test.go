package utils

import (
	"net/smtp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendBookingConfirmation(t *testing.T) {
	mailer := NewMailer(MailerConfig{Host: "smtp.example.com", Port: "587", From: "noreply@fitzone.test", Password: "pw"})

	var gotAddr string
	var gotTo []string
	var gotMsg string
	mailer.send = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr = addr
		gotTo = to
		gotMsg = string(msg)
		return nil
	}

	err := mailer.SendBookingConfirmation(BookingEmail{
		To:         "jane@example.com",
		Name:       "Jane",
		ClassTitle: "Morning Yoga",
		Date:       "2030-01-07",
		StartTime:  "07:00",
		EndTime:    "08:00",
		Room:       "Studio A",
	})
	require.NoError(t, err)

	assert.Equal(t, "smtp.example.com:587", gotAddr)
	assert.Equal(t, []string{"jane@example.com"}, gotTo)
	assert.Contains(t, gotMsg, "Subject: Class booking confirmed\r\n")
	assert.Contains(t, gotMsg, "Morning Yoga")
	assert.Contains(t, gotMsg, "Studio A")
	assert.Contains(t, gotMsg, "Hello Jane")
}

func TestSendEmailWithoutConfig(t *testing.T) {
	mailer := NewMailer(MailerConfig{})
	err := mailer.SendBookingCancellation(BookingEmail{To: "jane@example.com"})
	assert.EqualError(t, err, "email configuration not set")
}
