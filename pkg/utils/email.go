package utils

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
	"strings"
)

const companyName = "FitZone Gym"

// Common layout for all emails
var emailLayout = template.Must(template.New("layout").Parse(`
<!DOCTYPE html>
<html>
<head>
	<meta charset="UTF-8">
	<meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333; margin: 0; padding: 0;">
	<div style="max-width: 600px; margin: 0 auto; padding: 20px;">
		<div style="text-align: center; margin-bottom: 30px; background-color: #f9f9f9; padding: 20px;">
			<h2 style="color: #e4572e; margin: 0;">FitZone</h2>
		</div>
		<p>Hello {{.Name}},</p>
		{{range .Paragraphs}}<p>{{.}}</p>
		{{end}}
		<div style="text-align: center; margin-top: 20px; font-size: 12px; color: #666; border-top: 1px solid #eee; padding-top: 20px;">
			<p>This is an automated message, please do not reply to this email.</p>
			<p>&copy; FitZone Gym. All rights reserved.</p>
		</div>
	</div>
</body>
</html>
`))

// MailerConfig holds the SMTP settings used by Mailer.
type MailerConfig struct {
	Host     string
	Port     string
	From     string
	Password string
}

// Mailer sends HTML emails over SMTP.
type Mailer struct {
	cfg  MailerConfig
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewMailer(cfg MailerConfig) *Mailer {
	return &Mailer{cfg: cfg, send: smtp.SendMail}
}

// BookingEmail describes a class booking for the confirmation and
// cancellation templates.
type BookingEmail struct {
	To         string
	Name       string
	ClassTitle string
	Date       string
	StartTime  string
	EndTime    string
	Room       string
}

func (m *Mailer) SendBookingConfirmation(b BookingEmail) error {
	paragraphs := []string{
		fmt.Sprintf("Your spot in %s is confirmed.", b.ClassTitle),
		fmt.Sprintf("Date: %s, %s - %s", b.Date, b.StartTime, b.EndTime),
	}
	if b.Room != "" {
		paragraphs = append(paragraphs, "Room: "+b.Room)
	}
	paragraphs = append(paragraphs, "See you there!")
	return m.sendTemplate(b.To, "Class booking confirmed", b.Name, paragraphs)
}

func (m *Mailer) SendBookingCancellation(b BookingEmail) error {
	paragraphs := []string{
		fmt.Sprintf("Your booking for %s on %s has been cancelled.", b.ClassTitle, b.Date),
		"You can book another class any time from your dashboard.",
	}
	return m.sendTemplate(b.To, "Class booking cancelled", b.Name, paragraphs)
}

func (m *Mailer) sendTemplate(to, subject, name string, paragraphs []string) error {
	var body bytes.Buffer
	err := emailLayout.Execute(&body, struct {
		Name       string
		Paragraphs []string
	}{name, paragraphs})
	if err != nil {
		return fmt.Errorf("render email: %w", err)
	}
	return m.sendEmail([]string{to}, subject, body.String())
}

func (m *Mailer) sendEmail(to []string, subject, body string) error {
	if m.cfg.From == "" || m.cfg.Password == "" || m.cfg.Host == "" || m.cfg.Port == "" {
		return fmt.Errorf("email configuration not set")
	}

	headers := [][2]string{
		{"From", fmt.Sprintf("%s <%s>", companyName, m.cfg.From)},
		{"To", strings.Join(to, ",")},
		{"Subject", subject},
		{"MIME-Version", "1.0"},
		{"Content-Type", "text/html; charset=UTF-8"},
		{"X-Mailer", "FitZone-Mailer"},
	}

	var message strings.Builder
	for _, h := range headers {
		fmt.Fprintf(&message, "%s: %s\r\n", h[0], h[1])
	}
	message.WriteString("\r\n" + body)

	auth := smtp.PlainAuth("", m.cfg.From, m.cfg.Password, m.cfg.Host)
	return m.send(m.cfg.Host+":"+m.cfg.Port, auth, m.cfg.From, to, []byte(message.String()))
}
