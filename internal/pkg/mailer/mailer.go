package mailer

import (
	"context"
	"fmt"
	"log"

	"gopkg.in/gomail.v2"
)

// Mailer is the outbound email port used by auth and reminders.
type Mailer interface {
	SendVerificationCode(ctx context.Context, email, code string) error
	SendBookingReminder(ctx context.Context, email, name, serviceName string, start string) error
}

// SMTPMailer sends mail through a plain SMTP relay via gomail.
type SMTPMailer struct {
	host string
	port int
	user string
	pass string
	from string
}

func NewSMTPMailer(host string, port int, user, pass, from string) *SMTPMailer {
	if from == "" {
		from = user
	}
	return &SMTPMailer{host: host, port: port, user: user, pass: pass, from: from}
}

func (m *SMTPMailer) send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)

	d := gomail.NewDialer(m.host, m.port, m.user, m.pass)
	return d.DialAndSend(msg)
}

func (m *SMTPMailer) SendVerificationCode(_ context.Context, email, code string) error {
	body := fmt.Sprintf(`
		<p>Welcome to PetCare!</p>
		<p>Your verification code is <strong>%s</strong>.</p>
		<p>The code expires shortly, enter it on the confirmation page to activate your account.</p>
	`, code)
	return m.send(email, "Confirm your email", body)
}

func (m *SMTPMailer) SendBookingReminder(_ context.Context, email, name, serviceName, start string) error {
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>This is a reminder for your upcoming appointment.</p>
		<ul>
			<li><strong>Service:</strong> %s</li>
			<li><strong>Start time:</strong> %s</li>
		</ul>
		<p>If you need to reschedule or cancel, please do so from your dashboard.</p>
	`, name, serviceName, start)
	return m.send(email, fmt.Sprintf("Reminder: %s appointment", serviceName), body)
}

// DevConsoleMailer logs messages instead of sending them. Used when SMTP
// is not configured.
type DevConsoleMailer struct {
	enabled bool
}

func NewDevConsoleMailer(enabled bool) *DevConsoleMailer {
	return &DevConsoleMailer{enabled: enabled}
}

func (m *DevConsoleMailer) SendVerificationCode(_ context.Context, email, code string) error {
	if m.enabled {
		log.Printf("[DEV-EMAIL] verification code email=%s code=%s", email, code)
	}
	return nil
}

func (m *DevConsoleMailer) SendBookingReminder(_ context.Context, email, _, serviceName, start string) error {
	if m.enabled {
		log.Printf("[DEV-EMAIL] booking reminder email=%s service=%s start=%s", email, serviceName, start)
	}
	return nil
}
