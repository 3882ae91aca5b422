// Package mail sends transactional email over SMTP.
package mail

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/jmathtech/jamilcleaningapp-sub000/internal/config"
	"github.com/jmathtech/jamilcleaningapp-sub000/internal/model"
)

// Mailer wraps a gomail dialer. Enabled() is false when SMTP is not
// configured; callers log and skip instead of failing.
type Mailer struct {
	host   string
	port   int
	user   string
	pass   string
	sender string
}

func NewMailer(cfg config.Config) *Mailer {
	return &Mailer{
		host:   cfg.SMTPHost,
		port:   cfg.SMTPPort,
		user:   cfg.SMTPUser,
		pass:   cfg.SMTPPass,
		sender: cfg.SMTPSender,
	}
}

func (m *Mailer) Enabled() bool { return m.host != "" && m.sender != "" }

func (m *Mailer) send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.sender)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	d := gomail.NewDialer(m.host, m.port, m.user, m.pass)
	return d.DialAndSend(msg)
}

// SendAdminLoginLink emails the passwordless sign-in link to an admin.
func (m *Mailer) SendAdminLoginLink(to, link string) error {
	body := fmt.Sprintf(
		"Use the link below to sign in to the admin dashboard.\n\n%s\n\nThe link expires in 2 hours.", link)
	return m.send(to, "Your admin sign-in link", body)
}

// SendBookingConfirmed emails a customer that their booking was confirmed.
func (m *Mailer) SendBookingConfirmed(to string, b model.Booking) error {
	body := fmt.Sprintf(
		"Your %s booking on %s at %s has been confirmed.\n\nHours: %d\nTotal: $%.2f\n\nSee you then!",
		b.ServiceType, b.Date, b.Time, b.Hours, float64(b.TotalPriceCents)/100)
	return m.send(to, "Booking confirmed", body)
}

// SendBookingReminder emails a customer the day before their booking.
func (m *Mailer) SendBookingReminder(to string, b model.Booking) error {
	body := fmt.Sprintf(
		"A reminder that your %s booking is scheduled for %s at %s.\n\nHours: %d",
		b.ServiceType, b.Date, b.Time, b.Hours)
	return m.send(to, "Upcoming cleaning reminder", body)
}
