// Package service hosts background jobs that run alongside the API.
package service

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/jmathtech/jamilcleaningapp-sub000/internal/model"
)

// ReminderStore is the slice of the booking repository the reminder job
// reads from.
type ReminderStore interface {
	ListByDate(ctx context.Context, date string) ([]model.Booking, error)
}

// ReminderMailer sends the day-before reminder email.
type ReminderMailer interface {
	Enabled() bool
	SendBookingReminder(to string, b model.Booking) error
}

// ReminderService emails customers the day before a confirmed booking.
type ReminderService struct {
	store  ReminderStore
	mailer ReminderMailer
}

func NewReminderService(store ReminderStore, mailer ReminderMailer) *ReminderService {
	return &ReminderService{store: store, mailer: mailer}
}

// StartScheduler runs SendDailyReminders every day at 9 AM and returns
// the started cron so the caller can stop it on shutdown.
func (s *ReminderService) StartScheduler() *cron.Cron {
	c := cron.New()
	if _, err := c.AddFunc("0 9 * * *", s.SendDailyReminders); err != nil {
		log.Printf("reminder: schedule failed: %v", err)
		return c
	}
	c.Start()
	log.Println("reminder scheduler started")
	return c
}

// SendDailyReminders emails every customer with a confirmed booking
// scheduled for tomorrow. Failures are logged per booking and do not stop
// the run.
func (s *ReminderService) SendDailyReminders() {
	if s.mailer == nil || !s.mailer.Enabled() {
		return
	}
	tomorrow := time.Now().UTC().AddDate(0, 0, 1).Format("2006-01-02")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	bookings, err := s.store.ListByDate(ctx, tomorrow)
	if err != nil {
		log.Printf("reminder: list bookings for %s failed: %v", tomorrow, err)
		return
	}
	for _, b := range bookings {
		if b.Email == "" {
			continue
		}
		if err := s.mailer.SendBookingReminder(b.Email, b); err != nil {
			log.Printf("reminder: booking %d: send failed: %v", b.ID, err)
		}
	}
	if len(bookings) > 0 {
		log.Printf("reminder: processed %d bookings for %s", len(bookings), tomorrow)
	}
}
