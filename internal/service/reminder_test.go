package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jmathtech/jamilcleaningapp-sub000/internal/model"
	"github.com/jmathtech/jamilcleaningapp-sub000/internal/service"
)

type fakeStore struct {
	bookings []model.Booking
	gotDate  string
}

func (f *fakeStore) ListByDate(_ context.Context, date string) ([]model.Booking, error) {
	f.gotDate = date
	return f.bookings, nil
}

type fakeMailer struct {
	enabled bool
	sendErr error
	sentTo  []string
}

func (f *fakeMailer) Enabled() bool { return f.enabled }
func (f *fakeMailer) SendBookingReminder(to string, _ model.Booking) error {
	f.sentTo = append(f.sentTo, to)
	return f.sendErr
}

func TestSendDailyReminders(t *testing.T) {
	store := &fakeStore{bookings: []model.Booking{
		{ID: 1, Email: "a@b.com", Status: model.StatusConfirmed},
		{ID: 2, Email: "", Status: model.StatusConfirmed},
		{ID: 3, Email: "c@d.com", Status: model.StatusConfirmed},
	}}
	mailer := &fakeMailer{enabled: true}

	service.NewReminderService(store, mailer).SendDailyReminders()

	if store.gotDate == "" {
		t.Error("expected a date query")
	}
	if len(mailer.sentTo) != 2 {
		t.Fatalf("expected 2 reminders, got %d", len(mailer.sentTo))
	}
	if mailer.sentTo[0] != "a@b.com" || mailer.sentTo[1] != "c@d.com" {
		t.Errorf("unexpected recipients %v", mailer.sentTo)
	}
}

func TestSendDailyRemindersDisabledMailer(t *testing.T) {
	store := &fakeStore{bookings: []model.Booking{{ID: 1, Email: "a@b.com"}}}
	mailer := &fakeMailer{enabled: false}

	service.NewReminderService(store, mailer).SendDailyReminders()

	if store.gotDate != "" {
		t.Error("disabled mailer must not query bookings")
	}
	if len(mailer.sentTo) != 0 {
		t.Errorf("expected no reminders, got %d", len(mailer.sentTo))
	}
}

func TestSendDailyRemindersContinuesOnFailure(t *testing.T) {
	store := &fakeStore{bookings: []model.Booking{
		{ID: 1, Email: "a@b.com"},
		{ID: 2, Email: "c@d.com"},
	}}
	mailer := &fakeMailer{enabled: true, sendErr: errors.New("smtp down")}

	service.NewReminderService(store, mailer).SendDailyReminders()

	if len(mailer.sentTo) != 2 {
		t.Errorf("expected both sends attempted, got %d", len(mailer.sentTo))
	}
}
