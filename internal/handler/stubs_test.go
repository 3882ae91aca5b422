package handler_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/jmathtech/jamilcleaningapp-sub000/internal/model"
	"github.com/jmathtech/jamilcleaningapp-sub000/internal/queue"
)

var errBrokerDown = errors.New("broker down")

// jsonCtx builds an echo context for a JSON request and returns it with
// the response recorder.
func jsonCtx(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

// asCustomer injects the identity normally set by the JWT middleware.
func asCustomer(c echo.Context, id uint64, email string) {
	c.Set("customer_id", id)
	c.Set("email", email)
	c.Set("role", "customer")
}

type stubCustomerStore struct {
	created   *model.Customer
	createdID uint64
	createErr error

	byEmail    model.Customer
	byEmailErr error

	byID    model.Customer
	byIDErr error

	updatedFirst string
	updatedLast  string
	updateErr    error
}

func (s *stubCustomerStore) Create(_ context.Context, c model.Customer, _ string, _ int) (uint64, error) {
	s.created = &c
	if s.createErr != nil {
		return 0, s.createErr
	}
	return s.createdID, nil
}
func (s *stubCustomerStore) GetByEmail(_ context.Context, _ string) (model.Customer, error) {
	return s.byEmail, s.byEmailErr
}
func (s *stubCustomerStore) GetByID(_ context.Context, _ uint64) (model.Customer, error) {
	return s.byID, s.byIDErr
}
func (s *stubCustomerStore) UpsertOAuth(_ context.Context, email, first, last string) (model.Customer, error) {
	return model.Customer{Email: email, FirstName: first, LastName: last}, nil
}
func (s *stubCustomerStore) UpdateProfile(_ context.Context, _ uint64, first, last, _, _ string) error {
	s.updatedFirst, s.updatedLast = first, last
	return s.updateErr
}

type stubAdminStore struct {
	createdID uint64
	createErr error

	byEmail    model.Admin
	byEmailErr error

	byID    model.Admin
	byIDErr error
}

func (s *stubAdminStore) Create(_ context.Context, _ model.Admin) (uint64, error) {
	return s.createdID, s.createErr
}
func (s *stubAdminStore) GetByEmail(_ context.Context, _ string) (model.Admin, error) {
	return s.byEmail, s.byEmailErr
}
func (s *stubAdminStore) GetByID(_ context.Context, _ uint64) (model.Admin, error) {
	return s.byID, s.byIDErr
}

type stubMailer struct {
	enabled bool
	sendErr error
	to      string
	link    string
}

func (s *stubMailer) Enabled() bool { return s.enabled }
func (s *stubMailer) SendAdminLoginLink(to, link string) error {
	s.to, s.link = to, link
	return s.sendErr
}

type stubBookingStore struct {
	created   *model.Booking
	createdID uint64
	createErr error

	latest    model.Booking
	latestErr error

	list    []model.Booking
	listErr error

	rescheduleErr   error
	rescheduleCalls int

	deleteErrs  []error
	deleteCalls int
}

func (s *stubBookingStore) Create(_ context.Context, b *model.Booking) (uint64, error) {
	s.created = b
	if s.createErr != nil {
		return 0, s.createErr
	}
	b.ID = s.createdID
	b.Status = model.StatusPending
	return s.createdID, nil
}
func (s *stubBookingStore) LatestByCustomer(_ context.Context, _ uint64) (model.Booking, error) {
	return s.latest, s.latestErr
}
func (s *stubBookingStore) ListByCustomer(_ context.Context, _ uint64) ([]model.Booking, error) {
	return s.list, s.listErr
}
func (s *stubBookingStore) Reschedule(_ context.Context, _, _ uint64, _, _ string, _ int, _ string) error {
	s.rescheduleCalls++
	return s.rescheduleErr
}
func (s *stubBookingStore) Delete(_ context.Context, _, _ uint64) error {
	s.deleteCalls++
	if len(s.deleteErrs) == 0 {
		return nil
	}
	err := s.deleteErrs[0]
	s.deleteErrs = s.deleteErrs[1:]
	return err
}

type stubAdminBookings struct {
	booking   model.Booking
	updateErr error

	gotID     uint64
	gotStatus string
	calls     int
}

func (s *stubAdminBookings) ListAll(_ context.Context) ([]model.Booking, error) {
	return []model.Booking{s.booking}, nil
}
func (s *stubAdminBookings) UpdateStatus(_ context.Context, id uint64, status string) (model.Booking, error) {
	s.calls++
	s.gotID, s.gotStatus = id, status
	if s.updateErr != nil {
		return model.Booking{}, s.updateErr
	}
	b := s.booking
	b.ID = id
	b.Status = status
	return b, nil
}

type stubPublisher struct {
	events []queue.BookingConfirmedEvent
	err    error
}

func (s *stubPublisher) PublishBookingConfirmed(_ context.Context, ev queue.BookingConfirmedEvent) error {
	s.events = append(s.events, ev)
	return s.err
}

type stubReviewStore struct {
	attachErr error
	gotID     uint64
	gotRating int
	calls     int

	reviews []model.Review
	listErr error
}

func (s *stubReviewStore) AttachReview(_ context.Context, id, _ uint64, rating int, _ string) error {
	s.calls++
	s.gotID, s.gotRating = id, rating
	return s.attachErr
}
func (s *stubReviewStore) ListRecentReviews(_ context.Context, _ int) ([]model.Review, error) {
	return s.reviews, s.listErr
}
