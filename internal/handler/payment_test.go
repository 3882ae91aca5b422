package handler_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/jmathtech/jamilcleaningapp-sub000/internal/config"
	"github.com/jmathtech/jamilcleaningapp-sub000/internal/handler"
	"github.com/jmathtech/jamilcleaningapp-sub000/internal/model"
	"github.com/jmathtech/jamilcleaningapp-sub000/internal/repository"
)

type stubBookingPayments struct {
	booking model.Booking
	err     error

	updatedID     uint64
	updatedStatus string
}

func (s *stubBookingPayments) GetForCustomer(_ context.Context, _, _ uint64) (model.Booking, error) {
	return s.booking, s.err
}

func (s *stubBookingPayments) UpdateStatus(_ context.Context, id uint64, status string) (model.Booking, error) {
	s.updatedID, s.updatedStatus = id, status
	b := s.booking
	b.ID = id
	b.Status = status
	return b, s.err
}

func TestWebhookRejectsBadSignature(t *testing.T) {
	cfg := config.Config{JWTSecret: "test-secret", StripeWebhookSecret: "whsec_test"}
	h := handler.NewPaymentHandler(cfg, &stubBookingPayments{}, &stubPublisher{})

	c, rec := jsonCtx(http.MethodPost, "/v1/payments/webhook", `{"type":"payment_intent.succeeded"}`)
	c.Request().Header.Set("Stripe-Signature", "t=1,v1=deadbeef")
	if err := h.Webhook(c); err != nil {
		t.Fatalf("Webhook: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for a bad signature, got %d", rec.Code)
	}
}

func TestCreateIntentUnconfigured(t *testing.T) {
	h := handler.NewPaymentHandler(config.Config{}, &stubBookingPayments{}, &stubPublisher{})

	c, rec := jsonCtx(http.MethodPost, "/v1/payments/intent", `{"booking_id":5}`)
	asCustomer(c, 7, "a@b.com")
	if err := h.CreateIntent(c); err != nil {
		t.Fatalf("CreateIntent: %v", err)
	}
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("expected 503 without a Stripe key, got %d", rec.Code)
	}
}

func TestCreateIntentForeignBooking(t *testing.T) {
	cfg := config.Config{StripeSecretKey: "sk_test_x"}
	h := handler.NewPaymentHandler(cfg, &stubBookingPayments{err: repository.ErrForbidden}, &stubPublisher{})

	c, rec := jsonCtx(http.MethodPost, "/v1/payments/intent", `{"booking_id":5}`)
	asCustomer(c, 8, "other@b.com")
	if err := h.CreateIntent(c); err != nil {
		t.Fatalf("CreateIntent: %v", err)
	}
	if rec.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", rec.Code)
	}
}

func TestCreateIntentNoPayableTotal(t *testing.T) {
	cfg := config.Config{StripeSecretKey: "sk_test_x"}
	store := &stubBookingPayments{booking: model.Booking{ID: 5, TotalPriceCents: 0}}
	h := handler.NewPaymentHandler(cfg, store, &stubPublisher{})

	c, rec := jsonCtx(http.MethodPost, "/v1/payments/intent", `{"booking_id":5}`)
	asCustomer(c, 7, "a@b.com")
	if err := h.CreateIntent(c); err != nil {
		t.Fatalf("CreateIntent: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for a zero total, got %d", rec.Code)
	}
}
