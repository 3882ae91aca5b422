package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	stripe "github.com/stripe/stripe-go/v80"
	"github.com/stripe/stripe-go/v80/paymentintent"
	"github.com/stripe/stripe-go/v80/webhook"

	"github.com/jmathtech/jamilcleaningapp-sub000/internal/config"
	"github.com/jmathtech/jamilcleaningapp-sub000/internal/metrics"
	"github.com/jmathtech/jamilcleaningapp-sub000/internal/middleware"
	"github.com/jmathtech/jamilcleaningapp-sub000/internal/model"
	"github.com/jmathtech/jamilcleaningapp-sub000/internal/queue"
	"github.com/jmathtech/jamilcleaningapp-sub000/internal/repository"
)

// PaymentBookingStore is the slice of the booking repository the payment
// flow uses.
type PaymentBookingStore interface {
	GetForCustomer(ctx context.Context, id, customerID uint64) (model.Booking, error)
	UpdateStatus(ctx context.Context, id uint64, status string) (model.Booking, error)
}

// PaymentHandler creates Stripe PaymentIntents and consumes the webhook.
type PaymentHandler struct {
	Cfg       config.Config
	Bookings  PaymentBookingStore
	Publisher EventPublisher
}

func NewPaymentHandler(cfg config.Config, store PaymentBookingStore, pub EventPublisher) *PaymentHandler {
	stripe.Key = cfg.StripeSecretKey
	return &PaymentHandler{Cfg: cfg, Bookings: store, Publisher: pub}
}

type createIntentReq struct {
	BookingID uint64 `json:"booking_id"`
}

// CreateIntent creates a PaymentIntent for the caller's booking total and
// returns the client secret for the payment-element widget. Confirmation
// is delegated to Stripe; the webhook closes the loop.
func (h *PaymentHandler) CreateIntent(c echo.Context) error {
	if h.Cfg.StripeSecretKey == "" {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "payments not configured"})
	}
	customerID, ok := middleware.CallerID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createIntentReq
	if err := c.Bind(&req); err != nil || req.BookingID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "booking_id required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	b, err := h.Bookings.GetForCustomer(ctx, req.BookingID, customerID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		case errors.Is(err, repository.ErrForbidden):
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		}
		c.Logger().Errorf("payment intent: load booking: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if b.TotalPriceCents <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "booking has no payable total"})
	}

	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(b.TotalPriceCents),
		Currency:           stripe.String(string(stripe.CurrencyUSD)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	if b.Email != "" {
		params.ReceiptEmail = stripe.String(b.Email)
	}
	params.Metadata = map[string]string{
		"booking_id":     strconv.FormatUint(b.ID, 10),
		"customer_email": b.Email,
	}

	pi, err := paymentintent.New(params)
	if err != nil {
		c.Logger().Errorf("payment intent: stripe: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create payment intent failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"client_secret": pi.ClientSecret})
}

// Webhook verifies the Stripe signature and, on payment_intent.succeeded,
// marks the metadata booking confirmed and publishes the confirmation
// event. Unhandled event types are acknowledged and ignored.
func (h *PaymentHandler) Webhook(c echo.Context) error {
	const maxBodyBytes = int64(65536)
	c.Request().Body = http.MaxBytesReader(c.Response().Writer, c.Request().Body, maxBodyBytes)
	payload, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return c.NoContent(http.StatusServiceUnavailable)
	}

	event, err := webhook.ConstructEvent(payload, c.Request().Header.Get("Stripe-Signature"), h.Cfg.StripeWebhookSecret)
	if err != nil {
		c.Logger().Warnf("webhook: signature verification failed: %v", err)
		return c.NoContent(http.StatusBadRequest)
	}

	if event.Type == "payment_intent.succeeded" {
		var pi stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
			c.Logger().Errorf("webhook: parse payment intent: %v", err)
			return c.NoContent(http.StatusBadRequest)
		}
		h.handlePaymentSuccess(c, pi)
	}
	return c.JSON(http.StatusOK, echo.Map{"received": true})
}

func (h *PaymentHandler) handlePaymentSuccess(c echo.Context, pi stripe.PaymentIntent) {
	idStr := pi.Metadata["booking_id"]
	if idStr == "" {
		c.Logger().Warn("webhook: payment intent missing booking_id metadata")
		return
	}
	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		c.Logger().Warnf("webhook: bad booking_id metadata %q", idStr)
		return
	}
	metrics.IncPaymentSucceeded()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	b, err := h.Bookings.UpdateStatus(ctx, id, model.StatusConfirmed)
	if err != nil {
		c.Logger().Errorf("webhook: confirm booking %d: %v", id, err)
		return
	}
	if h.Publisher != nil {
		ev := queue.BookingConfirmedEvent{
			BookingID:       b.ID,
			CustomerID:      b.CustomerID,
			Email:           b.Email,
			ServiceType:     b.ServiceType,
			Date:            b.Date,
			Time:            b.Time,
			Hours:           b.Hours,
			TotalPriceCents: b.TotalPriceCents,
			ConfirmedAt:     time.Now().UTC().Format(time.RFC3339),
		}
		if err := h.Publisher.PublishBookingConfirmed(ctx, ev); err != nil {
			c.Logger().Warnf("webhook: publish confirmed event: %v", err)
		}
	}
}
