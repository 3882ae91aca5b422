package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/jmathtech/jamilcleaningapp-sub000/internal/config"
	"github.com/jmathtech/jamilcleaningapp-sub000/internal/metrics"
	"github.com/jmathtech/jamilcleaningapp-sub000/internal/model"
	"github.com/jmathtech/jamilcleaningapp-sub000/internal/queue"
	"github.com/jmathtech/jamilcleaningapp-sub000/internal/repository"
)

// AdminBookingStore is the slice of the booking repository admin endpoints
// use.
type AdminBookingStore interface {
	ListAll(ctx context.Context) ([]model.Booking, error)
	UpdateStatus(ctx context.Context, id uint64, status string) (model.Booking, error)
}

// EventPublisher publishes booking domain events to the broker.
type EventPublisher interface {
	PublishBookingConfirmed(ctx context.Context, event queue.BookingConfirmedEvent) error
}

// AdminBookingHandler serves the admin dashboard endpoints. Routes are
// guarded by JWTAuth plus RequireRole("admin").
type AdminBookingHandler struct {
	Cfg       config.Config
	Bookings  AdminBookingStore
	Publisher EventPublisher
}

func NewAdminBookingHandler(cfg config.Config, store AdminBookingStore, pub EventPublisher) *AdminBookingHandler {
	return &AdminBookingHandler{Cfg: cfg, Bookings: store, Publisher: pub}
}

type updateStatusReq struct {
	Status string `json:"status"`
}

// ListAll returns every booking, newest first.
func (h *AdminBookingHandler) ListAll(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	list, err := h.Bookings.ListAll(ctx)
	if err != nil {
		c.Logger().Errorf("admin list bookings: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"bookings": list})
}

// UpdateStatus sets a booking's status. The new status must belong to the
// allowed set; a transition to confirmed additionally publishes a
// booking.confirmed event, which downstream consumers turn into the
// customer's confirmation email. Publish failures are logged and do not
// fail the request.
func (h *AdminBookingHandler) UpdateStatus(c echo.Context) error {
	id, ok := bookingIDParam(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	var req updateStatusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if !model.ValidStatus(req.Status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	b, err := h.Bookings.UpdateStatus(ctx, id, req.Status)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		c.Logger().Errorf("admin update status: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	metrics.IncStatusUpdated(req.Status)

	if req.Status == model.StatusConfirmed && h.Publisher != nil {
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
			c.Logger().Warnf("admin update status: publish confirmed event: %v", err)
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"booking": b})
}
