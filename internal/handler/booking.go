package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/jmathtech/jamilcleaningapp-sub000/internal/config"
	"github.com/jmathtech/jamilcleaningapp-sub000/internal/metrics"
	"github.com/jmathtech/jamilcleaningapp-sub000/internal/middleware"
	"github.com/jmathtech/jamilcleaningapp-sub000/internal/model"
	"github.com/jmathtech/jamilcleaningapp-sub000/internal/repository"
	"github.com/jmathtech/jamilcleaningapp-sub000/internal/utils"
)

// maxBookingHours caps a single visit; longer jobs are booked as
// multiple visits.
const maxBookingHours = 12

// BookingStore is the slice of the booking repository customer endpoints
// use.
type BookingStore interface {
	Create(ctx context.Context, b *model.Booking) (uint64, error)
	LatestByCustomer(ctx context.Context, customerID uint64) (model.Booking, error)
	ListByCustomer(ctx context.Context, customerID uint64) ([]model.Booking, error)
	Reschedule(ctx context.Context, id, customerID uint64, date, tm string, hours int, notes string) error
	Delete(ctx context.Context, id, customerID uint64) error
}

// BookingHandler serves the customer booking endpoints.
type BookingHandler struct {
	Cfg      config.Config
	Bookings BookingStore
}

func NewBookingHandler(cfg config.Config, store BookingStore) *BookingHandler {
	return &BookingHandler{Cfg: cfg, Bookings: store}
}

type createBookingReq struct {
	ServiceType     string `json:"service_type"`
	Hours           int    `json:"hours"`
	Notes           string `json:"notes"`
	Date            string `json:"date"`
	Time            string `json:"time"`
	HasPets         bool   `json:"has_pets"`
	TotalPriceCents int64  `json:"total_price_cents"`
}

type rescheduleReq struct {
	Date  string `json:"date"`
	Time  string `json:"time"`
	Hours int    `json:"hours"`
	Notes string `json:"notes"`
}

func (req createBookingReq) validate() string {
	if req.ServiceType == "" {
		return "service_type required"
	}
	if req.Hours < 1 || req.Hours > maxBookingHours {
		return "hours must be between 1 and 12"
	}
	if !utils.ValidDate(req.Date) {
		return "date must be YYYY-MM-DD"
	}
	if !utils.ValidClock(req.Time) {
		return "time must be HH:MM"
	}
	if req.TotalPriceCents < 0 {
		return "total_price_cents must be non-negative"
	}
	return ""
}

func bookingIDParam(c echo.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	return id, err == nil && id > 0
}

// Create inserts a pending booking for the caller and returns a 30-day
// token embedding the booking id.
func (h *BookingHandler) Create(c echo.Context) error {
	customerID, ok := middleware.CallerID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createBookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	b := model.Booking{
		CustomerID:      customerID,
		ServiceType:     req.ServiceType,
		Email:           middleware.CallerEmail(c),
		Hours:           req.Hours,
		Notes:           req.Notes,
		Date:            req.Date,
		Time:            req.Time,
		HasPets:         req.HasPets,
		TotalPriceCents: req.TotalPriceCents,
	}
	id, err := h.Bookings.Create(ctx, &b)
	if err != nil {
		c.Logger().Errorf("booking create: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create booking failed"})
	}
	metrics.IncBookingCreated()

	tok, err := utils.NewBookingToken(h.Cfg.JWTSecret, customerID, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue token failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"booking": b, "booking_token": tok})
}

// Latest returns the caller's newest booking.
func (h *BookingHandler) Latest(c echo.Context) error {
	customerID, ok := middleware.CallerID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	b, err := h.Bookings.LatestByCustomer(ctx, customerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "no bookings"})
		}
		c.Logger().Errorf("booking latest: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"booking": b})
}

// List returns every booking for the caller, newest first.
func (h *BookingHandler) List(c echo.Context) error {
	customerID, ok := middleware.CallerID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	list, err := h.Bookings.ListByCustomer(ctx, customerID)
	if err != nil {
		c.Logger().Errorf("booking list: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"bookings": list})
}

// Reschedule updates date/time/hours/notes on a booking the caller owns.
// Concurrent reschedules resolve last-write-wins.
func (h *BookingHandler) Reschedule(c echo.Context) error {
	customerID, ok := middleware.CallerID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := bookingIDParam(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	var req rescheduleReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if !utils.ValidDate(req.Date) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
	}
	if !utils.ValidClock(req.Time) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "time must be HH:MM"})
	}
	if req.Hours < 1 || req.Hours > maxBookingHours {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "hours must be between 1 and 12"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Bookings.Reschedule(ctx, id, customerID, req.Date, req.Time, req.Hours, req.Notes); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		case errors.Is(err, repository.ErrForbidden):
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		}
		c.Logger().Errorf("booking reschedule: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "booking updated"})
}

// Cancel deletes a booking the caller owns. A repeat cancel returns 404; a
// booking owned by someone else is never deleted.
func (h *BookingHandler) Cancel(c echo.Context) error {
	customerID, ok := middleware.CallerID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := bookingIDParam(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Bookings.Delete(ctx, id, customerID); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		case errors.Is(err, repository.ErrForbidden):
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		}
		c.Logger().Errorf("booking cancel: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	metrics.IncBookingCanceled()
	return c.JSON(http.StatusOK, echo.Map{"message": "booking canceled"})
}
