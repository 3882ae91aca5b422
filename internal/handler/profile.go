package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/jmathtech/jamilcleaningapp-sub000/internal/middleware"
	"github.com/jmathtech/jamilcleaningapp-sub000/internal/repository"
)

// ProfileStore is the slice of the customer repository the profile
// endpoints use.
type ProfileStore interface {
	CustomerStore
	UpdateProfile(ctx context.Context, id uint64, firstName, lastName, phone, address string) error
}

// ProfileHandler serves the customer profile endpoints.
type ProfileHandler struct {
	Customers ProfileStore
}

func NewProfileHandler(customers ProfileStore) *ProfileHandler {
	return &ProfileHandler{Customers: customers}
}

type updateProfileReq struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
}

// Get returns the caller's customer row.
func (h *ProfileHandler) Get(c echo.Context) error {
	customerID, ok := middleware.CallerID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	cust, err := h.Customers.GetByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "customer not found"})
		}
		c.Logger().Errorf("profile get: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"customer": cust})
}

// Update saves the caller's mutable profile fields.
func (h *ProfileHandler) Update(c echo.Context) error {
	customerID, ok := middleware.CallerID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req updateProfileReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.FirstName == "" || req.LastName == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "first_name and last_name required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Customers.UpdateProfile(ctx, customerID, req.FirstName, req.LastName, req.Phone, req.Address); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "customer not found"})
		}
		c.Logger().Errorf("profile update: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "profile updated"})
}
