package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/jmathtech/jamilcleaningapp-sub000/internal/middleware"
	"github.com/jmathtech/jamilcleaningapp-sub000/internal/model"
	"github.com/jmathtech/jamilcleaningapp-sub000/internal/repository"
)

// ReviewStore is the slice of the booking repository the review endpoints
// use.
type ReviewStore interface {
	AttachReview(ctx context.Context, id, customerID uint64, rating int, comment string) error
	ListRecentReviews(ctx context.Context, limit int) ([]model.Review, error)
}

type ReviewHandler struct {
	Reviews ReviewStore
}

func NewReviewHandler(store ReviewStore) *ReviewHandler { return &ReviewHandler{Reviews: store} }

type submitReviewReq struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// Submit attaches a rating and comment to a completed booking the caller
// owns.
func (h *ReviewHandler) Submit(c echo.Context) error {
	customerID, ok := middleware.CallerID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := bookingIDParam(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	var req submitReviewReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Rating < 1 || req.Rating > 5 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "rating must be between 1 and 5"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Reviews.AttachReview(ctx, id, customerID, req.Rating, req.Comment); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		case errors.Is(err, repository.ErrForbidden):
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		case errors.Is(err, repository.ErrConflict):
			return c.JSON(http.StatusConflict, echo.Map{"error": "booking not completed"})
		}
		c.Logger().Errorf("review submit: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save review failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "review saved"})
}

// ListRecent returns the newest reviews for the public reviews page.
// Responses are cached by the Redis response cache when enabled.
func (h *ReviewHandler) ListRecent(c echo.Context) error {
	limit := 20
	if s := c.QueryParam("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			limit = n
		}
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	list, err := h.Reviews.ListRecentReviews(ctx, limit)
	if err != nil {
		c.Logger().Errorf("review list: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"reviews": list})
}
