package handler_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/jmathtech/jamilcleaningapp-sub000/internal/handler"
	"github.com/jmathtech/jamilcleaningapp-sub000/internal/model"
	"github.com/jmathtech/jamilcleaningapp-sub000/internal/repository"
)

func TestSubmitReviewRatingBounds(t *testing.T) {
	for _, body := range []string{`{"rating":0}`, `{"rating":6}`} {
		store := &stubReviewStore{}
		h := handler.NewReviewHandler(store)

		c, rec := jsonCtx(http.MethodPost, "/v1/bookings/5/review", body)
		asCustomer(c, 7, "a@b.com")
		c.SetParamNames("id")
		c.SetParamValues("5")
		if err := h.Submit(c); err != nil {
			t.Fatalf("Submit: %v", err)
		}
		if rec.Code != http.StatusBadRequest {
			t.Errorf("body %s: expected 400, got %d", body, rec.Code)
		}
		if store.calls != 0 {
			t.Errorf("body %s: store must not be called", body)
		}
	}
}

func TestSubmitReviewNotCompleted(t *testing.T) {
	store := &stubReviewStore{attachErr: repository.ErrConflict}
	h := handler.NewReviewHandler(store)

	c, rec := jsonCtx(http.MethodPost, "/v1/bookings/5/review", `{"rating":5,"comment":"spotless"}`)
	asCustomer(c, 7, "a@b.com")
	c.SetParamNames("id")
	c.SetParamValues("5")
	if err := h.Submit(c); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Errorf("expected 409 for a booking not yet completed, got %d", rec.Code)
	}
}

func TestSubmitReviewSaved(t *testing.T) {
	store := &stubReviewStore{}
	h := handler.NewReviewHandler(store)

	c, rec := jsonCtx(http.MethodPost, "/v1/bookings/5/review", `{"rating":4,"comment":"good"}`)
	asCustomer(c, 7, "a@b.com")
	c.SetParamNames("id")
	c.SetParamValues("5")
	if err := h.Submit(c); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	if store.gotID != 5 || store.gotRating != 4 {
		t.Errorf("store got id=%d rating=%d", store.gotID, store.gotRating)
	}
}

func TestListRecentReviews(t *testing.T) {
	store := &stubReviewStore{reviews: []model.Review{
		{BookingID: 5, ServiceType: "deep", Rating: 5, Comment: "spotless", FirstName: "A"},
	}}
	h := handler.NewReviewHandler(store)

	c, rec := jsonCtx(http.MethodGet, "/v1/reviews", "")
	if err := h.ListRecent(c); err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "spotless") {
		t.Errorf("expected review in body, got %s", rec.Body.String())
	}
}
