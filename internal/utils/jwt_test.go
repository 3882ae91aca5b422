package utils_test

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/jmathtech/jamilcleaningapp-sub000/internal/model"
	"github.com/jmathtech/jamilcleaningapp-sub000/internal/utils"
)

const secret = "test-secret"

// TestCustomerTokenRoundTrip verifies that a customer session token
// carries the subject, email, role and contact claims.
func TestCustomerTokenRoundTrip(t *testing.T) {
	cust := model.Customer{
		ID:        42,
		FirstName: "A",
		LastName:  "B",
		Email:     "a@b.com",
		Phone:     "804-555-1212",
		Address:   "123 Main",
	}
	tok, err := utils.NewCustomerToken(secret, cust)
	if err != nil {
		t.Fatalf("NewCustomerToken: %v", err)
	}
	if until := time.Until(tok.Exp); until < 6*24*time.Hour || until > 8*24*time.Hour {
		t.Errorf("expected ~7 day expiry, got %v", until)
	}

	claims, err := utils.ParseToken(secret, tok.Token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	id, ok := utils.SubjectID(claims)
	if !ok || id != 42 {
		t.Errorf("expected subject 42, got %d (ok=%v)", id, ok)
	}
	if claims["email"] != "a@b.com" {
		t.Errorf("expected email claim, got %v", claims["email"])
	}
	if claims["role"] != "customer" {
		t.Errorf("expected customer role, got %v", claims["role"])
	}
	if claims["phone"] != "804-555-1212" {
		t.Errorf("expected phone claim, got %v", claims["phone"])
	}
}

// TestExpiredTokenIsTyped verifies that an expired token surfaces as
// jwt.ErrTokenExpired rather than requiring message matching.
func TestExpiredTokenIsTyped(t *testing.T) {
	claims := jwt.MapClaims{
		"sub": 1,
		"exp": time.Now().UTC().Add(-time.Hour).Unix(),
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	_, err = utils.ParseToken(secret, raw)
	if !errors.Is(err, jwt.ErrTokenExpired) {
		t.Errorf("expected jwt.ErrTokenExpired, got %v", err)
	}
}

// TestWrongSecretRejected verifies signature validation.
func TestWrongSecretRejected(t *testing.T) {
	tok, err := utils.NewCustomerToken(secret, model.Customer{ID: 1})
	if err != nil {
		t.Fatalf("NewCustomerToken: %v", err)
	}
	if _, err := utils.ParseToken("other-secret", tok.Token); err == nil {
		t.Error("expected error for wrong secret, got nil")
	}
}

// TestAdminLinkTokenPurpose verifies that only emailed link tokens pass
// ParseAdminLinkToken and that session tokens are rejected.
func TestAdminLinkTokenPurpose(t *testing.T) {
	a := model.Admin{ID: 3, Email: "admin@b.com"}

	link, err := utils.NewAdminLinkToken(secret, a)
	if err != nil {
		t.Fatalf("NewAdminLinkToken: %v", err)
	}
	if _, err := utils.ParseAdminLinkToken(secret, link.Token); err != nil {
		t.Errorf("link token rejected: %v", err)
	}

	session, err := utils.NewAdminSessionToken(secret, a)
	if err != nil {
		t.Fatalf("NewAdminSessionToken: %v", err)
	}
	if _, err := utils.ParseAdminLinkToken(secret, session.Token); !errors.Is(err, utils.ErrWrongPurpose) {
		t.Errorf("expected ErrWrongPurpose for session token, got %v", err)
	}
}

// TestBookingTokenCarriesBookingID verifies the 30-day receipt token
// embeds the booking id.
func TestBookingTokenCarriesBookingID(t *testing.T) {
	tok, err := utils.NewBookingToken(secret, 7, 99)
	if err != nil {
		t.Fatalf("NewBookingToken: %v", err)
	}
	claims, err := utils.ParseToken(secret, tok.Token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if id, ok := utils.ClaimUint64(claims, "booking_id"); !ok || id != 99 {
		t.Errorf("expected booking_id 99, got %d (ok=%v)", id, ok)
	}
	if until := time.Until(tok.Exp); until < 29*24*time.Hour {
		t.Errorf("expected ~30 day expiry, got %v", until)
	}
}
