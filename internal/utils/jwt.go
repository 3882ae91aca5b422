// Package utils provides token issuing, password hashing and input
// validation helpers.
package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/jmathtech/jamilcleaningapp-sub000/internal/model"
)

// Token lifetimes per issuing flow. The customer session lives a week, the
// emailed admin link two hours, the admin session it exchanges into thirty
// minutes, and the booking receipt token thirty days.
const (
	CustomerTokenTTL     = 7 * 24 * time.Hour
	AdminLinkTokenTTL    = 2 * time.Hour
	AdminSessionTokenTTL = 30 * time.Minute
	BookingTokenTTL      = 30 * 24 * time.Hour
)

// purposeAdminLink marks the emailed verification token so it cannot be
// replayed as an API session token.
const purposeAdminLink = "admin_login_link"

// ErrWrongPurpose is returned when a token is presented to a flow it was
// not issued for.
var ErrWrongPurpose = errors.New("token issued for a different purpose")

// SignedToken pairs a serialized JWT with its expiry.
type SignedToken struct {
	Token string    `json:"token"`
	Exp   time.Time `json:"expires"`
}

func sign(secret string, claims jwt.MapClaims, ttl time.Duration) (SignedToken, error) {
	exp := time.Now().UTC().Add(ttl)
	claims["exp"] = exp.Unix()
	claims["iat"] = time.Now().UTC().Unix()
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return SignedToken{}, err
	}
	return SignedToken{Token: signed, Exp: exp}, nil
}

// NewCustomerToken issues the 7-day session token handed out at signup and
// login. It carries the customer's contact fields so pages can render
// them without a round-trip.
func NewCustomerToken(secret string, c model.Customer) (SignedToken, error) {
	return sign(secret, jwt.MapClaims{
		"sub":        c.ID,
		"email":      c.Email,
		"role":       "customer",
		"first_name": c.FirstName,
		"last_name":  c.LastName,
		"phone":      c.Phone,
		"address":    c.Address,
	}, CustomerTokenTTL)
}

// NewAdminLinkToken issues the 2-hour token embedded in the emailed admin
// verification link.
func NewAdminLinkToken(secret string, a model.Admin) (SignedToken, error) {
	return sign(secret, jwt.MapClaims{
		"sub":     a.ID,
		"email":   a.Email,
		"role":    "admin",
		"purpose": purposeAdminLink,
	}, AdminLinkTokenTTL)
}

// NewAdminSessionToken issues the 30-minute admin session token returned
// by the verify endpoint.
func NewAdminSessionToken(secret string, a model.Admin) (SignedToken, error) {
	return sign(secret, jwt.MapClaims{
		"sub":   a.ID,
		"email": a.Email,
		"role":  "admin",
	}, AdminSessionTokenTTL)
}

// NewBookingToken issues the 30-day token returned after a booking is
// saved; it embeds the booking id so the client can recover it later.
func NewBookingToken(secret string, customerID, bookingID uint64) (SignedToken, error) {
	return sign(secret, jwt.MapClaims{
		"sub":        customerID,
		"role":       "customer",
		"booking_id": bookingID,
	}, BookingTokenTTL)
}

// ParseToken verifies signature and expiry and returns the claims. Expiry
// surfaces as jwt.ErrTokenExpired (wrapped), so callers discriminate with
// errors.Is instead of matching message strings.
func ParseToken(secret, raw string) (jwt.MapClaims, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok || !tok.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

// ParseAdminLinkToken validates an emailed verification token and returns
// its claims. Tokens without the link purpose are rejected.
func ParseAdminLinkToken(secret, raw string) (jwt.MapClaims, error) {
	claims, err := ParseToken(secret, raw)
	if err != nil {
		return nil, err
	}
	if p, _ := claims["purpose"].(string); p != purposeAdminLink {
		return nil, ErrWrongPurpose
	}
	return claims, nil
}

// SubjectID extracts the numeric subject claim. JWT numbers decode as
// float64; string subjects from older tokens are not supported.
func SubjectID(claims jwt.MapClaims) (uint64, bool) {
	if f, ok := claims["sub"].(float64); ok && f >= 0 {
		return uint64(f), true
	}
	return 0, false
}

// ClaimUint64 extracts a numeric claim by name.
func ClaimUint64(claims jwt.MapClaims, name string) (uint64, bool) {
	if f, ok := claims[name].(float64); ok && f >= 0 {
		return uint64(f), true
	}
	return 0, false
}
