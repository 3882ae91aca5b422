package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/jmathtech/jamilcleaningapp-sub000/internal/middleware"
	"github.com/jmathtech/jamilcleaningapp-sub000/internal/model"
	"github.com/jmathtech/jamilcleaningapp-sub000/internal/utils"
)

const secret = "test-secret"

func authedServer(t *testing.T) *echo.Echo {
	t.Helper()
	e := echo.New()
	g := e.Group("/v1")
	g.Use(middleware.JWTAuth(secret))
	g.GET("/whoami", func(c echo.Context) error {
		id, ok := middleware.CallerID(c)
		if !ok {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "no caller id"})
		}
		return c.JSON(http.StatusOK, echo.Map{"id": id, "email": middleware.CallerEmail(c)})
	})
	return e
}

func TestJWTAuthMissingHeader(t *testing.T) {
	e := authedServer(t)
	req := httptest.NewRequest(http.MethodGet, "/v1/whoami", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "missing bearer token") {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}

func TestJWTAuthGarbageToken(t *testing.T) {
	e := authedServer(t)
	req := httptest.NewRequest(http.MethodGet, "/v1/whoami", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "invalid token") {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}

func TestJWTAuthRejectsLinkToken(t *testing.T) {
	// Emailed admin link tokens carry a purpose claim and must not pass
	// the session middleware directly.
	link, err := utils.NewAdminLinkToken(secret, model.Admin{ID: 9, Email: "a@b.com"})
	if err != nil {
		t.Fatalf("NewAdminLinkToken: %v", err)
	}

	e := authedServer(t)
	req := httptest.NewRequest(http.MethodGet, "/v1/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+link.Token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for link token, got %d", rec.Code)
	}
}

func TestJWTAuthValidToken(t *testing.T) {
	tok, err := utils.NewCustomerToken(secret, model.Customer{ID: 42, Email: "a@b.com", Role: "customer"})
	if err != nil {
		t.Fatalf("NewCustomerToken: %v", err)
	}

	e := authedServer(t)
	req := httptest.NewRequest(http.MethodGet, "/v1/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+tok.Token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"id":42`) {
		t.Errorf("expected caller id in body, got %s", rec.Body.String())
	}
}
