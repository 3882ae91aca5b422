// Package middleware contains reusable HTTP middleware for the API.
package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/jmathtech/jamilcleaningapp-sub000/internal/utils"
)

// JWTAuth validates a Bearer access token and injects the caller's
// identity into the request context: "customer_id" (uint64), "email" and
// "role". Every guarded route goes through this single middleware instead
// of re-checking tokens per handler. Expired tokens are discriminated
// with jwt.ErrTokenExpired rather than message matching.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			claims, err := utils.ParseToken(secret, raw)
			if err != nil {
				if errors.Is(err, jwt.ErrTokenExpired) {
					return c.JSON(http.StatusUnauthorized, echo.Map{"error": "token expired"})
				}
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}
			// Emailed admin link tokens must go through /auth/verify first.
			if p, _ := claims["purpose"].(string); p != "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}

			id, ok := utils.SubjectID(claims)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid claims"})
			}
			role, _ := claims["role"].(string)
			email, _ := claims["email"].(string)

			c.Set("customer_id", id)
			c.Set("email", email)
			c.Set("role", role)
			return next(c)
		}
	}
}

// CallerID returns the authenticated principal id stored by JWTAuth.
func CallerID(c echo.Context) (uint64, bool) {
	id, ok := c.Get("customer_id").(uint64)
	return id, ok
}

// CallerEmail returns the authenticated email stored by JWTAuth.
func CallerEmail(c echo.Context) string {
	s, _ := c.Get("email").(string)
	return s
}
