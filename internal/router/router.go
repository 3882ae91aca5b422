// Package router wires HTTP routes to handlers and middleware.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jmathtech/jamilcleaningapp-sub000/internal/handler"
	"github.com/jmathtech/jamilcleaningapp-sub000/internal/middleware"
)

// RegisterRoutes registers the unauthenticated operational endpoints.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}

// RegisterAuth registers the authentication endpoints under /v1/auth.
// The rate limiter wraps the whole group to slow credential stuffing and
// email-link abuse.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, limiter echo.MiddlewareFunc) {
	g := e.Group("/v1/auth")
	if limiter != nil {
		g.Use(limiter)
	}
	g.POST("/signup", a.Signup)
	g.POST("/login", a.Login)
	g.POST("/signup-admin", a.SignupAdmin)
	g.POST("/login-admin", a.LoginAdmin)
	g.GET("/verify", a.Verify)
	g.GET("/google/login", a.GoogleLogin)
	g.GET("/google/callback", a.GoogleCallback)
}

// RegisterCustomer registers the JWT-guarded customer endpoints. Both
// customers and admins may read; booking mutations additionally verify
// row ownership in the repository.
func RegisterCustomer(e *echo.Echo, jwtSecret string,
	b *handler.BookingHandler, p *handler.PaymentHandler,
	r *handler.ReviewHandler, pr *handler.ProfileHandler,
	ch *handler.ChatHandler) {

	g := e.Group("/v1")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole("customer", "admin"))

	g.POST("/bookings", b.Create)
	g.GET("/bookings", b.List)
	g.GET("/bookings/latest", b.Latest)
	g.PUT("/bookings/:id", b.Reschedule)
	g.DELETE("/bookings/:id", b.Cancel)
	g.POST("/bookings/:id/review", r.Submit)

	g.POST("/payments/intent", p.CreateIntent)

	g.GET("/profile", pr.Get)
	g.PUT("/profile", pr.Update)

	g.POST("/chat", ch.Ask)
}

// RegisterAdmin registers the admin dashboard endpoints. Every route
// requires a valid JWT carrying the admin role.
func RegisterAdmin(e *echo.Echo, jwtSecret string, a *handler.AdminBookingHandler) {
	g := e.Group("/v1/admin")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole("admin"))

	g.GET("/bookings", a.ListAll)
	g.PUT("/bookings/:id/status", a.UpdateStatus)
}

// RegisterPublic registers unauthenticated read endpoints plus the Stripe
// webhook, which authenticates by signature instead of JWT. The cache
// middleware, when non-nil, caches the reviews page.
func RegisterPublic(e *echo.Echo, r *handler.ReviewHandler, p *handler.PaymentHandler, cache echo.MiddlewareFunc) {
	if cache != nil {
		e.GET("/v1/reviews", r.ListRecent, cache)
	} else {
		e.GET("/v1/reviews", r.ListRecent)
	}
	e.POST("/v1/payments/webhook", p.Webhook)
}
