// Package router defines how HTTP routes are registered for the
// console API.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/DanielJKrikorian/admin-bremembered-sub001/internal/handler"
	"github.com/DanielJKrikorian/admin-bremembered-sub001/internal/middleware"
)

// RegisterRoutes registers routes that require no authentication: the
// health check and the token-resolved invoice view backing the
// couple-facing payment page.
func RegisterRoutes(e *echo.Echo, inv *handler.InvoiceHandler) {
	e.GET("/healthz", handler.Health)
	// The payment token in the URL is the only credential on this route.
	e.GET("/v1/pay/:token", inv.GetByToken)
}

// RegisterAuth registers staff auth routes.  Unauthenticated operations
// live under /v1/auth; /v1/me sits behind JWTAuth.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	// Registration creates staff accounts, so only admins may call it.
	g.POST("/register", a.Register,
		middleware.JWTAuth(jwtSecret), middleware.RequireRole("ADMIN"))
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1", middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)
}

// RegisterConsole registers the staff-facing operations endpoints under
// /v1.  All routes require a valid JWT and an ADMIN or STAFF role; the
// payment-creation route additionally passes through the rate limiter,
// and catalog/calendar reads pass through the response cache.
func RegisterConsole(
	e *echo.Echo,
	jwtSecret string,
	bookings *handler.BookingHandler,
	invoices *handler.InvoiceHandler,
	payments *handler.PaymentHandler,
	events *handler.EventHandler,
	packages *handler.PackageHandler,
	rateLimit echo.MiddlewareFunc,
	cache echo.MiddlewareFunc,
) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("ADMIN", "STAFF"),
	)

	// ---- Bookings ----
	g.POST("/bookings", bookings.Create)
	g.GET("/bookings", bookings.List)
	g.GET("/bookings/:id", bookings.Get)
	g.PATCH("/bookings/:id/status", bookings.UpdateStatus)

	// ---- Invoices ----
	g.POST("/invoices", invoices.Create)
	g.GET("/invoices/:id", invoices.Get)
	g.POST("/invoices/:id/send", invoices.Send)
	g.GET("/invoices/:id/share-link", invoices.ShareLink)
	g.GET("/invoices/:id/ledger", invoices.Ledger)
	g.GET("/invoices/:id/payments", payments.ListByInvoice)

	// ---- Payments ----
	// Every request here becomes a gateway charge attempt.
	g.POST("/payments", payments.Create, rateLimit)

	// ---- Calendar events ----
	g.GET("/events", events.ListByVendor, cache)
	g.PATCH("/events/:id", events.Reschedule)
	g.DELETE("/events/:id", events.Delete)

	// ---- Package catalog ----
	g.GET("/packages", packages.List, cache)
	g.GET("/packages/:id", packages.Get, cache)
}
