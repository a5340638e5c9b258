// Package router wires HTTP routes to their handlers and middleware.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/ARYAMAN170/smart-event-booking-backend/internal/handler"
	"github.com/ARYAMAN170/smart-event-booking-backend/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers authentication routes.  Register/login/refresh are
// open; /v1/me requires a valid access token.  Logout works with either a
// refresh token in the body or a bearer token (revoke-all).
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1", middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)
	auth.POST("/logout", a.Logout)
}

// RegisterEvents registers the event catalog routes.  Browsing is public;
// mutations require an admin access token.
func RegisterEvents(e *echo.Echo, h *handler.EventHandler, jwtSecret string) {
	e.GET("/v1/events", h.List)
	e.GET("/v1/events/:id", h.Get)

	admin := e.Group("/v1/events", middleware.JWTAuth(jwtSecret), middleware.RequireAdmin())
	admin.POST("", h.Create)
	admin.PUT("/:id", h.Update)
	admin.DELETE("/:id", h.Delete)
}

// RegisterBookings registers the booking ledger routes.  Every route
// requires authentication; the unfiltered listing additionally requires the
// admin role.
func RegisterBookings(e *echo.Echo, h *handler.BookingHandler, jwtSecret string) {
	auth := e.Group("/v1/bookings", middleware.JWTAuth(jwtSecret))
	auth.POST("", h.Create)
	auth.GET("/my", h.MyBookings)
	auth.PUT("/:id/cancel", h.Cancel)
	auth.GET("", h.ListAll, middleware.RequireAdmin())
}
