package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/car-service-booking/internal/handler"
	"github.com/iliyamo/car-service-booking/internal/middleware"
	"github.com/iliyamo/car-service-booking/internal/model"
)

// RegisterCustomer registers customer-scoped endpoints under /api.
// All routes require a valid JWT and the CUSTOMER role. Customers can
// create bookings, list their own bookings, read their stats rollup
// and cancel a booking they own.
func RegisterCustomer(e *echo.Echo, h *handler.CustomerHandler, jwtSecret string) {
	g := e.Group(
		"/api",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleCustomer),
	)
	g.POST("/bookings", h.CreateBooking)
	g.GET("/bookings", h.ListBookings)
	g.GET("/bookings/stats", h.GetStats)
	// Cancellation is a status transition, not a delete; DELETE matches
	// the verb the web client already uses.
	g.DELETE("/bookings/:id", h.CancelBooking)
}
