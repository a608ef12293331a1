package router // router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/car-service-booking/internal/handler"    // admin handlers
	"github.com/iliyamo/car-service-booking/internal/middleware" // JWT + role middlewares
	"github.com/iliyamo/car-service-booking/internal/model"
)

// RegisterAdmin registers ADMIN-scoped endpoints under /api/admin.
// All routes require a valid JWT and ADMIN role.
func RegisterAdmin(e *echo.Echo, h *handler.AdminHandler, jwtSecret string) {
	// Attach middlewares at group construction time for clarity.
	g := e.Group(
		"/api/admin",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleAdmin),
	)

	g.GET("/bookings", h.ListBookings)
	g.GET("/bookings/stats", h.GetStats)
	g.GET("/bookings/export", h.Export)
	g.PUT("/bookings/:id/status", h.UpdateStatus)
}
