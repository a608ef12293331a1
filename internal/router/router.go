package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/iliyamo/car-service-booking/internal/handler" // import the handlers that implement business logic
)

// RegisterPublic registers routes that do not require authentication:
// the health check used by load balancers, the Prometheus metrics
// endpoint, and the booking-form catalog. The catalog handler is
// wrapped by whatever middleware (response cache) the caller attaches
// to the passed group.
func RegisterPublic(e *echo.Echo, cached ...echo.MiddlewareFunc) {
	e.GET("/healthz", handler.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/api/catalog", handler.Catalog, cached...)
}

// RegisterAuth registers the authentication routes for both the
// customer pages (/api/auth) and the admin pages (/api/admin/auth).
// Token issuing endpoints are unauthenticated; /api/me works for any
// role, so it sits behind the access-token middleware only.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, authed echo.MiddlewareFunc) {
	g := e.Group("/api/auth")
	g.POST("/signup", a.Signup)
	g.POST("/signin", a.Signin)
	g.POST("/refresh", a.Refresh)
	g.POST("/logout", a.Logout)

	ag := e.Group("/api/admin/auth")
	ag.POST("/signup", a.AdminSignup)
	ag.POST("/signin", a.AdminSignin)
	ag.POST("/refresh", a.Refresh)
	ag.POST("/logout", a.Logout)

	e.GET("/api/me", a.Me, authed)
}
