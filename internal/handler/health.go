package handler

import (
    "net/http"

    "github.com/labstack/echo/v4"
)

// Health reports liveness for load balancers and uptime monitors.  It does
// not touch the database or Redis; a 200 here only means the process is up.
func Health(c echo.Context) error {
    return c.String(http.StatusOK, "ok")
}
