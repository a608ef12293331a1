package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/car-service-booking/internal/model"
)

// Catalog handles GET /api/catalog. It exposes the closed catalogs the
// booking form is built from so the clients never hard-code them. The
// route sits behind the response cache; the payload only changes on
// deploy.
func Catalog(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"serviceTypes": model.ServiceTypes,
		"vehicleTypes": model.VehicleTypes,
		"timeSlots":    model.TimeSlots,
	})
}
