package handler

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"

	"github.com/iliyamo/car-service-booking/internal/metrics"
	"github.com/iliyamo/car-service-booking/internal/model"
	"github.com/iliyamo/car-service-booking/internal/repository"
	queue_publisher "github.com/iliyamo/car-service-booking/internal/service"
)

// AdminHandler serves the admin dashboard endpoints: unscoped booking
// listings and stats, the Confirmed/Completed transitions, and the
// Excel export. JWT authentication and the ADMIN role are enforced by
// middleware.
type AdminHandler struct {
	Bookings *repository.BookingRepo
	Logger   zerolog.Logger
}

func NewAdminHandler(bookings *repository.BookingRepo, logger zerolog.Logger) *AdminHandler {
	if bookings == nil {
		panic("nil repository passed to NewAdminHandler")
	}
	return &AdminHandler{Bookings: bookings, Logger: logger}
}

// ListBookings handles GET /api/admin/bookings: every booking from
// every customer, with an optional ?status= filter.
func (h *AdminHandler) ListBookings(c echo.Context) error {
	filter, ok := statusFilterFrom(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown status filter"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	bookings, err := h.Bookings.ListAll(ctx, filter)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, toBookingResps(bookings))
}

// GetStats handles GET /api/admin/bookings/stats over all bookings,
// computed from the same snapshot a listing request would return.
func (h *AdminHandler) GetStats(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	bookings, err := h.Bookings.ListAll(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, model.ComputeStats(bookings))
}

type statusUpdateReq struct {
	Status string `json:"status"`
}

// UpdateStatus handles PUT /api/admin/bookings/:id/status with body
// {"status": "Confirmed"|"Completed"}. Admins may only move Pending to
// Confirmed and Confirmed to Completed; skipping a step or touching a
// terminal booking is rejected with 400, and Cancelled is not an admin
// target at all (403).
func (h *AdminHandler) UpdateStatus(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	bookingID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || bookingID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}

	var req statusUpdateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	target, ok := model.ParseStatus(req.Status)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown status"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	prev, err := h.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		return transitionError(c, err)
	}
	b, err := h.Bookings.TransitionStatus(ctx, bookingID, target, userID, currentRole(c))
	if err != nil {
		metrics.BookingTransitionFailures.WithLabelValues(failureReason(err)).Inc()
		return transitionError(c, err)
	}

	metrics.BookingTransitions.WithLabelValues(string(target)).Inc()
	ev := queue_publisher.NewBookingStatusEvent(b, prev.Status)
	go func() {
		if err := queue_publisher.PublishBookingStatus(context.Background(), ev); err != nil {
			h.Logger.Warn().Err(err).Uint64("booking_id", b.ID).Msg("publish status event failed")
		}
	}()
	h.Logger.Info().Uint64("booking_id", b.ID).
		Str("from", string(prev.Status)).Str("to", string(target)).
		Msg("booking status updated")

	return c.JSON(http.StatusOK, toBookingResp(b))
}

// exportHeaders is the column layout of the export sheet.
var exportHeaders = []string{
	"ID", "Customer", "Mobile", "Service", "Vehicle Type", "Vehicle Model",
	"Date", "Time", "Status", "Created At",
}

// Export handles GET /api/admin/bookings/export and streams the full
// booking list as an .xlsx workbook.
func (h *AdminHandler) Export(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 15*time.Second)
	defer cancel()

	bookings, err := h.Bookings.ListAll(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Bookings"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "export failed"})
	}
	f.SetActiveSheet(index)
	_ = f.DeleteSheet("Sheet1")

	for i, head := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, head)
	}
	headerStyle, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	last, _ := excelize.CoordinatesToCellName(len(exportHeaders), 1)
	_ = f.SetCellStyle(sheet, "A1", last, headerStyle)

	for row, b := range bookings {
		values := []any{
			b.ID, b.OwnerUsername, b.MobileNumber, b.ServiceType, b.VehicleType,
			b.VehicleModel, b.Date.Format(model.DateLayout), b.TimeSlot,
			string(b.Status), b.CreatedAt.UTC().Format(time.RFC3339),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}
	_ = f.SetColWidth(sheet, "A", "J", 20)

	filename := fmt.Sprintf("bookings_%s.xlsx", time.Now().UTC().Format("2006-01-02"))
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))
	c.Response().Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Response().WriteHeader(http.StatusOK)

	if err := f.Write(c.Response()); err != nil {
		h.Logger.Error().Err(err).Msg("write export failed")
		return err
	}
	return nil
}
