package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/iliyamo/car-service-booking/internal/metrics"
	"github.com/iliyamo/car-service-booking/internal/model"
	"github.com/iliyamo/car-service-booking/internal/repository"
	queue_publisher "github.com/iliyamo/car-service-booking/internal/service"
)

// CustomerHandler serves the booking endpoints of the customer
// dashboard. All methods assume JWT authentication and the CUSTOMER
// role have already been enforced by middleware; listings and stats
// are always scoped to the authenticated owner.
type CustomerHandler struct {
	Users    *repository.UserRepo
	Bookings *repository.BookingRepo
	Logger   zerolog.Logger
}

// NewCustomerHandler constructs a CustomerHandler. Both repositories
// must be non-nil.
func NewCustomerHandler(users *repository.UserRepo, bookings *repository.BookingRepo, logger zerolog.Logger) *CustomerHandler {
	if users == nil || bookings == nil {
		panic("nil repository passed to NewCustomerHandler")
	}
	return &CustomerHandler{Users: users, Bookings: bookings, Logger: logger}
}

// CreateBooking handles POST /api/bookings. The payload is validated
// against the service/vehicle/slot catalogs and the date rule; every
// offending field is reported in one response. On success the booking
// is created with status Pending, a status event is published, and the
// created booking is returned with 201.
func (h *CustomerHandler) CreateBooking(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	var in model.BookingInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	date, fields := in.Validate(time.Now())
	if len(fields) > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking payload", "fields": fields})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	// Denormalize the owner's username and mobile number onto the row
	// so the admin table renders without joins.
	owner, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load user failed"})
	}

	b := model.Booking{
		OwnerID:       owner.ID,
		OwnerUsername: owner.Username,
		MobileNumber:  owner.MobileNumber,
		ServiceType:   in.ServiceType,
		VehicleType:   in.VehicleType,
		VehicleModel:  in.VehicleModel,
		Date:          date,
		TimeSlot:      in.PreferredTime,
		Description:   in.Description,
	}
	if err := h.Bookings.Create(ctx, &b); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create booking failed"})
	}

	metrics.BookingsCreated.Inc()
	h.publishStatus(b, "")
	h.Logger.Info().Uint64("booking_id", b.ID).Uint64("owner_id", b.OwnerID).
		Str("service", b.ServiceType).Msg("booking created")

	return c.JSON(http.StatusCreated, toBookingResp(b))
}

// ListBookings handles GET /api/bookings. An optional ?status= query
// filters by status; Cancelled rows are included so the history views
// can render them.
func (h *CustomerHandler) ListBookings(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	filter, ok := statusFilterFrom(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown status filter"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	bookings, err := h.Bookings.ListByOwner(ctx, userID, filter)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, toBookingResps(bookings))
}

// GetStats handles GET /api/bookings/stats. The rollup is computed
// from the same listing snapshot the dashboard table is built from,
// so the stat cards and the table can never disagree.
func (h *CustomerHandler) GetStats(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	bookings, err := h.Bookings.ListByOwner(ctx, userID, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, model.ComputeStats(bookings))
}

// CancelBooking handles DELETE /api/bookings/:id. Cancellation is the
// Cancelled transition, not a delete: the row survives for the history
// views. Only the owning customer may cancel, and only while the
// booking is Pending or Confirmed.
func (h *CustomerHandler) CancelBooking(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	bookingID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || bookingID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	prev, err := h.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		return transitionError(c, err)
	}
	b, err := h.Bookings.TransitionStatus(ctx, bookingID, model.StatusCancelled, userID, currentRole(c))
	if err != nil {
		metrics.BookingTransitionFailures.WithLabelValues(failureReason(err)).Inc()
		return transitionError(c, err)
	}

	metrics.BookingTransitions.WithLabelValues(string(model.StatusCancelled)).Inc()
	h.publishStatus(b, prev.Status)
	h.Logger.Info().Uint64("booking_id", b.ID).Uint64("owner_id", b.OwnerID).Msg("booking cancelled")

	return c.JSON(http.StatusOK, toBookingResp(b))
}

func (h *CustomerHandler) publishStatus(b model.Booking, from model.Status) {
	ev := queue_publisher.NewBookingStatusEvent(b, from)
	go func() {
		if err := queue_publisher.PublishBookingStatus(context.Background(), ev); err != nil {
			h.Logger.Warn().Err(err).Uint64("booking_id", b.ID).Msg("publish status event failed")
		}
	}()
}

func failureReason(err error) string {
	switch err {
	case repository.ErrNotFound:
		return "not_found"
	case repository.ErrForbidden:
		return "forbidden"
	case repository.ErrInvalidTransition:
		return "invalid_transition"
	}
	return "error"
}
