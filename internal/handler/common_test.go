package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/car-service-booking/internal/model"
	"github.com/iliyamo/car-service-booking/internal/repository"
)

func newContext(t *testing.T, target string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestCatalog(t *testing.T) {
	c, rec := newContext(t, "/api/catalog")
	require.NoError(t, Catalog(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		ServiceTypes []string `json:"serviceTypes"`
		VehicleTypes []string `json:"vehicleTypes"`
		TimeSlots    []string `json:"timeSlots"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, model.ServiceTypes, body.ServiceTypes)
	assert.Equal(t, model.VehicleTypes, body.VehicleTypes)
	assert.Equal(t, model.TimeSlots, body.TimeSlots)
}

func TestStatusFilterFrom(t *testing.T) {
	c, _ := newContext(t, "/api/bookings")
	filter, ok := statusFilterFrom(c)
	assert.True(t, ok)
	assert.Nil(t, filter)

	c, _ = newContext(t, "/api/bookings?status=Confirmed")
	filter, ok = statusFilterFrom(c)
	require.True(t, ok)
	require.NotNil(t, filter)
	assert.Equal(t, model.StatusConfirmed, *filter)

	c, _ = newContext(t, "/api/bookings?status=bogus")
	_, ok = statusFilterFrom(c)
	assert.False(t, ok)
}

func TestTransitionErrorMapping(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{repository.ErrNotFound, http.StatusNotFound},
		{repository.ErrForbidden, http.StatusForbidden},
		{repository.ErrInvalidTransition, http.StatusBadRequest},
		{assert.AnError, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		c, rec := newContext(t, "/api/bookings/1")
		require.NoError(t, transitionError(c, tc.err))
		assert.Equal(t, tc.code, rec.Code, tc.err.Error())
	}
}

func TestToBookingResp(t *testing.T) {
	created := time.Date(2026, 8, 30, 9, 30, 0, 0, time.UTC)
	b := model.Booking{
		ID:            7,
		OwnerUsername: "alice",
		MobileNumber:  "0771234567",
		ServiceType:   "Brake Service",
		VehicleType:   "SUV",
		VehicleModel:  "Kia Sorento",
		Date:          time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC),
		TimeSlot:      "1:30 PM",
		Status:        model.StatusPending,
		CreatedAt:     created,
	}
	resp := toBookingResp(b)
	assert.Equal(t, "2026-09-02", resp.Date)
	assert.Equal(t, "1:30 PM", resp.Time)
	assert.Equal(t, "Pending", resp.Status)
	assert.Equal(t, "2026-08-30T09:30:00Z", resp.CreatedAt)

	// Listings serialize to [] rather than null when empty.
	assert.NotNil(t, toBookingResps(nil))
	assert.Len(t, toBookingResps(nil), 0)
}

func TestFailureReason(t *testing.T) {
	assert.Equal(t, "not_found", failureReason(repository.ErrNotFound))
	assert.Equal(t, "forbidden", failureReason(repository.ErrForbidden))
	assert.Equal(t, "invalid_transition", failureReason(repository.ErrInvalidTransition))
	assert.Equal(t, "error", failureReason(assert.AnError))
}
