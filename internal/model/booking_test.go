package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to Status
		want     bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusConfirmed, StatusCompleted, true},
		{StatusPending, StatusCancelled, true},
		{StatusConfirmed, StatusCancelled, true},

		// Skipping Confirmed is not allowed.
		{StatusPending, StatusCompleted, false},

		// Terminal states allow nothing.
		{StatusCompleted, StatusCancelled, false},
		{StatusCompleted, StatusConfirmed, false},
		{StatusCancelled, StatusConfirmed, false},
		{StatusCancelled, StatusCompleted, false},

		// Re-applying an already-applied transition must fail.
		{StatusConfirmed, StatusConfirmed, false},
		{StatusCompleted, StatusCompleted, false},
		{StatusCancelled, StatusCancelled, false},

		// Nothing ever moves back to Pending.
		{StatusConfirmed, StatusPending, false},
		{StatusCancelled, StatusPending, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, CanTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestRoleMayRequest(t *testing.T) {
	assert.True(t, RoleMayRequest(RoleAdmin, StatusConfirmed))
	assert.True(t, RoleMayRequest(RoleAdmin, StatusCompleted))
	assert.False(t, RoleMayRequest(RoleAdmin, StatusCancelled), "admins never cancel")

	assert.True(t, RoleMayRequest(RoleCustomer, StatusCancelled))
	assert.False(t, RoleMayRequest(RoleCustomer, StatusConfirmed))
	assert.False(t, RoleMayRequest(RoleCustomer, StatusCompleted))

	assert.False(t, RoleMayRequest(RoleAdmin, StatusPending), "Pending is not a transition target")
	assert.False(t, RoleMayRequest("", StatusCancelled))
}

func TestParseStatus(t *testing.T) {
	for _, s := range []Status{StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled} {
		got, ok := ParseStatus(string(s))
		require.True(t, ok)
		assert.Equal(t, s, got)
	}

	got, ok := ParseStatus("  confirmed ")
	require.True(t, ok)
	assert.Equal(t, StatusConfirmed, got)

	_, ok = ParseStatus("Rejected")
	assert.False(t, ok)
	_, ok = ParseStatus("")
	assert.False(t, ok)
}

func TestTerminal(t *testing.T) {
	assert.False(t, StatusPending.Terminal())
	assert.False(t, StatusConfirmed.Terminal())
	assert.True(t, StatusCompleted.Terminal())
	assert.True(t, StatusCancelled.Terminal())
}

func validInput(date string) BookingInput {
	return BookingInput{
		ServiceType:   "Oil Change",
		VehicleType:   "Car",
		VehicleModel:  "Toyota Camry 2020",
		PreferredDate: date,
		PreferredTime: "10:00 AM",
	}
}

func TestBookingInputValidate(t *testing.T) {
	now := time.Date(2026, 8, 31, 15, 0, 0, 0, time.UTC)

	t.Run("valid", func(t *testing.T) {
		in := validInput("2026-09-01")
		date, fields := in.Validate(now)
		assert.Empty(t, fields)
		assert.Equal(t, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), date)
	})

	t.Run("today is allowed", func(t *testing.T) {
		_, fields := validInput("2026-08-31").Validate(now)
		assert.Empty(t, fields)
	})

	t.Run("past date rejected", func(t *testing.T) {
		_, fields := validInput("2026-08-30").Validate(now)
		assert.Equal(t, []string{"preferredDate"}, fields)
	})

	t.Run("unparseable date rejected", func(t *testing.T) {
		_, fields := validInput("31/08/2026").Validate(now)
		assert.Equal(t, []string{"preferredDate"}, fields)
	})

	t.Run("unknown catalog values", func(t *testing.T) {
		in := validInput("2026-09-01")
		in.ServiceType = "Detailing"
		in.VehicleType = "Boat"
		in.PreferredTime = "8:00 AM"
		_, fields := in.Validate(now)
		assert.ElementsMatch(t, []string{"serviceType", "vehicleType", "preferredTime"}, fields)
	})

	t.Run("empty model reported with everything else", func(t *testing.T) {
		in := BookingInput{PreferredDate: "bad"}
		_, fields := in.Validate(now)
		assert.ElementsMatch(t,
			[]string{"serviceType", "vehicleType", "vehicleModel", "preferredTime", "preferredDate"},
			fields)
	})

	t.Run("description optional", func(t *testing.T) {
		in := validInput("2026-09-01")
		in.Description = ""
		_, fields := in.Validate(now)
		assert.Empty(t, fields)
	})
}

func TestComputeStats(t *testing.T) {
	bookings := []Booking{
		{Status: StatusPending},
		{Status: StatusPending},
		{Status: StatusConfirmed},
		{Status: StatusCompleted},
		{Status: StatusCancelled},
		{Status: StatusCancelled},
	}
	st := ComputeStats(bookings)
	assert.Equal(t, Stats{Total: 4, Pending: 2, Confirmed: 1, Completed: 1}, st)
	assert.Equal(t, st.Total, st.Pending+st.Confirmed+st.Completed)
}

func TestComputeStatsEmpty(t *testing.T) {
	assert.Equal(t, Stats{}, ComputeStats(nil))
	assert.Equal(t, Stats{}, ComputeStats([]Booking{}))
}

func TestComputeStatsCancellationDropsTotal(t *testing.T) {
	bookings := []Booking{
		{ID: 1, Status: StatusPending},
		{ID: 2, Status: StatusConfirmed},
	}
	before := ComputeStats(bookings)

	bookings[0].Status = StatusCancelled
	after := ComputeStats(bookings)

	assert.Equal(t, before.Total-1, after.Total)
	assert.Equal(t, before.Pending-1, after.Pending)
}

func TestCatalogsContainScenarioValues(t *testing.T) {
	assert.Contains(t, ServiceTypes, "Oil Change")
	assert.Contains(t, VehicleTypes, "Car")
	assert.Contains(t, TimeSlots, "10:00 AM")
	assert.Contains(t, TimeSlots, "9:00 AM")
	assert.Contains(t, TimeSlots, "5:00 PM")
	assert.Len(t, ServiceTypes, 10)
}
