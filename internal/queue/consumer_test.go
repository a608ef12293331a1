package queue

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleMessageAppendsLogLine(t *testing.T) {
	dir := t.TempDir()

	ev := BookingStatusEvent{
		EventID:       "evt-1",
		BookingID:     12,
		OwnerID:       3,
		OwnerUsername: "alice",
		ServiceType:   "Oil Change",
		VehicleType:   "Car",
		VehicleModel:  "Toyota Camry 2020",
		Date:          "2026-09-01",
		TimeSlot:      "10:00 AM",
		FromStatus:    "Pending",
		ToStatus:      "Confirmed",
		OccurredAt:    "2026-08-31T12:00:00Z",
	}
	body, err := json.Marshal(ev)
	require.NoError(t, err)

	require.NoError(t, handleMessage(body, dir))
	require.NoError(t, handleMessage(body, dir)) // appends, does not truncate

	data, err := os.ReadFile(filepath.Join(dir, "booking.log"))
	require.NoError(t, err)

	content := string(data)
	assert.Contains(t, content, "Pending -> Confirmed")
	assert.Contains(t, content, "booking_id=12")
	assert.Contains(t, content, `owner="alice"`)
	assert.Contains(t, content, "event_id=evt-1")
	assert.Equal(t, 2, countLines(content))
}

func TestHandleMessageCreationHasNoFromStatus(t *testing.T) {
	dir := t.TempDir()

	body, err := json.Marshal(BookingStatusEvent{
		EventID:   "evt-2",
		BookingID: 1,
		ToStatus:  "Pending",
	})
	require.NoError(t, err)
	require.NoError(t, handleMessage(body, dir))

	data, err := os.ReadFile(filepath.Join(dir, "booking.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "- -> Pending")
}

func TestHandleMessageRejectsGarbage(t *testing.T) {
	assert.Error(t, handleMessage([]byte("{not json"), t.TempDir()))
}

func countLines(s string) int {
	n := 0
	for _, r := range s {
		if r == '\n' {
			n++
		}
	}
	return n
}
