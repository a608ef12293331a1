// Package queue defines message payloads exchanged over the message broker.
package queue

// BookingStatusEvent is published after a booking is created or after
// any successful status transition. It contains enough information for
// downstream consumers to log, notify, or trigger analytics without
// querying the primary database.
type BookingStatusEvent struct {
    EventID       string `json:"event_id"`
    BookingID     uint64 `json:"booking_id"`
    OwnerID       uint64 `json:"owner_id"`
    OwnerUsername string `json:"owner_username"`
    ServiceType   string `json:"service_type"`
    VehicleType   string `json:"vehicle_type"`
    VehicleModel  string `json:"vehicle_model"`
    Date          string `json:"date"`
    TimeSlot      string `json:"time_slot"`
    FromStatus    string `json:"from_status,omitempty"` // empty on creation
    ToStatus      string `json:"to_status"`
    OccurredAt    string `json:"occurred_at"`
}
