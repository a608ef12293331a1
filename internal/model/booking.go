package model

import (
    "strings"
    "time"
)

// Status enumerates the lifecycle states of a booking.  The value is
// stored verbatim in the bookings.status column and rendered as-is by
// the clients, so the constants use display casing.
type Status string

const (
    StatusPending   Status = "Pending"
    StatusConfirmed Status = "Confirmed"
    StatusCompleted Status = "Completed"
    StatusCancelled Status = "Cancelled"
)

// ParseStatus maps a raw string onto one of the closed status values.
// The second return value reports whether the input named a known
// status.  Matching is case-insensitive so clients may send either
// "Confirmed" or "confirmed".
func ParseStatus(s string) (Status, bool) {
    switch strings.ToLower(strings.TrimSpace(s)) {
    case "pending":
        return StatusPending, true
    case "confirmed":
        return StatusConfirmed, true
    case "completed":
        return StatusCompleted, true
    case "cancelled":
        return StatusCancelled, true
    }
    return "", false
}

// Terminal reports whether no further transition may leave this state.
func (s Status) Terminal() bool {
    return s == StatusCompleted || s == StatusCancelled
}

// CanTransition reports whether the state machine permits moving a
// booking from one status to another, independent of who is asking.
// The reachable edges are Pending→Confirmed, Confirmed→Completed and
// {Pending,Confirmed}→Cancelled; Completed and Cancelled are terminal.
func CanTransition(from, to Status) bool {
    switch to {
    case StatusConfirmed:
        return from == StatusPending
    case StatusCompleted:
        return from == StatusConfirmed
    case StatusCancelled:
        return from == StatusPending || from == StatusConfirmed
    }
    return false
}

// RoleMayRequest reports whether a principal with the given role is
// ever allowed to request a transition to the target status.  Admins
// confirm and complete; only the owning customer may cancel (ownership
// itself is checked by the repository against the locked row).
func RoleMayRequest(role string, target Status) bool {
    switch target {
    case StatusConfirmed, StatusCompleted:
        return role == RoleAdmin
    case StatusCancelled:
        return role == RoleCustomer
    }
    return false
}

// Booking represents a row of the `bookings` table.  A booking is a
// customer's request for a vehicle service at a specific date and time
// slot.  Only the Status column ever changes after creation; every
// other field is immutable, and cancellation is a status change rather
// than a delete so the history stays visible.
//
// Fields:
//  ID            – primary key identifier.
//  OwnerID       – user who created the booking.
//  OwnerUsername – denormalized username of the owner.
//  MobileNumber  – denormalized contact number of the owner.
//  ServiceType   – one of the ServiceTypes catalog.
//  VehicleType   – one of the VehicleTypes catalog.
//  VehicleModel  – free-text vehicle description.
//  Date          – appointment calendar date (midnight UTC).
//  TimeSlot      – one of the TimeSlots catalog (e.g. "10:00 AM").
//  Description   – optional free text.
//  Status        – lifecycle state, defaults to Pending.
//  CreatedAt     – creation timestamp.
//  UpdatedAt     – last status change timestamp.
type Booking struct {
    ID            uint64    // bookings.id
    OwnerID       uint64    // bookings.owner_id
    OwnerUsername string    // bookings.owner_username
    MobileNumber  string    // bookings.mobile_number
    ServiceType   string    // bookings.service_type
    VehicleType   string    // bookings.vehicle_type
    VehicleModel  string    // bookings.vehicle_model
    Date          time.Time // bookings.date
    TimeSlot      string    // bookings.time_slot
    Description   string    // bookings.description
    Status        Status    // bookings.status
    CreatedAt     time.Time // bookings.created_at
    UpdatedAt     time.Time // bookings.updated_at
}

// ServiceTypes is the closed catalog of bookable services.
var ServiceTypes = []string{
    "Oil Change",
    "Brake Service",
    "Engine Repair",
    "Transmission Service",
    "Tire Replacement",
    "Battery Service",
    "AC Service",
    "General Maintenance",
    "Car Wash",
    "Full Service",
}

// VehicleTypes is the closed catalog of accepted vehicle categories.
var VehicleTypes = []string{"Car", "SUV", "Truck", "Motorcycle", "Van"}

// TimeSlots lists the bookable appointment slots: every half hour from
// 9:00 AM through 5:00 PM.
var TimeSlots = []string{
    "9:00 AM", "9:30 AM",
    "10:00 AM", "10:30 AM",
    "11:00 AM", "11:30 AM",
    "12:00 PM", "12:30 PM",
    "1:00 PM", "1:30 PM",
    "2:00 PM", "2:30 PM",
    "3:00 PM", "3:30 PM",
    "4:00 PM", "4:30 PM",
    "5:00 PM",
}

func contains(list []string, v string) bool {
    for _, s := range list {
        if s == v {
            return true
        }
    }
    return false
}

// DateLayout is the wire format for appointment dates, matching the
// value produced by an HTML date input.
const DateLayout = "2006-01-02"

// BookingInput carries the creation payload for a booking.  The json
// tags mirror the field names used by the web client.
type BookingInput struct {
    ServiceType   string `json:"serviceType"`
    VehicleType   string `json:"vehicleType"`
    VehicleModel  string `json:"vehicleModel"`
    PreferredDate string `json:"preferredDate"`
    PreferredTime string `json:"preferredTime"`
    Description   string `json:"description"`
}

// Validate checks the payload against the catalogs and returns the
// parsed appointment date together with the list of invalid fields.
// Every violation is reported in one pass so the client can highlight
// all offending inputs at once.  The date must parse as YYYY-MM-DD and
// must not fall on a calendar day before `now` (compared in UTC).
func (in BookingInput) Validate(now time.Time) (time.Time, []string) {
    var fields []string
    if !contains(ServiceTypes, in.ServiceType) {
        fields = append(fields, "serviceType")
    }
    if !contains(VehicleTypes, in.VehicleType) {
        fields = append(fields, "vehicleType")
    }
    if strings.TrimSpace(in.VehicleModel) == "" {
        fields = append(fields, "vehicleModel")
    }
    if !contains(TimeSlots, in.PreferredTime) {
        fields = append(fields, "preferredTime")
    }
    date, err := time.ParseInLocation(DateLayout, in.PreferredDate, time.UTC)
    if err != nil {
        fields = append(fields, "preferredDate")
    } else {
        today := now.UTC().Truncate(24 * time.Hour)
        if date.Before(today) {
            fields = append(fields, "preferredDate")
        }
    }
    return date, fields
}

// Stats is the rollup rendered by the dashboard stat cards.  Cancelled
// bookings are excluded from Total and from every per-status count, so
// Total always equals Pending+Confirmed+Completed.
type Stats struct {
    Total     int `json:"total"`
    Pending   int `json:"pending"`
    Confirmed int `json:"confirmed"`
    Completed int `json:"completed"`
}

// ComputeStats folds a listing snapshot into its rollup.  Stats are
// recomputed from the full collection on every request rather than
// maintained incrementally, so the stat cards and the table rendered
// from the same snapshot can never disagree.
func ComputeStats(bookings []Booking) Stats {
    var st Stats
    for _, b := range bookings {
        switch b.Status {
        case StatusPending:
            st.Pending++
        case StatusConfirmed:
            st.Confirmed++
        case StatusCompleted:
            st.Completed++
        default: // Cancelled is visible in listings but never counted
            continue
        }
        st.Total++
    }
    return st
}
