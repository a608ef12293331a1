package repository

import (
    "context"
    "database/sql"
    "errors"
    "time"

    "github.com/iliyamo/car-service-booking/internal/model"
)

// BookingRepo provides CRUD and lifecycle operations for bookings.
// A booking row is only ever mutated through TransitionStatus; every
// other column is written once at creation.  All timestamp fields are
// assumed to be stored in UTC.
type BookingRepo struct {
    db *sql.DB
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

const bookingCols = `id, owner_id, owner_username, mobile_number, service_type,
    vehicle_type, vehicle_model, date, time_slot, description, status,
    created_at, updated_at`

func scanBooking(row interface{ Scan(...any) error }) (model.Booking, error) {
    var (
        b    model.Booking
        desc sql.NullString
    )
    err := row.Scan(
        &b.ID, &b.OwnerID, &b.OwnerUsername, &b.MobileNumber, &b.ServiceType,
        &b.VehicleType, &b.VehicleModel, &b.Date, &b.TimeSlot, &desc, &b.Status,
        &b.CreatedAt, &b.UpdatedAt,
    )
    if err != nil {
        return model.Booking{}, err
    }
    if desc.Valid {
        b.Description = desc.String
    }
    return b, nil
}

// Create inserts a new booking with status Pending.  It populates the
// generated ID and the database-assigned timestamps on the provided
// record.  The caller is expected to have validated the payload
// already; the repository only persists it.
func (r *BookingRepo) Create(ctx context.Context, b *model.Booking) error {
    b.Status = model.StatusPending
    const q = `INSERT INTO bookings
        (owner_id, owner_username, mobile_number, service_type, vehicle_type,
         vehicle_model, date, time_slot, description, status)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
    res, err := r.db.ExecContext(ctx, q,
        b.OwnerID, b.OwnerUsername, b.MobileNumber, b.ServiceType, b.VehicleType,
        b.VehicleModel, b.Date.Format(model.DateLayout), b.TimeSlot,
        nullable(b.Description), b.Status)
    if err != nil {
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    b.ID = uint64(id)
    // Query back the full row to populate timestamps and defaults
    created, err := r.GetByID(ctx, b.ID)
    if err != nil {
        return err
    }
    *b = created
    return nil
}

func nullable(s string) any {
    if s == "" {
        return nil
    }
    return s
}

// GetByID fetches a single booking.  Returns ErrNotFound when the id
// is unknown.
func (r *BookingRepo) GetByID(ctx context.Context, id uint64) (model.Booking, error) {
    b, err := scanBooking(r.db.QueryRowContext(ctx,
        `SELECT `+bookingCols+` FROM bookings WHERE id = ?`, id))
    if errors.Is(err, sql.ErrNoRows) {
        return model.Booking{}, ErrNotFound
    }
    return b, err
}

// ListByOwner returns the bookings created by one user, optionally
// filtered by status, ordered by creation time with a stable id
// tie-break.
func (r *BookingRepo) ListByOwner(ctx context.Context, ownerID uint64, status *model.Status) ([]model.Booking, error) {
    q := `SELECT ` + bookingCols + ` FROM bookings WHERE owner_id = ?`
    args := []any{ownerID}
    if status != nil {
        q += ` AND status = ?`
        args = append(args, *status)
    }
    q += ` ORDER BY created_at, id`
    return r.list(ctx, q, args...)
}

// ListAll returns every booking regardless of owner, optionally
// filtered by status.  Used by the admin views and the export.
func (r *BookingRepo) ListAll(ctx context.Context, status *model.Status) ([]model.Booking, error) {
    q := `SELECT ` + bookingCols + ` FROM bookings`
    var args []any
    if status != nil {
        q += ` WHERE status = ?`
        args = append(args, *status)
    }
    q += ` ORDER BY created_at, id`
    return r.list(ctx, q, args...)
}

func (r *BookingRepo) list(ctx context.Context, q string, args ...any) ([]model.Booking, error) {
    rows, err := r.db.QueryContext(ctx, q, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    bookings := make([]model.Booking, 0)
    for rows.Next() {
        b, err := scanBooking(rows)
        if err != nil {
            return nil, err
        }
        bookings = append(bookings, b)
    }
    return bookings, rows.Err()
}

// TransitionStatus moves a booking to the target status on behalf of
// the given requester.  The read-check-write runs inside a transaction
// with the row locked (SELECT ... FOR UPDATE) so two concurrent
// transition attempts on the same booking serialize: the loser sees
// the winner's status and fails the transition check instead of
// overwriting it.
//
// Error contract:
//   ErrNotFound          – no booking with that id.
//   ErrForbidden         – requester's role may not request the target,
//                          or a cancelling customer does not own the row.
//   ErrInvalidTransition – the current status disallows the target.
//
// On success the updated booking is returned.
func (r *BookingRepo) TransitionStatus(ctx context.Context, id uint64, target model.Status, requesterID uint64, role string) (model.Booking, error) {
    if !model.RoleMayRequest(role, target) {
        return model.Booking{}, ErrForbidden
    }

    tx, err := r.db.BeginTx(ctx, nil)
    if err != nil {
        return model.Booking{}, err
    }
    defer func() { _ = tx.Rollback() }()

    var (
        ownerID uint64
        current model.Status
    )
    err = tx.QueryRowContext(ctx,
        `SELECT owner_id, status FROM bookings WHERE id = ? FOR UPDATE`,
        id).Scan(&ownerID, &current)
    if errors.Is(err, sql.ErrNoRows) {
        return model.Booking{}, ErrNotFound
    }
    if err != nil {
        return model.Booking{}, err
    }

    // Only the owning customer may cancel; admins never cancel.
    if target == model.StatusCancelled && ownerID != requesterID {
        return model.Booking{}, ErrForbidden
    }
    if !model.CanTransition(current, target) {
        return model.Booking{}, ErrInvalidTransition
    }

    if _, err := tx.ExecContext(ctx,
        `UPDATE bookings SET status = ?, updated_at = ? WHERE id = ?`,
        target, time.Now().UTC(), id); err != nil {
        return model.Booking{}, err
    }

    b, err := scanBooking(tx.QueryRowContext(ctx,
        `SELECT `+bookingCols+` FROM bookings WHERE id = ?`, id))
    if err != nil {
        return model.Booking{}, err
    }
    if err := tx.Commit(); err != nil {
        return model.Booking{}, err
    }
    return b, nil
}
