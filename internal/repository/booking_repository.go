package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/DanielJKrikorian/admin-bremembered-sub001/internal/model"
)

// BookingRepo provides CRUD operations for bookings.  A booking created
// through the booking flow references the calendar event written just
// before it; the insert here is the last step of that sequence so that
// the absence of a booking row means the operation never logically
// completed.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// Create inserts a new booking and populates the generated ID and
// DB-default timestamps on the given record.
func (r *BookingRepo) Create(ctx context.Context, b *model.Booking) error {
	const q = `INSERT INTO bookings (couple_id, vendor_id, status, amount_cents, service_type, event_type, package_id, venue_id, event_id)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q,
		b.CoupleID, b.VendorID, string(b.Status), b.AmountCents, b.ServiceType, string(b.EventType),
		b.PackageID, b.VenueID, b.EventID)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	const sel = `SELECT created_at, updated_at FROM bookings WHERE id = ?`
	return r.db.QueryRowContext(ctx, sel, b.ID).Scan(&b.CreatedAt, &b.UpdatedAt)
}

// GetByID returns a single booking.  ErrNotFound is returned when no
// row with the given id exists.
func (r *BookingRepo) GetByID(ctx context.Context, id uint64) (*model.Booking, error) {
	const q = `SELECT id, couple_id, vendor_id, status, amount_cents, service_type, event_type, package_id, venue_id, event_id, created_at, updated_at
	           FROM bookings WHERE id = ?`
	var b model.Booking
	var status, eventType string
	var packageID, venueID, eventID sql.NullInt64
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&b.ID, &b.CoupleID, &b.VendorID, &status, &b.AmountCents, &b.ServiceType, &eventType,
		&packageID, &venueID, &eventID, &b.CreatedAt, &b.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	b.Status = model.BookingStatus(status)
	b.EventType = model.EventType(eventType)
	b.PackageID = nullableID(packageID)
	b.VenueID = nullableID(venueID)
	b.EventID = nullableID(eventID)
	return &b, nil
}

// List returns all bookings ordered by creation time descending (newest
// first).  When no bookings exist an empty slice is returned.
func (r *BookingRepo) List(ctx context.Context) ([]model.Booking, error) {
	const q = `SELECT id, couple_id, vendor_id, status, amount_cents, service_type, event_type, package_id, venue_id, event_id, created_at, updated_at
	           FROM bookings ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	bookings := make([]model.Booking, 0)
	for rows.Next() {
		var b model.Booking
		var status, eventType string
		var packageID, venueID, eventID sql.NullInt64
		if err := rows.Scan(
			&b.ID, &b.CoupleID, &b.VendorID, &status, &b.AmountCents, &b.ServiceType, &eventType,
			&packageID, &venueID, &eventID, &b.CreatedAt, &b.UpdatedAt,
		); err != nil {
			return nil, err
		}
		b.Status = model.BookingStatus(status)
		b.EventType = model.EventType(eventType)
		b.PackageID = nullableID(packageID)
		b.VenueID = nullableID(venueID)
		b.EventID = nullableID(eventID)
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

// UpdateStatus moves a booking to a new status.  ErrNotFound is
// returned when the booking does not exist.
func (r *BookingRepo) UpdateStatus(ctx context.Context, id uint64, status model.BookingStatus) error {
	const q = `UPDATE bookings SET status = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, string(status), id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// nullableID converts a nullable integer column into a *uint64.
func nullableID(v sql.NullInt64) *uint64 {
	if !v.Valid {
		return nil
	}
	id := uint64(v.Int64)
	return &id
}
