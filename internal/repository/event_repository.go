package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/DanielJKrikorian/admin-bremembered-sub001/internal/model"
)

// EventRepo provides CRUD operations for calendar events.  Every method
// issues a single autocommit statement against the events table; the
// data API offers no way to tie an event write to a booking write, which
// is why the booking flow deletes the event it created when the booking
// insert fails.
type EventRepo struct {
	db *sql.DB
}

// NewEventRepo returns an EventRepo bound to the given database.
func NewEventRepo(db *sql.DB) *EventRepo { return &EventRepo{db: db} }

// Create inserts a new event and populates the generated ID and
// DB-default timestamps on the given record.
func (r *EventRepo) Create(ctx context.Context, e *model.Event) error {
	const q = `INSERT INTO events (couple_id, vendor_id, start_time, end_time, type, title, is_blocked_time)
	           VALUES (?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q,
		e.CoupleID, e.VendorID, e.StartTime.UTC(), e.EndTime.UTC(), string(e.Type), e.Title, e.IsBlockedTime)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	e.ID = uint64(id)
	const sel = `SELECT created_at, updated_at FROM events WHERE id = ?`
	return r.db.QueryRowContext(ctx, sel, e.ID).Scan(&e.CreatedAt, &e.UpdatedAt)
}

// GetByID returns a single event.  ErrNotFound is returned when no row
// with the given id exists.
func (r *EventRepo) GetByID(ctx context.Context, id uint64) (*model.Event, error) {
	const q = `SELECT id, couple_id, vendor_id, start_time, end_time, type, title, is_blocked_time, created_at, updated_at
	           FROM events WHERE id = ?`
	var e model.Event
	var typ string
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&e.ID, &e.CoupleID, &e.VendorID, &e.StartTime, &e.EndTime, &typ, &e.Title, &e.IsBlockedTime,
		&e.CreatedAt, &e.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	e.Type = model.EventType(typ)
	return &e, nil
}

// ListByVendor returns all events for a vendor ordered by start time.
// When no events exist an empty slice is returned.
func (r *EventRepo) ListByVendor(ctx context.Context, vendorID uint64) ([]model.Event, error) {
	const q = `SELECT id, couple_id, vendor_id, start_time, end_time, type, title, is_blocked_time, created_at, updated_at
	           FROM events WHERE vendor_id = ? ORDER BY start_time`
	rows, err := r.db.QueryContext(ctx, q, vendorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	events := make([]model.Event, 0)
	for rows.Next() {
		var e model.Event
		var typ string
		if err := rows.Scan(
			&e.ID, &e.CoupleID, &e.VendorID, &e.StartTime, &e.EndTime, &typ, &e.Title, &e.IsBlockedTime,
			&e.CreatedAt, &e.UpdatedAt,
		); err != nil {
			return nil, err
		}
		e.Type = model.EventType(typ)
		events = append(events, e)
	}
	return events, rows.Err()
}

// Reschedule updates an event's start and end times.  ErrNotFound is
// returned when the event does not exist.
func (r *EventRepo) Reschedule(ctx context.Context, id uint64, e *model.Event) error {
	const q = `UPDATE events SET start_time = ?, end_time = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, e.StartTime.UTC(), e.EndTime.UTC(), id)
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

// Delete removes an event.  It is used both by staff deleting calendar
// entries and by the booking flow compensating for a failed booking
// insert.  Deleting a missing row returns ErrNotFound so the caller can
// tell an already-gone event from a successful delete.
func (r *EventRepo) Delete(ctx context.Context, id uint64) error {
	const q = `DELETE FROM events WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, id)
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
