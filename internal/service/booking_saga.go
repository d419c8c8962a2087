package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/DanielJKrikorian/admin-bremembered-sub001/internal/model"
	"github.com/DanielJKrikorian/admin-bremembered-sub001/internal/queue"
)

// BookingSaga creates a calendar event and a dependent booking as a
// single observable unit.  The data API has no transaction across the
// two tables, so the flow writes the leaf record (the event) first —
// an event is safe to delete unilaterally — and the booking last, so
// that the absence of a booking row means the operation never logically
// completed.  A failed booking insert is compensated by deleting the
// event; a failed compensation is escalated, never swallowed.
//
// The saga carries no idempotency key: invoking it twice with the same
// inputs creates two event/booking pairs, and concurrent invocations
// for the same vendor slot are not serialized against each other.
type BookingSaga struct {
	events   EventStore
	bookings BookingStore
	packages PackageStore
	pub      EventPublisher
	log      *logrus.Logger
}

// NewBookingSaga wires the saga's dependencies.  pub may be nil to
// disable broker alerts (compensation failures are still logged).
func NewBookingSaga(events EventStore, bookings BookingStore, packages PackageStore, pub EventPublisher, log *logrus.Logger) *BookingSaga {
	return &BookingSaga{events: events, bookings: bookings, packages: packages, pub: pub, log: log}
}

// CreateBookingInput carries everything staff enter when booking a
// vendor directly.  PackageID, when set, is resolved against the
// catalog and its price and service type overwrite AmountCents and
// ServiceType — package selection is destructive by design.
type CreateBookingInput struct {
	CoupleID    uint64
	VendorID    uint64
	StartTime   time.Time
	EndTime     time.Time
	ServiceType string
	EventType   model.EventType
	AmountCents int64
	PackageID   *uint64
	VenueID     *uint64
}

// CreateBookingWithEvent runs the saga.  Steps, in strict order:
//
//  1. validate the input; nothing is written on failure
//  2. create the blocked-time event
//  3. create the booking referencing the event
//  4. on a step-3 failure, delete the event from step 2
//
// On success the returned booking has EventID populated.  Callers must
// not retry only the booking insert after a partial failure without
// first checking for an orphaned event, or they will double-block the
// vendor's calendar.
func (s *BookingSaga) CreateBookingWithEvent(ctx context.Context, in CreateBookingInput) (*model.Booking, error) {
	if err := s.validate(in); err != nil {
		return nil, err
	}

	// Package selection overwrites the manually entered price and
	// service type.
	if in.PackageID != nil {
		pkg, err := s.packages.GetByID(ctx, *in.PackageID)
		if err != nil {
			return nil, ValidationError{Field: "package_id", Msg: "unknown service package"}
		}
		in.AmountCents = pkg.PriceCents
		in.ServiceType = pkg.ServiceType
	}

	event := &model.Event{
		CoupleID:      in.CoupleID,
		VendorID:      in.VendorID,
		StartTime:     in.StartTime,
		EndTime:       in.EndTime,
		Type:          in.EventType,
		Title:         in.ServiceType + " booking",
		IsBlockedTime: true,
	}
	if err := s.events.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEventCreationFailed, err)
	}

	booking := &model.Booking{
		CoupleID:    in.CoupleID,
		VendorID:    in.VendorID,
		Status:      model.BookingPending,
		AmountCents: in.AmountCents,
		ServiceType: in.ServiceType,
		EventType:   in.EventType,
		PackageID:   in.PackageID,
		VenueID:     in.VenueID,
		EventID:     &event.ID,
	}
	if err := s.bookings.Create(ctx, booking); err != nil {
		return nil, s.compensate(ctx, event, in, err)
	}

	s.log.WithFields(logrus.Fields{
		"booking_id": booking.ID,
		"event_id":   event.ID,
		"vendor_id":  in.VendorID,
		"amount":     in.AmountCents,
	}).Info("booking created with blocked-time event")
	return booking, nil
}

// compensate deletes the event written in step 2 after a failed booking
// insert.  The delete is best-effort: when it also fails, the orphaned
// event is logged at error level and published to the operator-alert
// queue, and the caller receives the distinct compensation-failed
// condition instead of a plain booking failure.
func (s *BookingSaga) compensate(ctx context.Context, event *model.Event, in CreateBookingInput, cause error) error {
	if delErr := s.events.Delete(ctx, event.ID); delErr != nil {
		s.log.WithFields(logrus.Fields{
			"event_id":      event.ID,
			"couple_id":     in.CoupleID,
			"vendor_id":     in.VendorID,
			"booking_error": cause.Error(),
			"delete_error":  delErr.Error(),
		}).Error("booking compensation failed; blocked-time event orphaned")
		if s.pub != nil {
			_ = s.pub.PublishCompensationFailed(ctx, queue.CompensationFailedEvent{
				EventID:     event.ID,
				CoupleID:    in.CoupleID,
				VendorID:    in.VendorID,
				ServiceType: in.ServiceType,
				Reason:      fmt.Sprintf("booking insert failed (%v); event delete failed (%v)", cause, delErr),
				OccurredAt:  time.Now().UTC().Format(time.RFC3339),
			})
		}
		return fmt.Errorf("%w: event %d (booking error: %v, delete error: %v)",
			ErrCompensationFailed, event.ID, cause, delErr)
	}

	s.log.WithFields(logrus.Fields{
		"event_id":  event.ID,
		"vendor_id": in.VendorID,
	}).Warn("booking insert failed; blocked-time event rolled back")
	return fmt.Errorf("%w: %v", ErrBookingCreationFailed, cause)
}

// validate enforces the required fields before any write.
func (s *BookingSaga) validate(in CreateBookingInput) error {
	if in.CoupleID == 0 {
		return ValidationError{Field: "couple_id", Msg: "is required"}
	}
	if in.VendorID == 0 {
		return ValidationError{Field: "vendor_id", Msg: "is required"}
	}
	if in.VenueID == nil || *in.VenueID == 0 {
		return ValidationError{Field: "venue_id", Msg: "is required"}
	}
	if in.StartTime.IsZero() || in.EndTime.IsZero() {
		return ValidationError{Field: "start_time", Msg: "and end_time are required"}
	}
	if !in.StartTime.Before(in.EndTime) {
		return ValidationError{Field: "end_time", Msg: "must be after start_time"}
	}
	if in.AmountCents < 0 && in.PackageID == nil {
		return ValidationError{Field: "amount_cents", Msg: "must not be negative"}
	}
	return nil
}
