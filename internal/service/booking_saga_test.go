package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DanielJKrikorian/admin-bremembered-sub001/internal/model"
)

func validBookingInput() CreateBookingInput {
	venueID := uint64(7)
	return CreateBookingInput{
		CoupleID:    1,
		VendorID:    2,
		StartTime:   time.Date(2026, 9, 12, 14, 0, 0, 0, time.UTC),
		EndTime:     time.Date(2026, 9, 12, 22, 0, 0, 0, time.UTC),
		ServiceType: "photography",
		EventType:   model.EventWedding,
		AmountCents: 250000,
		VenueID:     &venueID,
	}
}

func TestCreateBookingWithEventSuccess(t *testing.T) {
	events := newFakeEventStore()
	bookings := newFakeBookingStore()
	saga := NewBookingSaga(events, bookings, &fakePackageStore{}, &fakePublisher{}, testLogger())

	b, err := saga.CreateBookingWithEvent(context.Background(), validBookingInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.EventID == nil {
		t.Fatal("booking should reference the created event")
	}
	ev, ok := events.events[*b.EventID]
	if !ok {
		t.Fatalf("event %d not persisted", *b.EventID)
	}
	if !ev.IsBlockedTime {
		t.Error("calendar event should be blocked time")
	}
	if b.Status != model.BookingPending {
		t.Errorf("status = %q, want %q", b.Status, model.BookingPending)
	}
}

func TestCreateBookingWithEventPackageOverwritesPrice(t *testing.T) {
	events := newFakeEventStore()
	bookings := newFakeBookingStore()
	packages := &fakePackageStore{packages: map[uint64]model.ServicePackage{
		5: {ID: 5, Name: "Gold Photography", PriceCents: 400000, ServiceType: "photography+video"},
	}}
	saga := NewBookingSaga(events, bookings, packages, &fakePublisher{}, testLogger())

	in := validBookingInput()
	pkgID := uint64(5)
	in.PackageID = &pkgID
	in.AmountCents = 99 // manual entry that the package must replace

	b, err := saga.CreateBookingWithEvent(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.AmountCents != 400000 {
		t.Errorf("amount = %d, want package price 400000", b.AmountCents)
	}
	if b.ServiceType != "photography+video" {
		t.Errorf("service type = %q, want package service type", b.ServiceType)
	}
}

func TestCreateBookingWithEventMissingVenue(t *testing.T) {
	events := newFakeEventStore()
	bookings := newFakeBookingStore()
	saga := NewBookingSaga(events, bookings, &fakePackageStore{}, &fakePublisher{}, testLogger())

	in := validBookingInput()
	in.VenueID = nil

	_, err := saga.CreateBookingWithEvent(context.Background(), in)
	var verr ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("want ValidationError, got %v", err)
	}
	if verr.Field != "venue_id" {
		t.Errorf("field = %q, want venue_id", verr.Field)
	}
	if len(events.events) != 0 || len(bookings.bookings) != 0 {
		t.Error("validation failure must not write any rows")
	}
}

func TestCreateBookingWithEventEndBeforeStart(t *testing.T) {
	saga := NewBookingSaga(newFakeEventStore(), newFakeBookingStore(), &fakePackageStore{}, &fakePublisher{}, testLogger())

	in := validBookingInput()
	in.EndTime = in.StartTime.Add(-time.Hour)

	_, err := saga.CreateBookingWithEvent(context.Background(), in)
	var verr ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("want ValidationError, got %v", err)
	}
}

func TestCreateBookingWithEventCompensatesOnBookingFailure(t *testing.T) {
	events := newFakeEventStore()
	bookings := newFakeBookingStore()
	bookings.failCreate = true
	saga := NewBookingSaga(events, bookings, &fakePackageStore{}, &fakePublisher{}, testLogger())

	_, err := saga.CreateBookingWithEvent(context.Background(), validBookingInput())
	if !errors.Is(err, ErrBookingCreationFailed) {
		t.Fatalf("want ErrBookingCreationFailed, got %v", err)
	}
	if len(events.events) != 0 {
		t.Error("compensation should have deleted the blocked-time event")
	}
	if len(bookings.bookings) != 0 {
		t.Error("no booking row should exist")
	}
}

func TestCreateBookingWithEventCompensationFailure(t *testing.T) {
	events := newFakeEventStore()
	events.failDelete = true
	bookings := newFakeBookingStore()
	bookings.failCreate = true
	pub := &fakePublisher{}
	saga := NewBookingSaga(events, bookings, &fakePackageStore{}, pub, testLogger())

	_, err := saga.CreateBookingWithEvent(context.Background(), validBookingInput())
	if !errors.Is(err, ErrCompensationFailed) {
		t.Fatalf("want ErrCompensationFailed, got %v", err)
	}
	if errors.Is(err, ErrBookingCreationFailed) {
		t.Error("compensation failure must be distinct from a plain booking failure")
	}
	if len(events.events) != 1 {
		t.Fatal("orphaned event should remain in the store")
	}
	if len(pub.compensation) != 1 {
		t.Fatal("operator alert should have been published")
	}
	if pub.compensation[0].EventID == 0 {
		t.Error("alert must carry the orphaned event id")
	}
}

func TestCreateBookingWithEventUnknownPackage(t *testing.T) {
	events := newFakeEventStore()
	saga := NewBookingSaga(events, newFakeBookingStore(), &fakePackageStore{}, &fakePublisher{}, testLogger())

	in := validBookingInput()
	pkgID := uint64(404)
	in.PackageID = &pkgID

	_, err := saga.CreateBookingWithEvent(context.Background(), in)
	var verr ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("want ValidationError, got %v", err)
	}
	if len(events.events) != 0 {
		t.Error("package resolution failure must not write an event")
	}
}
