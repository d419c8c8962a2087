package model

import "time"

// BookingStatus enumerates the states a booking can be in.
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

// Booking records an engagement between a couple and a vendor for a
// service.  Bookings created through the booking flow always carry the
// id of the blocked-time event written alongside them; the booking row
// is only considered durable once EventID is populated.
//
// Fields:
//  ID          – primary key identifier.
//  CoupleID    – couple the booking is for.
//  VendorID    – vendor being booked.
//  Status      – booking state (pending, confirmed, cancelled).
//  AmountCents – agreed price in cents.
//  ServiceType – service being provided (e.g. "photography").
//  EventType   – kind of occasion the booking covers.
//  PackageID   – optional service package the price was taken from.
//  VenueID     – optional venue reference.
//  EventID     – calendar event created alongside the booking.
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last update timestamp.
type Booking struct {
	ID          uint64        `json:"id"`           // bookings.id
	CoupleID    uint64        `json:"couple_id"`    // bookings.couple_id
	VendorID    uint64        `json:"vendor_id"`    // bookings.vendor_id
	Status      BookingStatus `json:"status"`       // bookings.status
	AmountCents int64         `json:"amount_cents"` // bookings.amount_cents
	ServiceType string        `json:"service_type"` // bookings.service_type
	EventType   EventType     `json:"event_type"`   // bookings.event_type
	PackageID   *uint64       `json:"package_id"`   // bookings.package_id (nullable)
	VenueID     *uint64       `json:"venue_id"`     // bookings.venue_id (nullable)
	EventID     *uint64       `json:"event_id"`     // bookings.event_id (nullable)
	CreatedAt   time.Time     `json:"created_at"`   // bookings.created_at
	UpdatedAt   time.Time     `json:"updated_at"`   // bookings.updated_at
}
