package model

import "time"

// EventType enumerates the kinds of calendar entries staff can create.
// Blocked-time entries are written by the booking flow to take a slot
// off a vendor's calendar.
type EventType string

const (
	EventWedding      EventType = "wedding"
	EventEngagement   EventType = "engagement"
	EventConsultation EventType = "consultation"
	EventIntroMeeting EventType = "intro_meeting"
	EventCeremony     EventType = "ceremony"
	EventBlocked      EventType = "blocked"
)

// Event represents a calendar entry for a couple/vendor pair.  Events are
// created directly by staff or by the booking flow, which writes a
// blocked-time event before the booking row itself.
//
// Fields:
//  ID            – primary key identifier.
//  CoupleID      – couple the event belongs to.
//  VendorID      – vendor whose calendar is affected.
//  StartTime     – when the event begins.
//  EndTime       – when the event ends (must be after StartTime).
//  Type          – event kind (wedding, engagement, consultation, ...).
//  Title         – display title; derived from the service type when the
//                  event is created by the booking flow.
//  IsBlockedTime – true when the event exists to block the vendor's slot.
//  CreatedAt     – creation timestamp.
//  UpdatedAt     – last update timestamp.
type Event struct {
	ID            uint64    `json:"id"`              // events.id
	CoupleID      uint64    `json:"couple_id"`       // events.couple_id
	VendorID      uint64    `json:"vendor_id"`       // events.vendor_id
	StartTime     time.Time `json:"start_time"`      // events.start_time
	EndTime       time.Time `json:"end_time"`        // events.end_time
	Type          EventType `json:"type"`            // events.type
	Title         string    `json:"title"`           // events.title
	IsBlockedTime bool      `json:"is_blocked_time"` // events.is_blocked_time
	CreatedAt     time.Time `json:"created_at"`      // events.created_at
	UpdatedAt     time.Time `json:"updated_at"`      // events.updated_at
}
