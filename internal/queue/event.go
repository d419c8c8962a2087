// Package queue defines message payloads exchanged over the message broker.
package queue

// InvoicePaidEvent is published when an invoice's remaining balance
// reaches zero.  It carries enough information for downstream consumers
// to notify the vendor or trigger bookkeeping without querying the
// primary database.
type InvoicePaidEvent struct {
	InvoiceID        uint64 `json:"invoice_id"`
	CoupleID         uint64 `json:"couple_id"`
	VendorID         uint64 `json:"vendor_id"`
	TotalAmountCents int64  `json:"total_amount_cents"`
	PaidAt           string `json:"paid_at"`
}

// InvoiceSentEvent asks the notification service to email a couple
// their invoice payment link.  Link construction and mail dispatch
// happen outside this service.
type InvoiceSentEvent struct {
	InvoiceID    uint64 `json:"invoice_id"`
	CoupleID     uint64 `json:"couple_id"`
	PaymentToken string `json:"payment_token"`
	ShareLink    string `json:"share_link"`
}

// CompensationFailedEvent is published when the booking flow created a
// blocked-time event, failed to create the booking, and then also
// failed to delete the event.  The orphaned event blocks the vendor's
// calendar until an operator removes it, so this event must reach a
// human.
type CompensationFailedEvent struct {
	EventID     uint64 `json:"event_id"`
	CoupleID    uint64 `json:"couple_id"`
	VendorID    uint64 `json:"vendor_id"`
	ServiceType string `json:"service_type"`
	Reason      string `json:"reason"`
	OccurredAt  string `json:"occurred_at"`
}
