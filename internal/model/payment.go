package model

import "time"

// PaymentStatus enumerates payment outcomes.  Payments are append-only;
// a payment never moves back out of a terminal state.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentSucceeded PaymentStatus = "succeeded"
	PaymentFailed    PaymentStatus = "failed"
)

// PaymentType records what portion of a bill a payment covers.
type PaymentType string

const (
	PaymentDeposit PaymentType = "deposit"
	PaymentFull    PaymentType = "full_payment"
	PaymentPartial PaymentType = "partial_payment"
)

// Payment is a record of a gateway charge attempt that reached a
// terminal outcome.  A payment is scoped to exactly one of an invoice or
// a booking.  Rows are only written once the gateway has answered, so a
// payment never sits in pending forever.
//
// Fields:
//  ID               – primary key identifier.
//  InvoiceID        – invoice the payment applies to (nullable).
//  BookingID        – booking the payment applies to (nullable).
//  AmountCents      – charged amount in cents.
//  Status           – outcome (succeeded or failed).
//  Type             – deposit, full_payment or partial_payment.
//  ToPlatform       – true when funds route to the platform operator
//                     rather than the vendor's connected account.
//  GatewayPaymentID – gateway-side identifier of the confirmed intent.
//  CreatedAt        – creation timestamp.
type Payment struct {
	ID               uint64        `json:"id"`                 // payments.id
	InvoiceID        *uint64       `json:"invoice_id"`         // payments.invoice_id (nullable)
	BookingID        *uint64       `json:"booking_id"`         // payments.booking_id (nullable)
	AmountCents      int64         `json:"amount_cents"`       // payments.amount_cents
	Status           PaymentStatus `json:"status"`             // payments.status
	Type             PaymentType   `json:"payment_type"`       // payments.payment_type
	ToPlatform       bool          `json:"to_platform"`        // payments.to_platform
	GatewayPaymentID *string       `json:"gateway_payment_id"` // payments.gateway_payment_id (nullable)
	CreatedAt        time.Time     `json:"created_at"`         // payments.created_at
}
