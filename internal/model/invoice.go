package model

import "time"

// InvoiceStatus enumerates the invoice lifecycle states.  The only legal
// forward path is draft -> sent -> paid.
type InvoiceStatus string

const (
	InvoiceDraft InvoiceStatus = "draft"
	InvoiceSent  InvoiceStatus = "sent"
	InvoicePaid  InvoiceStatus = "paid"
)

// DiscountMode selects which discount field on an invoice is
// authoritative.  Exactly one of the two is ever in effect; choosing a
// mode resets the other field to zero.
type DiscountMode string

const (
	DiscountDollar     DiscountMode = "dollar"
	DiscountPercentage DiscountMode = "percentage"
)

// LineItemType enumerates where an invoice line item's price came from.
type LineItemType string

const (
	LineItemServicePackage LineItemType = "service_package"
	LineItemStoreProduct   LineItemType = "store_product"
	LineItemCustom         LineItemType = "custom"
)

// Invoice is a bill issued to a couple on behalf of a vendor.  The
// monetary fields TotalAmountCents, DepositAmountCents and
// RemainingBalanceCents are derived by the ledger calculator and never
// entered by hand.  RemainingBalanceCents is recomputed from the full set
// of succeeded payments every time a payment lands, so concurrent
// payments converge to the same value regardless of apply order.
//
// Fields:
//  ID                    – primary key identifier.
//  CoupleID              – couple being billed.
//  VendorID              – vendor the work is billed for.
//  DiscountMode          – which discount field is authoritative.
//  DiscountAmountCents   – flat discount in cents (dollar mode).
//  DiscountPercent       – percentage discount 0–100 (percentage mode).
//  DepositPercent        – deposit percentage 0–100.
//  TotalAmountCents      – derived total after discount.
//  DepositAmountCents    – derived deposit owed up front.
//  RemainingBalanceCents – derived balance still owed; floored at zero.
//  Status                – lifecycle state (draft, sent, paid).
//  PaymentToken          – opaque shareable token for the payment link.
//  PaidAt                – when the balance reached zero (nullable).
//  CreatedAt             – creation timestamp.
//  UpdatedAt             – last update timestamp.
type Invoice struct {
	ID                    uint64        `json:"id"`                      // invoices.id
	CoupleID              uint64        `json:"couple_id"`               // invoices.couple_id
	VendorID              uint64        `json:"vendor_id"`               // invoices.vendor_id
	DiscountMode          DiscountMode  `json:"discount_mode"`           // invoices.discount_mode
	DiscountAmountCents   int64         `json:"discount_amount_cents"`   // invoices.discount_amount_cents
	DiscountPercent       int64         `json:"discount_percent"`        // invoices.discount_percent
	DepositPercent        int64         `json:"deposit_percent"`         // invoices.deposit_percent
	TotalAmountCents      int64         `json:"total_amount_cents"`      // invoices.total_amount_cents
	DepositAmountCents    int64         `json:"deposit_amount_cents"`    // invoices.deposit_amount_cents
	RemainingBalanceCents int64         `json:"remaining_balance_cents"` // invoices.remaining_balance_cents
	Status                InvoiceStatus `json:"status"`                  // invoices.status
	PaymentToken          string        `json:"payment_token"`           // invoices.payment_token
	PaidAt                *time.Time    `json:"paid_at"`                 // invoices.paid_at (nullable)
	CreatedAt             time.Time     `json:"created_at"`              // invoices.created_at
	UpdatedAt             time.Time     `json:"updated_at"`              // invoices.updated_at
}

// InvoiceLineItem is a single billable line on an invoice.  Its
// contribution to the subtotal is UnitPriceCents * Quantity.  Line items
// are written once at invoice creation and are not edited after the
// invoice leaves draft.
//
// Fields:
//  ID                – primary key identifier.
//  InvoiceID         – invoice the line belongs to.
//  Type              – price source (service_package, store_product, custom).
//  ReferenceID       – catalog reference for package/product lines (nullable).
//  CustomDescription – free-text description for custom lines.
//  UnitPriceCents    – price per unit in cents.
//  Quantity          – number of units, always >= 1.
//  CreatedAt         – creation timestamp.
type InvoiceLineItem struct {
	ID                uint64       `json:"id"`                 // invoice_line_items.id
	InvoiceID         uint64       `json:"invoice_id"`         // invoice_line_items.invoice_id
	Type              LineItemType `json:"type"`               // invoice_line_items.type
	ReferenceID       *uint64      `json:"reference_id"`       // invoice_line_items.reference_id (nullable)
	CustomDescription string       `json:"custom_description"` // invoice_line_items.custom_description
	UnitPriceCents    int64        `json:"unit_price_cents"`   // invoice_line_items.unit_price_cents
	Quantity          int64        `json:"quantity"`           // invoice_line_items.quantity
	CreatedAt         time.Time    `json:"created_at"`         // invoice_line_items.created_at
}
