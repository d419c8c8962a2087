package service

import (
	"context"
	"time"

	"github.com/DanielJKrikorian/admin-bremembered-sub001/internal/model"
	"github.com/DanielJKrikorian/admin-bremembered-sub001/internal/queue"
)

// The store interfaces below are the slices of the repository layer the
// flows actually consume.  The data API behind them offers row-level
// CRUD only — no transaction spans two tables — which is why the
// booking flow compensates instead of rolling back.  Tests substitute
// in-memory fakes.

// EventStore writes and deletes calendar events.
type EventStore interface {
	Create(ctx context.Context, e *model.Event) error
	Delete(ctx context.Context, id uint64) error
}

// BookingStore writes and reads bookings.
type BookingStore interface {
	Create(ctx context.Context, b *model.Booking) error
	GetByID(ctx context.Context, id uint64) (*model.Booking, error)
}

// InvoiceStore persists invoices and their line items.
type InvoiceStore interface {
	Create(ctx context.Context, inv *model.Invoice) error
	InsertLineItems(ctx context.Context, items []model.InvoiceLineItem) error
	GetByID(ctx context.Context, id uint64) (*model.Invoice, error)
	ListLineItems(ctx context.Context, invoiceID uint64) ([]model.InvoiceLineItem, error)
	UpdateStatus(ctx context.Context, id uint64, status model.InvoiceStatus) error
	UpdateBalance(ctx context.Context, id uint64, remaining int64, status model.InvoiceStatus, paidAt *time.Time) error
}

// PaymentStore appends payment rows and lists payment history.
type PaymentStore interface {
	Create(ctx context.Context, p *model.Payment) error
	ListByInvoice(ctx context.Context, invoiceID uint64) ([]model.Payment, error)
}

// PackageStore resolves service packages from the catalog.
type PackageStore interface {
	GetByID(ctx context.Context, id uint64) (*model.ServicePackage, error)
}

// PartyStore reads couples and vendors for validation and payment
// routing.
type PartyStore interface {
	GetVendor(ctx context.Context, id uint64) (*model.Vendor, error)
}

// EventPublisher emits domain events to the message broker.  A nil
// publisher disables publishing; the flows treat delivery as
// best-effort except where noted.
type EventPublisher interface {
	PublishInvoicePaid(ctx context.Context, ev queue.InvoicePaidEvent) error
	PublishInvoiceSent(ctx context.Context, ev queue.InvoiceSentEvent) error
	PublishCompensationFailed(ctx context.Context, ev queue.CompensationFailedEvent) error
}
