package service

// In-memory fakes standing in for the marketplace data API and the
// payment gateway.  Each fake can be told to fail a specific operation
// so the partial-failure paths of the booking and payment flows can be
// exercised deterministically.

import (
	"context"
	"errors"
	"time"

	"github.com/DanielJKrikorian/admin-bremembered-sub001/internal/gateway"
	"github.com/DanielJKrikorian/admin-bremembered-sub001/internal/logger"
	"github.com/DanielJKrikorian/admin-bremembered-sub001/internal/model"
	"github.com/DanielJKrikorian/admin-bremembered-sub001/internal/queue"
	"github.com/sirupsen/logrus"
)

var errStore = errors.New("simulated store error")

func testLogger() *logrus.Logger {
	log := logger.New()
	log.SetLevel(logrus.PanicLevel) // keep test output quiet
	return log
}

type fakeEventStore struct {
	nextID     uint64
	events     map[uint64]model.Event
	failCreate bool
	failDelete bool
}

func newFakeEventStore() *fakeEventStore {
	return &fakeEventStore{events: map[uint64]model.Event{}}
}

func (f *fakeEventStore) Create(_ context.Context, e *model.Event) error {
	if f.failCreate {
		return errStore
	}
	f.nextID++
	e.ID = f.nextID
	f.events[e.ID] = *e
	return nil
}

func (f *fakeEventStore) Delete(_ context.Context, id uint64) error {
	if f.failDelete {
		return errStore
	}
	delete(f.events, id)
	return nil
}

type fakeBookingStore struct {
	nextID     uint64
	bookings   map[uint64]model.Booking
	failCreate bool
}

func newFakeBookingStore() *fakeBookingStore {
	return &fakeBookingStore{bookings: map[uint64]model.Booking{}}
}

func (f *fakeBookingStore) Create(_ context.Context, b *model.Booking) error {
	if f.failCreate {
		return errStore
	}
	f.nextID++
	b.ID = f.nextID
	f.bookings[b.ID] = *b
	return nil
}

func (f *fakeBookingStore) GetByID(_ context.Context, id uint64) (*model.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, errStore
	}
	return &b, nil
}

type fakeInvoiceStore struct {
	nextID    uint64
	invoices  map[uint64]model.Invoice
	items     map[uint64][]model.InvoiceLineItem
	failItems bool
}

func newFakeInvoiceStore() *fakeInvoiceStore {
	return &fakeInvoiceStore{
		invoices: map[uint64]model.Invoice{},
		items:    map[uint64][]model.InvoiceLineItem{},
	}
}

func (f *fakeInvoiceStore) Create(_ context.Context, inv *model.Invoice) error {
	f.nextID++
	inv.ID = f.nextID
	f.invoices[inv.ID] = *inv
	return nil
}

func (f *fakeInvoiceStore) InsertLineItems(_ context.Context, items []model.InvoiceLineItem) error {
	if f.failItems {
		return errStore
	}
	for _, it := range items {
		f.items[it.InvoiceID] = append(f.items[it.InvoiceID], it)
	}
	return nil
}

func (f *fakeInvoiceStore) GetByID(_ context.Context, id uint64) (*model.Invoice, error) {
	inv, ok := f.invoices[id]
	if !ok {
		return nil, errStore
	}
	return &inv, nil
}

func (f *fakeInvoiceStore) ListLineItems(_ context.Context, invoiceID uint64) ([]model.InvoiceLineItem, error) {
	return f.items[invoiceID], nil
}

func (f *fakeInvoiceStore) UpdateStatus(_ context.Context, id uint64, status model.InvoiceStatus) error {
	inv, ok := f.invoices[id]
	if !ok {
		return errStore
	}
	inv.Status = status
	f.invoices[id] = inv
	return nil
}

func (f *fakeInvoiceStore) UpdateBalance(_ context.Context, id uint64, remaining int64, status model.InvoiceStatus, paidAt *time.Time) error {
	inv, ok := f.invoices[id]
	if !ok {
		return errStore
	}
	inv.RemainingBalanceCents = remaining
	inv.Status = status
	inv.PaidAt = paidAt
	f.invoices[id] = inv
	return nil
}

type fakePaymentStore struct {
	nextID   uint64
	payments []model.Payment
}

func (f *fakePaymentStore) Create(_ context.Context, p *model.Payment) error {
	f.nextID++
	p.ID = f.nextID
	f.payments = append(f.payments, *p)
	return nil
}

func (f *fakePaymentStore) ListByInvoice(_ context.Context, invoiceID uint64) ([]model.Payment, error) {
	out := make([]model.Payment, 0)
	for _, p := range f.payments {
		if p.InvoiceID != nil && *p.InvoiceID == invoiceID {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakePackageStore struct {
	packages map[uint64]model.ServicePackage
}

func (f *fakePackageStore) GetByID(_ context.Context, id uint64) (*model.ServicePackage, error) {
	p, ok := f.packages[id]
	if !ok {
		return nil, errStore
	}
	return &p, nil
}

type fakePartyStore struct {
	vendors map[uint64]model.Vendor
}

func (f *fakePartyStore) GetVendor(_ context.Context, id uint64) (*model.Vendor, error) {
	v, ok := f.vendors[id]
	if !ok {
		return nil, errStore
	}
	return &v, nil
}

type fakePublisher struct {
	paid         []queue.InvoicePaidEvent
	sent         []queue.InvoiceSentEvent
	compensation []queue.CompensationFailedEvent
}

func (f *fakePublisher) PublishInvoicePaid(_ context.Context, ev queue.InvoicePaidEvent) error {
	f.paid = append(f.paid, ev)
	return nil
}

func (f *fakePublisher) PublishInvoiceSent(_ context.Context, ev queue.InvoiceSentEvent) error {
	f.sent = append(f.sent, ev)
	return nil
}

func (f *fakePublisher) PublishCompensationFailed(_ context.Context, ev queue.CompensationFailedEvent) error {
	f.compensation = append(f.compensation, ev)
	return nil
}

// fakeGateway scripts intent creation and confirmation outcomes.
type fakeGateway struct {
	createErr     error
	confirmErr    error
	confirmStatus gateway.Status
	created       []int64  // amounts passed to CreateIntent
	routing       []string // routing accounts passed to CreateIntent
}

func (f *fakeGateway) CreateIntent(_ context.Context, amountCents int64, routingAccount string) (gateway.Intent, error) {
	if f.createErr != nil {
		return gateway.Intent{}, f.createErr
	}
	f.created = append(f.created, amountCents)
	f.routing = append(f.routing, routingAccount)
	return gateway.Intent{ID: "pi_test_1", ClientSecret: "secret"}, nil
}

func (f *fakeGateway) ConfirmIntent(_ context.Context, intentID, _ string) (gateway.Status, error) {
	if f.confirmErr != nil {
		return "", f.confirmErr
	}
	if f.confirmStatus == "" {
		return gateway.StatusSucceeded, nil
	}
	return f.confirmStatus, nil
}
