package service

import (
	"context"
	"errors"
	"testing"

	"github.com/DanielJKrikorian/admin-bremembered-sub001/internal/gateway"
	"github.com/DanielJKrikorian/admin-bremembered-sub001/internal/ledger"
	"github.com/DanielJKrikorian/admin-bremembered-sub001/internal/model"
)

type workflowFixture struct {
	gw       *fakeGateway
	payments *fakePaymentStore
	invoices *fakeInvoiceStore
	bookings *fakeBookingStore
	parties  *fakePartyStore
	invSvc   *InvoiceService
	wf       *PaymentWorkflow
}

func newWorkflowFixture(t *testing.T) *workflowFixture {
	t.Helper()
	acct := "acct_vendor_2"
	f := &workflowFixture{
		gw:       &fakeGateway{},
		payments: &fakePaymentStore{},
		invoices: newFakeInvoiceStore(),
		bookings: newFakeBookingStore(),
		parties: &fakePartyStore{vendors: map[uint64]model.Vendor{
			2: {ID: 2, DisplayName: "Vendor Two", GatewayAccountID: &acct},
			3: {ID: 3, DisplayName: "Platform Vendor"},
		}},
	}
	f.invSvc = NewInvoiceService(f.invoices, f.payments, &fakePackageStore{}, &fakePublisher{}, testLogger(), "https://pay.example.com/i/")
	f.wf = NewPaymentWorkflow(f.gw, f.payments, f.invSvc, f.bookings, f.parties, testLogger())
	return f
}

// seedInvoice drafts a 17000-cent invoice for vendor 2.
func (f *workflowFixture) seedInvoice(t *testing.T) *model.Invoice {
	t.Helper()
	inv, _, err := f.invSvc.CreateInvoice(context.Background(), CreateInvoiceInput{
		CoupleID: 1,
		VendorID: 2,
		Items: []LineItemInput{
			{Type: model.LineItemCustom, CustomDescription: "coverage", UnitPriceCents: 20000, Quantity: 1},
		},
		Discount: ledger.DiscountSpec{Mode: model.DiscountDollar, AmountCents: 3000},
	})
	if err != nil {
		t.Fatalf("seed invoice: %v", err)
	}
	return inv
}

func TestRecordPaymentAttemptSuccessUpdatesBalance(t *testing.T) {
	f := newWorkflowFixture(t)
	inv := f.seedInvoice(t)

	id := inv.ID
	p, err := f.wf.RecordPaymentAttempt(context.Background(), PaymentAttemptInput{
		InvoiceID:     &id,
		AmountCents:   8500,
		Type:          model.PaymentDeposit,
		PaymentMethod: "pm_card_visa",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Status != model.PaymentSucceeded {
		t.Errorf("status = %q, want succeeded", p.Status)
	}
	if p.GatewayPaymentID == nil || *p.GatewayPaymentID == "" {
		t.Error("succeeded payment must carry the gateway intent id")
	}
	if p.ToPlatform {
		t.Error("vendor has a connected account; charge must not route to platform")
	}
	if got := f.gw.routing[0]; got != "acct_vendor_2" {
		t.Errorf("routing account = %q, want acct_vendor_2", got)
	}

	after, err := f.invoices.GetByID(context.Background(), id)
	if err != nil {
		t.Fatal(err)
	}
	if after.RemainingBalanceCents != 8500 {
		t.Errorf("remaining = %d, want 8500 after the deposit", after.RemainingBalanceCents)
	}
}

func TestRecordPaymentAttemptIntentFailureWritesNothing(t *testing.T) {
	f := newWorkflowFixture(t)
	inv := f.seedInvoice(t)
	f.gw.createErr = errors.New("dial tcp: connection refused")

	id := inv.ID
	p, err := f.wf.RecordPaymentAttempt(context.Background(), PaymentAttemptInput{
		InvoiceID:     &id,
		AmountCents:   8500,
		Type:          model.PaymentDeposit,
		PaymentMethod: "pm_card_visa",
	})
	if !errors.Is(err, ErrGatewayUnavailable) {
		t.Fatalf("want ErrGatewayUnavailable, got %v", err)
	}
	if p != nil {
		t.Error("no payment should be returned when the gateway is unreachable")
	}
	if len(f.payments.payments) != 0 {
		t.Error("no payment row may exist after a transport failure")
	}

	after, _ := f.invoices.GetByID(context.Background(), id)
	if after.RemainingBalanceCents != inv.RemainingBalanceCents {
		t.Error("invoice balance must be untouched")
	}
}

func TestRecordPaymentAttemptConfirmTransportFailureWritesNothing(t *testing.T) {
	f := newWorkflowFixture(t)
	inv := f.seedInvoice(t)
	f.gw.confirmErr = errors.New("i/o timeout")

	id := inv.ID
	_, err := f.wf.RecordPaymentAttempt(context.Background(), PaymentAttemptInput{
		InvoiceID:     &id,
		AmountCents:   8500,
		Type:          model.PaymentDeposit,
		PaymentMethod: "pm_card_visa",
	})
	if !errors.Is(err, ErrGatewayUnavailable) {
		t.Fatalf("want ErrGatewayUnavailable, got %v", err)
	}
	if len(f.payments.payments) != 0 {
		t.Error("outcome unknown; no row may be written")
	}
}

func TestRecordPaymentAttemptDeclineRecordsFailedRow(t *testing.T) {
	f := newWorkflowFixture(t)
	inv := f.seedInvoice(t)
	f.gw.confirmStatus = gateway.StatusFailed

	id := inv.ID
	p, err := f.wf.RecordPaymentAttempt(context.Background(), PaymentAttemptInput{
		InvoiceID:     &id,
		AmountCents:   8500,
		Type:          model.PaymentDeposit,
		PaymentMethod: "pm_card_declined",
	})
	if !errors.Is(err, ErrPaymentNotConfirmed) {
		t.Fatalf("want ErrPaymentNotConfirmed, got %v", err)
	}
	if p == nil || p.Status != model.PaymentFailed {
		t.Fatalf("a failed row should be returned, got %+v", p)
	}
	if len(f.payments.payments) != 1 {
		t.Fatal("exactly one failed payment row should exist")
	}

	// The failed row must not affect the ledger.
	after, _ := f.invoices.GetByID(context.Background(), id)
	if after.RemainingBalanceCents != 17000 {
		t.Errorf("remaining = %d, want untouched 17000", after.RemainingBalanceCents)
	}
}

func TestRecordPaymentAttemptValidation(t *testing.T) {
	f := newWorkflowFixture(t)
	inv := f.seedInvoice(t)
	id := inv.ID
	bookingID := uint64(12)

	cases := []struct {
		name string
		in   PaymentAttemptInput
		want error
	}{
		{"zero amount", PaymentAttemptInput{InvoiceID: &id, AmountCents: 0, PaymentMethod: "pm"}, ErrInvalidAmount},
		{"negative amount", PaymentAttemptInput{InvoiceID: &id, AmountCents: -100, PaymentMethod: "pm"}, ErrInvalidAmount},
		{"no target", PaymentAttemptInput{AmountCents: 100, PaymentMethod: "pm"}, nil},
		{"both targets", PaymentAttemptInput{InvoiceID: &id, BookingID: &bookingID, AmountCents: 100, PaymentMethod: "pm"}, nil},
		{"missing method", PaymentAttemptInput{InvoiceID: &id, AmountCents: 100}, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.wf.RecordPaymentAttempt(context.Background(), tc.in)
			if tc.want != nil {
				if !errors.Is(err, tc.want) {
					t.Fatalf("want %v, got %v", tc.want, err)
				}
				return
			}
			var verr ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("want ValidationError, got %v", err)
			}
		})
	}
	if len(f.payments.payments) != 0 {
		t.Error("validation failures must not write rows")
	}
}

func TestRecordPaymentAttemptBookingScopedRoutesToPlatform(t *testing.T) {
	f := newWorkflowFixture(t)
	b := &model.Booking{CoupleID: 1, VendorID: 3, Status: model.BookingPending, AmountCents: 50000}
	if err := f.bookings.Create(context.Background(), b); err != nil {
		t.Fatal(err)
	}

	id := b.ID
	p, err := f.wf.RecordPaymentAttempt(context.Background(), PaymentAttemptInput{
		BookingID:     &id,
		AmountCents:   50000,
		Type:          model.PaymentFull,
		PaymentMethod: "pm_card_visa",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !p.ToPlatform {
		t.Error("vendor without a connected account must route to the platform")
	}
	if got := f.gw.routing[0]; got != "" {
		t.Errorf("routing account = %q, want empty for platform charges", got)
	}
	if p.BookingID == nil || *p.BookingID != b.ID {
		t.Error("payment should be scoped to the booking")
	}
}

func TestRecordPaymentAttemptFullPaymentMarksInvoicePaid(t *testing.T) {
	f := newWorkflowFixture(t)
	inv := f.seedInvoice(t)

	id := inv.ID
	_, err := f.wf.RecordPaymentAttempt(context.Background(), PaymentAttemptInput{
		InvoiceID:     &id,
		AmountCents:   17000,
		Type:          model.PaymentFull,
		PaymentMethod: "pm_card_visa",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	after, _ := f.invoices.GetByID(context.Background(), id)
	if after.Status != model.InvoicePaid {
		t.Errorf("status = %q, want paid", after.Status)
	}
	if after.RemainingBalanceCents != 0 {
		t.Errorf("remaining = %d, want 0", after.RemainingBalanceCents)
	}
	if after.PaidAt == nil {
		t.Error("paid_at should be stamped")
	}
}
