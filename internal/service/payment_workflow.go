package service

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/DanielJKrikorian/admin-bremembered-sub001/internal/gateway"
	"github.com/DanielJKrikorian/admin-bremembered-sub001/internal/model"
)

// PaymentWorkflow drives the gateway through intent creation and
// confirmation and reconciles the outcome into the payment table and
// the invoice ledger.  A payment row is only ever written once a
// terminal gateway outcome is known, so the ledger never accumulates
// pending-forever entries: a transport failure before confirmation
// leaves no row at all, and re-invoking the whole workflow is the only
// retry mechanism.
type PaymentWorkflow struct {
	gw       gateway.Client
	payments PaymentStore
	invoices *InvoiceService
	bookings BookingStore
	parties  PartyStore
	log      *logrus.Logger
}

// NewPaymentWorkflow wires the workflow's dependencies.
func NewPaymentWorkflow(gw gateway.Client, payments PaymentStore, invoices *InvoiceService, bookings BookingStore, parties PartyStore, log *logrus.Logger) *PaymentWorkflow {
	return &PaymentWorkflow{gw: gw, payments: payments, invoices: invoices, bookings: bookings, parties: parties, log: log}
}

// PaymentAttemptInput describes one charge attempt.  Exactly one of
// InvoiceID or BookingID must be set.  PaymentMethod is the opaque
// method token the gateway handed the client after collecting card
// details; raw card data never passes through this service.
type PaymentAttemptInput struct {
	InvoiceID     *uint64
	BookingID     *uint64
	AmountCents   int64
	Type          model.PaymentType
	PaymentMethod string
}

// RecordPaymentAttempt runs the full workflow: validate, create the
// gateway intent, confirm it, persist the outcome, and — for
// invoice-scoped payments that succeeded — recompute the invoice
// balance.  The returned payment is nil exactly when no row was
// written, so the caller always knows whether the attempt left a
// record.
func (w *PaymentWorkflow) RecordPaymentAttempt(ctx context.Context, in PaymentAttemptInput) (*model.Payment, error) {
	if in.AmountCents <= 0 {
		return nil, ErrInvalidAmount
	}
	if (in.InvoiceID == nil) == (in.BookingID == nil) {
		return nil, ValidationError{Field: "target", Msg: "exactly one of invoice_id or booking_id is required"}
	}
	if in.PaymentMethod == "" {
		return nil, ValidationError{Field: "payment_method", Msg: "is required"}
	}

	routing, toPlatform, err := w.resolveRouting(ctx, in)
	if err != nil {
		return nil, err
	}

	// Step 1: intent creation.  Any error here means no money moved and
	// no payment row exists; the operator can simply retry.
	intent, err := w.gw.CreateIntent(ctx, in.AmountCents, routing)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}

	// Step 2: confirmation.  A transport failure leaves the outcome
	// unknown, so no row is written for that case either.
	status, err := w.gw.ConfirmIntent(ctx, intent.ID, in.PaymentMethod)
	if err != nil {
		return nil, fmt.Errorf("%w: confirm intent %s: %v", ErrGatewayUnavailable, intent.ID, err)
	}

	// Step 3: outcome reconciliation.
	gwID := intent.ID
	p := &model.Payment{
		InvoiceID:        in.InvoiceID,
		BookingID:        in.BookingID,
		AmountCents:      in.AmountCents,
		Type:             in.Type,
		ToPlatform:       toPlatform,
		GatewayPaymentID: &gwID,
	}

	if status != gateway.StatusSucceeded {
		p.Status = model.PaymentFailed
		if err := w.payments.Create(ctx, p); err != nil {
			return nil, fmt.Errorf("record failed payment for intent %s: %w", intent.ID, err)
		}
		w.log.WithFields(logrus.Fields{
			"payment_id": p.ID,
			"intent_id":  intent.ID,
			"status":     string(status),
		}).Warn("payment not confirmed")
		return p, fmt.Errorf("%w: gateway status %q", ErrPaymentNotConfirmed, status)
	}

	p.Status = model.PaymentSucceeded
	if err := w.payments.Create(ctx, p); err != nil {
		// Money moved but the record is missing; this must reach an
		// operator, not disappear into a generic 500.
		w.log.WithFields(logrus.Fields{
			"intent_id": intent.ID,
			"amount":    in.AmountCents,
		}).Error("gateway charge succeeded but payment row insert failed")
		return nil, fmt.Errorf("charge %s succeeded but payment record failed: %w", intent.ID, err)
	}

	if in.InvoiceID != nil {
		if _, err := w.invoices.ApplyPayment(ctx, *in.InvoiceID); err != nil {
			// The payment row exists; the derived balance is stale until
			// the next recomputation.  Surface it rather than pretend the
			// ledger is current.
			w.log.WithFields(logrus.Fields{
				"payment_id": p.ID,
				"invoice_id": *in.InvoiceID,
			}).Error("payment recorded but balance recomputation failed")
			return p, fmt.Errorf("payment %d recorded but invoice %d balance update failed: %w", p.ID, *in.InvoiceID, err)
		}
	}

	w.log.WithFields(logrus.Fields{
		"payment_id": p.ID,
		"intent_id":  intent.ID,
		"amount":     in.AmountCents,
	}).Info("payment succeeded")
	return p, nil
}

// resolveRouting looks up the vendor behind the target and returns the
// connected gateway account to route funds to.  An empty account means
// the charge lands on the platform account (to_platform = true).
func (w *PaymentWorkflow) resolveRouting(ctx context.Context, in PaymentAttemptInput) (string, bool, error) {
	var vendorID uint64
	switch {
	case in.InvoiceID != nil:
		inv, _, err := w.invoices.Get(ctx, *in.InvoiceID)
		if err != nil {
			return "", false, ValidationError{Field: "invoice_id", Msg: "unknown invoice"}
		}
		vendorID = inv.VendorID
	case in.BookingID != nil:
		b, err := w.bookings.GetByID(ctx, *in.BookingID)
		if err != nil {
			return "", false, ValidationError{Field: "booking_id", Msg: "unknown booking"}
		}
		vendorID = b.VendorID
	}
	vendor, err := w.parties.GetVendor(ctx, vendorID)
	if err != nil {
		return "", false, fmt.Errorf("resolve vendor %d: %w", vendorID, err)
	}
	if vendor.GatewayAccountID == nil || *vendor.GatewayAccountID == "" {
		return "", true, nil
	}
	return *vendor.GatewayAccountID, false, nil
}
