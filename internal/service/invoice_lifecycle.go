package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/DanielJKrikorian/admin-bremembered-sub001/internal/ledger"
	"github.com/DanielJKrikorian/admin-bremembered-sub001/internal/model"
	"github.com/DanielJKrikorian/admin-bremembered-sub001/internal/queue"
	"github.com/DanielJKrikorian/admin-bremembered-sub001/internal/utils"
)

// InvoiceService owns the invoice lifecycle: draft -> sent -> paid.
// All derived amounts come from the ledger calculator; this service
// never does arithmetic of its own.  The remaining balance is always
// recomputed from the full succeeded-payment set rather than
// decremented in place, so two concurrent payments against the same
// invoice converge to a correct total even when applied out of order.
type InvoiceService struct {
	invoices InvoiceStore
	payments PaymentStore
	packages PackageStore
	pub      EventPublisher
	log      *logrus.Logger

	// shareBaseURL is the public prefix payment links are built from,
	// e.g. "https://pay.bremembered.com/i/".
	shareBaseURL string
}

// NewInvoiceService wires the lifecycle's dependencies.
func NewInvoiceService(invoices InvoiceStore, payments PaymentStore, packages PackageStore, pub EventPublisher, log *logrus.Logger, shareBaseURL string) *InvoiceService {
	return &InvoiceService{
		invoices:     invoices,
		payments:     payments,
		packages:     packages,
		pub:          pub,
		log:          log,
		shareBaseURL: shareBaseURL,
	}
}

// LineItemInput is one billable line as entered by staff.  For
// service_package lines the catalog price and service name overwrite
// whatever was typed; custom lines keep the entered price.
type LineItemInput struct {
	Type              model.LineItemType
	ReferenceID       *uint64
	CustomDescription string
	UnitPriceCents    int64
	Quantity          int64
}

// CreateInvoiceInput carries everything needed to draft an invoice.
type CreateInvoiceInput struct {
	CoupleID       uint64
	VendorID       uint64
	Items          []LineItemInput
	Discount       ledger.DiscountSpec
	DepositPercent int64
}

// CreateInvoice validates the input, runs the calculator and persists
// the invoice followed by its line items.  The two writes hit separate
// tables with no shared transaction; the invoice row goes first so a
// partial failure leaves a draft with no lines rather than dangling
// lines with no invoice.
func (s *InvoiceService) CreateInvoice(ctx context.Context, in CreateInvoiceInput) (*model.Invoice, []model.InvoiceLineItem, error) {
	if in.CoupleID == 0 {
		return nil, nil, ValidationError{Field: "couple_id", Msg: "is required"}
	}
	if in.VendorID == 0 {
		return nil, nil, ValidationError{Field: "vendor_id", Msg: "is required"}
	}
	if len(in.Items) == 0 {
		return nil, nil, ValidationError{Field: "line_items", Msg: "at least one is required"}
	}

	items, err := s.resolveItems(ctx, in.Items)
	if err != nil {
		return nil, nil, err
	}

	// Selecting one discount mode resets the other field to zero.
	discount := normalizeDiscount(in.Discount)

	summary, err := ledger.Compute(items, discount, in.DepositPercent, nil)
	if err != nil {
		return nil, nil, ValidationError{Field: "line_items", Msg: err.Error()}
	}

	token, err := utils.NewPaymentToken()
	if err != nil {
		return nil, nil, fmt.Errorf("generate payment token: %w", err)
	}

	inv := &model.Invoice{
		CoupleID:              in.CoupleID,
		VendorID:              in.VendorID,
		DiscountMode:          discount.Mode,
		DiscountAmountCents:   discount.AmountCents,
		DiscountPercent:       discount.Percent,
		DepositPercent:        in.DepositPercent,
		TotalAmountCents:      summary.TotalCents,
		DepositAmountCents:    summary.DepositCents,
		RemainingBalanceCents: summary.TotalCents, // no payments yet
		Status:                model.InvoiceDraft,
		PaymentToken:          token,
	}
	if err := s.invoices.Create(ctx, inv); err != nil {
		return nil, nil, fmt.Errorf("create invoice: %w", err)
	}

	for i := range items {
		items[i].InvoiceID = inv.ID
	}
	if err := s.invoices.InsertLineItems(ctx, items); err != nil {
		// The draft exists without its lines; surface the failure so
		// staff do not send an empty invoice.
		s.log.WithFields(logrus.Fields{"invoice_id": inv.ID}).Error("line item insert failed after invoice create")
		return nil, nil, fmt.Errorf("insert line items for invoice %d: %w", inv.ID, err)
	}

	s.log.WithFields(logrus.Fields{
		"invoice_id": inv.ID,
		"total":      summary.TotalCents,
		"deposit":    summary.DepositCents,
	}).Info("invoice created")
	return inv, items, nil
}

// MarkSent transitions a draft invoice to sent.  Re-sending an
// already-sent invoice is a no-op; a paid invoice cannot be sent again.
func (s *InvoiceService) MarkSent(ctx context.Context, invoiceID uint64) (*model.Invoice, error) {
	inv, err := s.invoices.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	switch inv.Status {
	case model.InvoicePaid:
		return nil, fmt.Errorf("%w: invoice %d is already paid", ErrInvalidTransition, invoiceID)
	case model.InvoiceSent:
		return inv, nil
	}
	if err := s.invoices.UpdateStatus(ctx, invoiceID, model.InvoiceSent); err != nil {
		return nil, err
	}
	inv.Status = model.InvoiceSent
	return inv, nil
}

// SendEmail marks the invoice sent and hands the payment link to the
// mailer over the broker.  Mail dispatch itself happens outside this
// service; a publish failure is logged but does not undo the sent
// transition.
func (s *InvoiceService) SendEmail(ctx context.Context, invoiceID uint64) (*model.Invoice, error) {
	inv, err := s.MarkSent(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if s.pub != nil {
		if err := s.pub.PublishInvoiceSent(ctx, queue.InvoiceSentEvent{
			InvoiceID:    inv.ID,
			CoupleID:     inv.CoupleID,
			PaymentToken: inv.PaymentToken,
			ShareLink:    s.ShareLink(inv),
		}); err != nil {
			s.log.WithFields(logrus.Fields{"invoice_id": inv.ID}).Warn("invoice email event publish failed")
		}
	}
	return inv, nil
}

// ShareLink builds the shareable payment URL from the invoice's token.
func (s *InvoiceService) ShareLink(inv *model.Invoice) string {
	return s.shareBaseURL + inv.PaymentToken
}

// ApplyPayment recomputes the invoice's remaining balance from the full
// set of recorded payments after a new payment reaches a terminal
// state.  When the balance hits zero the invoice flips to paid and
// paid_at is stamped.  Succeeded payments beyond the total are floored
// to a zero balance and flagged for review, never shown as negative.
func (s *InvoiceService) ApplyPayment(ctx context.Context, invoiceID uint64) (*model.Invoice, error) {
	inv, err := s.invoices.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	payments, err := s.payments.ListByInvoice(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	remaining, overpaid := ledger.RemainingBalance(inv.TotalAmountCents, payments)
	if overpaid {
		s.log.WithFields(logrus.Fields{
			"invoice_id": invoiceID,
			"total":      inv.TotalAmountCents,
		}).Warn("invoice overpaid; balance floored at zero, flagged for review")
	}

	status := inv.Status
	paidAt := inv.PaidAt
	if remaining == 0 && status != model.InvoicePaid {
		status = model.InvoicePaid
		now := time.Now().UTC()
		paidAt = &now
	}
	if err := s.invoices.UpdateBalance(ctx, invoiceID, remaining, status, paidAt); err != nil {
		return nil, err
	}

	inv.RemainingBalanceCents = remaining
	if status == model.InvoicePaid && inv.Status != model.InvoicePaid {
		inv.Status = model.InvoicePaid
		inv.PaidAt = paidAt
		if s.pub != nil {
			_ = s.pub.PublishInvoicePaid(ctx, queue.InvoicePaidEvent{
				InvoiceID:        inv.ID,
				CoupleID:         inv.CoupleID,
				VendorID:         inv.VendorID,
				TotalAmountCents: inv.TotalAmountCents,
				PaidAt:           paidAt.Format(time.RFC3339),
			})
		}
	}
	return inv, nil
}

// Ledger recomputes the full summary for an invoice: subtotal,
// discount, total, deposit and remaining balance over the payment
// history.  Because the calculator is pure, calling this twice over the
// same rows yields identical numbers.
func (s *InvoiceService) Ledger(ctx context.Context, invoiceID uint64) (ledger.Summary, error) {
	inv, err := s.invoices.GetByID(ctx, invoiceID)
	if err != nil {
		return ledger.Summary{}, err
	}
	items, err := s.invoices.ListLineItems(ctx, invoiceID)
	if err != nil {
		return ledger.Summary{}, err
	}
	payments, err := s.payments.ListByInvoice(ctx, invoiceID)
	if err != nil {
		return ledger.Summary{}, err
	}
	return ledger.Compute(items, ledger.DiscountSpec{
		Mode:        inv.DiscountMode,
		AmountCents: inv.DiscountAmountCents,
		Percent:     inv.DiscountPercent,
	}, inv.DepositPercent, payments)
}

// Get returns an invoice with its line items.
func (s *InvoiceService) Get(ctx context.Context, invoiceID uint64) (*model.Invoice, []model.InvoiceLineItem, error) {
	inv, err := s.invoices.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, nil, err
	}
	items, err := s.invoices.ListLineItems(ctx, invoiceID)
	if err != nil {
		return nil, nil, err
	}
	return inv, items, nil
}

// resolveItems converts staff input into line items, applying the
// destructive package-selection semantic: a service_package line takes
// its price and description from the catalog, discarding any manual
// price.
func (s *InvoiceService) resolveItems(ctx context.Context, in []LineItemInput) ([]model.InvoiceLineItem, error) {
	items := make([]model.InvoiceLineItem, 0, len(in))
	for i, li := range in {
		item := model.InvoiceLineItem{
			Type:              li.Type,
			ReferenceID:       li.ReferenceID,
			CustomDescription: li.CustomDescription,
			UnitPriceCents:    li.UnitPriceCents,
			Quantity:          li.Quantity,
		}
		if li.Type == model.LineItemServicePackage {
			if li.ReferenceID == nil {
				return nil, ValidationError{Field: fmt.Sprintf("line_items[%d]", i), Msg: "service_package line needs reference_id"}
			}
			pkg, err := s.packages.GetByID(ctx, *li.ReferenceID)
			if err != nil {
				return nil, ValidationError{Field: fmt.Sprintf("line_items[%d]", i), Msg: "unknown service package"}
			}
			item.UnitPriceCents = pkg.PriceCents
			item.CustomDescription = pkg.Name
		}
		items = append(items, item)
	}
	return items, nil
}

// normalizeDiscount zeroes the field that is not authoritative for the
// selected mode.
func normalizeDiscount(d ledger.DiscountSpec) ledger.DiscountSpec {
	switch d.Mode {
	case model.DiscountPercentage:
		d.AmountCents = 0
	default:
		d.Mode = model.DiscountDollar
		d.Percent = 0
	}
	return d
}
