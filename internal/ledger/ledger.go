// Package ledger implements the pure monetary calculations behind
// invoices: subtotals, discounts, deposits and remaining balances.  All
// amounts are integer cents and all functions are side-effect free, so
// recomputing over the same inputs always yields the same result.  That
// idempotence is what makes it safe for the payment flow to recompute an
// invoice's balance from the full payment set instead of decrementing a
// stored value in place.
package ledger

import (
	"errors"
	"fmt"

	"github.com/DanielJKrikorian/admin-bremembered-sub001/internal/model"
)

// ErrInvalidQuantity is returned when a line item has a quantity below one.
var ErrInvalidQuantity = errors.New("line item quantity must be at least 1")

// ErrInvalidPrice is returned when a line item has a negative unit price.
var ErrInvalidPrice = errors.New("line item unit price must not be negative")

// DiscountSpec describes the discount applied to an invoice.  Exactly one
// of AmountCents or Percent is authoritative, selected by Mode; the
// other field is ignored.
type DiscountSpec struct {
	Mode        model.DiscountMode
	AmountCents int64
	Percent     int64
}

// Summary holds every derived amount for an invoice in one place.  It is
// what the console shows staff and what gets persisted onto the invoice
// row at creation time.
type Summary struct {
	SubtotalCents  int64 `json:"subtotal_cents"`
	DiscountCents  int64 `json:"discount_cents"`
	TotalCents     int64 `json:"total_cents"`
	DepositCents   int64 `json:"deposit_cents"`
	RemainingCents int64 `json:"remaining_cents"`
}

// Subtotal sums unit_price * quantity over all line items.  The result is
// independent of item order.  It fails with ErrInvalidQuantity or
// ErrInvalidPrice (wrapped with the offending position) before touching
// any arithmetic, so a bad line never contributes a partial sum.
func Subtotal(items []model.InvoiceLineItem) (int64, error) {
	for i, it := range items {
		if it.Quantity < 1 {
			return 0, fmt.Errorf("line %d: %w", i+1, ErrInvalidQuantity)
		}
		if it.UnitPriceCents < 0 {
			return 0, fmt.Errorf("line %d: %w", i+1, ErrInvalidPrice)
		}
	}
	var sum int64
	for _, it := range items {
		sum += it.UnitPriceCents * it.Quantity
	}
	return sum, nil
}

// DiscountAmount resolves a discount spec against a subtotal.  Percentage
// discounts round half-up to the nearest cent, applied once.  The result
// is clamped to [0, subtotal]: a discount can never push a total
// negative, whichever mode is in use.
func DiscountAmount(subtotal int64, spec DiscountSpec) int64 {
	var d int64
	switch spec.Mode {
	case model.DiscountPercentage:
		d = percentOf(subtotal, spec.Percent)
	default:
		d = spec.AmountCents
	}
	if d < 0 {
		return 0
	}
	if d > subtotal {
		return subtotal
	}
	return d
}

// Total is the amount owed after discount.
func Total(subtotal, discount int64) int64 {
	return subtotal - discount
}

// DepositAmount computes the up-front deposit from a total.  A zero or
// negative deposit percentage means no deposit.
func DepositAmount(total, depositPercent int64) int64 {
	if depositPercent <= 0 {
		return 0
	}
	return percentOf(total, depositPercent)
}

// RemainingBalance subtracts every succeeded payment from the total.
// Pending and failed payments contribute nothing.  The balance is
// floored at zero; the second return value reports whether succeeded
// payments exceeded the total, so callers can flag the overpayment for
// review instead of showing a negative balance.
func RemainingBalance(total int64, payments []model.Payment) (int64, bool) {
	var paid int64
	for _, p := range payments {
		if p.Status == model.PaymentSucceeded {
			paid += p.AmountCents
		}
	}
	remaining := total - paid
	if remaining < 0 {
		return 0, true
	}
	return remaining, false
}

// Compute runs the full calculation pipeline for an invoice: subtotal,
// discount, total, deposit and remaining balance over the given payment
// history.  With no payments the remaining balance equals the total.
func Compute(items []model.InvoiceLineItem, spec DiscountSpec, depositPercent int64, payments []model.Payment) (Summary, error) {
	subtotal, err := Subtotal(items)
	if err != nil {
		return Summary{}, err
	}
	discount := DiscountAmount(subtotal, spec)
	total := Total(subtotal, discount)
	remaining, _ := RemainingBalance(total, payments)
	return Summary{
		SubtotalCents:  subtotal,
		DiscountCents:  discount,
		TotalCents:     total,
		DepositCents:   DepositAmount(total, depositPercent),
		RemainingCents: remaining,
	}, nil
}

// percentOf returns pct percent of amount in cents, rounding half-up.
// Both arguments are expected to be non-negative.
func percentOf(amount, pct int64) int64 {
	if amount <= 0 || pct <= 0 {
		return 0
	}
	return (amount*pct + 50) / 100
}
