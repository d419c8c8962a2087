// Package service implements the financial and booking core of the
// operations console: the booking saga, the invoice lifecycle and the
// payment workflow.  This file defines the error taxonomy those flows
// surface.  Every failure kind maps to a distinct condition so handlers
// can produce a precise, human-readable message — financial operations
// never fail silently.
package service

import (
	"errors"
	"fmt"
)

// ValidationError reports bad input rejected before any write reaches
// the data store.
type ValidationError struct {
	Field string
	Msg   string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation: %s %s", e.Field, e.Msg)
}

// ErrEventCreationFailed means the booking flow could not create the
// blocked-time event; no booking was attempted.
var ErrEventCreationFailed = errors.New("event creation failed")

// ErrBookingCreationFailed means the booking insert failed after the
// event was created; the event was successfully deleted again, so no
// partial state remains.
var ErrBookingCreationFailed = errors.New("booking creation failed")

// ErrCompensationFailed means the booking insert failed AND the
// compensating event delete also failed.  An orphaned blocked-time
// event remains on the vendor's calendar; this condition is urgent and
// always operator-visible.
var ErrCompensationFailed = errors.New("compensation failed: orphaned blocked-time event")

// ErrGatewayUnavailable means the payment gateway could not be reached.
// No payment row exists for the attempt; re-invoking the workflow is
// safe.
var ErrGatewayUnavailable = errors.New("payment gateway unavailable")

// ErrInvalidAmount rejects payment attempts for zero or negative
// amounts before any gateway call.
var ErrInvalidAmount = errors.New("payment amount must be positive")

// ErrPaymentNotConfirmed means the gateway reached a terminal state
// other than succeeded.  A failed payment row was recorded; the invoice
// ledger was left untouched.
var ErrPaymentNotConfirmed = errors.New("payment not confirmed")

// ErrInvalidTransition rejects lifecycle misuse, such as marking an
// already-paid invoice as sent.
var ErrInvalidTransition = errors.New("invalid invoice transition")
