package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/DanielJKrikorian/admin-bremembered-sub001/internal/model"
	"github.com/DanielJKrikorian/admin-bremembered-sub001/internal/repository"
	"github.com/DanielJKrikorian/admin-bremembered-sub001/internal/service"
)

// PaymentHandler exposes the charge workflow and payment history reads.
// The create route sits behind the rate limiter: every request here is
// a real gateway charge attempt.
type PaymentHandler struct {
	WF       *service.PaymentWorkflow
	Payments *repository.PaymentRepo
}

func NewPaymentHandler(wf *service.PaymentWorkflow, p *repository.PaymentRepo) *PaymentHandler {
	return &PaymentHandler{WF: wf, Payments: p}
}

type createPaymentReq struct {
	InvoiceID     *uint64 `json:"invoice_id"`
	BookingID     *uint64 `json:"booking_id"`
	AmountCents   int64   `json:"amount_cents"`
	Type          string  `json:"payment_type"` // deposit | full_payment | partial_payment
	PaymentMethod string  `json:"payment_method"`
}

// Create runs a charge attempt end to end.  A 201 means the charge
// succeeded and the row is recorded; 402 means the gateway answered
// with a decline (a failed row exists); 502 means the gateway never
// answered and nothing was written.
func (h *PaymentHandler) Create(c echo.Context) error {
	var req createPaymentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	typ := model.PaymentType(req.Type)
	switch typ {
	case model.PaymentDeposit, model.PaymentFull, model.PaymentPartial:
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "payment_type must be deposit, full_payment or partial_payment"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 30*time.Second)
	defer cancel()

	p, err := h.WF.RecordPaymentAttempt(ctx, service.PaymentAttemptInput{
		InvoiceID:     req.InvoiceID,
		BookingID:     req.BookingID,
		AmountCents:   req.AmountCents,
		Type:          typ,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, p)
}

// ListByInvoice returns the payment history for an invoice.
func (h *PaymentHandler) ListByInvoice(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid invoice id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	payments, err := h.Payments.ListByInvoice(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list payments failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"payments": payments})
}
