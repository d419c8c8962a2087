package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/DanielJKrikorian/admin-bremembered-sub001/internal/ledger"
	"github.com/DanielJKrikorian/admin-bremembered-sub001/internal/model"
	"github.com/DanielJKrikorian/admin-bremembered-sub001/internal/repository"
	"github.com/DanielJKrikorian/admin-bremembered-sub001/internal/service"
)

// InvoiceHandler exposes invoice drafting, sending and ledger reads.
type InvoiceHandler struct {
	Svc      *service.InvoiceService
	Invoices *repository.InvoiceRepo
}

func NewInvoiceHandler(svc *service.InvoiceService, inv *repository.InvoiceRepo) *InvoiceHandler {
	return &InvoiceHandler{Svc: svc, Invoices: inv}
}

type lineItemReq struct {
	Type              string  `json:"type"` // service_package | store_product | custom
	ReferenceID       *uint64 `json:"reference_id"`
	CustomDescription string  `json:"custom_description"`
	UnitPriceCents    int64   `json:"unit_price_cents"`
	Quantity          int64   `json:"quantity"`
}

type createInvoiceReq struct {
	CoupleID            uint64        `json:"couple_id"`
	VendorID            uint64        `json:"vendor_id"`
	Items               []lineItemReq `json:"line_items"`
	DiscountMode        string        `json:"discount_mode"` // dollar | percentage
	DiscountAmountCents int64         `json:"discount_amount_cents"`
	DiscountPercent     int64         `json:"discount_percent"`
	DepositPercent      int64         `json:"deposit_percent"`
}

// Create drafts an invoice with its line items and derived amounts.
func (h *InvoiceHandler) Create(c echo.Context) error {
	var req createInvoiceReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	items := make([]service.LineItemInput, 0, len(req.Items))
	for _, li := range req.Items {
		items = append(items, service.LineItemInput{
			Type:              model.LineItemType(li.Type),
			ReferenceID:       li.ReferenceID,
			CustomDescription: li.CustomDescription,
			UnitPriceCents:    li.UnitPriceCents,
			Quantity:          li.Quantity,
		})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	inv, lineItems, err := h.Svc.CreateInvoice(ctx, service.CreateInvoiceInput{
		CoupleID: req.CoupleID,
		VendorID: req.VendorID,
		Items:    items,
		Discount: ledger.DiscountSpec{
			Mode:        model.DiscountMode(req.DiscountMode),
			AmountCents: req.DiscountAmountCents,
			Percent:     req.DiscountPercent,
		},
		DepositPercent: req.DepositPercent,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"invoice": inv, "line_items": lineItems})
}

// Get returns an invoice with its line items.
func (h *InvoiceHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid invoice id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	inv, items, err := h.Svc.Get(ctx, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"invoice": inv, "line_items": items})
}

// Send marks the invoice sent and queues the payment-link email.
func (h *InvoiceHandler) Send(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid invoice id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	inv, err := h.Svc.SendEmail(ctx, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"invoice": inv, "share_link": h.Svc.ShareLink(inv)})
}

// ShareLink returns the shareable payment URL without emailing anyone.
func (h *InvoiceHandler) ShareLink(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid invoice id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	inv, _, err := h.Svc.Get(ctx, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"share_link": h.Svc.ShareLink(inv)})
}

// Ledger returns the full recomputed summary for an invoice: subtotal,
// discount, total, deposit and remaining balance over the payment
// history.
func (h *InvoiceHandler) Ledger(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid invoice id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	summary, err := h.Svc.Ledger(ctx, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, summary)
}

// GetByToken resolves an invoice from its shareable payment token.  The
// couple-facing payment page uses this route; the token is the only
// credential, so the response omits nothing the page does not need.
func (h *InvoiceHandler) GetByToken(c echo.Context) error {
	token := c.Param("token")
	if token == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "token required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	inv, err := h.Invoices.GetByToken(ctx, token)
	if err != nil {
		return respondError(c, err)
	}
	items, err := h.Invoices.ListLineItems(ctx, inv.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list line items failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"invoice":    inv,
		"line_items": items,
	})
}
