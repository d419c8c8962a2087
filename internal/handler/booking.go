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

// BookingHandler exposes booking creation and management.  Creation
// always runs through the two-step flow that blocks the vendor's
// calendar before writing the booking.
type BookingHandler struct {
	Saga     *service.BookingSaga
	Bookings *repository.BookingRepo
	Payments *repository.PaymentRepo
}

func NewBookingHandler(saga *service.BookingSaga, b *repository.BookingRepo, p *repository.PaymentRepo) *BookingHandler {
	return &BookingHandler{Saga: saga, Bookings: b, Payments: p}
}

type createBookingReq struct {
	CoupleID    uint64  `json:"couple_id"`
	VendorID    uint64  `json:"vendor_id"`
	VenueID     *uint64 `json:"venue_id"`
	PackageID   *uint64 `json:"package_id"`
	StartTime   string  `json:"start_time"` // RFC 3339
	EndTime     string  `json:"end_time"`   // RFC 3339
	ServiceType string  `json:"service_type"`
	EventType   string  `json:"event_type"`
	AmountCents int64   `json:"amount_cents"`
}

type updateBookingStatusReq struct {
	Status string `json:"status"` // pending | confirmed | cancelled
}

// Create runs the booking flow and returns 201 with the booking and its
// blocked-time event id.
func (h *BookingHandler) Create(c echo.Context) error {
	var req createBookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	start, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "start_time must be RFC 3339"})
	}
	end, err := time.Parse(time.RFC3339, req.EndTime)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "end_time must be RFC 3339"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	booking, err := h.Saga.CreateBookingWithEvent(ctx, service.CreateBookingInput{
		CoupleID:    req.CoupleID,
		VendorID:    req.VendorID,
		VenueID:     req.VenueID,
		PackageID:   req.PackageID,
		StartTime:   start,
		EndTime:     end,
		ServiceType: req.ServiceType,
		EventType:   model.EventType(req.EventType),
		AmountCents: req.AmountCents,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, booking)
}

// List returns all bookings, newest first.
func (h *BookingHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	bookings, err := h.Bookings.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list bookings failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"bookings": bookings})
}

// Get returns one booking along with its payment history.
func (h *BookingHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	booking, err := h.Bookings.GetByID(ctx, id)
	if err != nil {
		return respondError(c, err)
	}
	payments, err := h.Payments.ListByBooking(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list payments failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"booking": booking, "payments": payments})
}

// UpdateStatus moves a booking between pending, confirmed and cancelled.
func (h *BookingHandler) UpdateStatus(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	var req updateBookingStatusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	status := model.BookingStatus(req.Status)
	switch status {
	case model.BookingPending, model.BookingConfirmed, model.BookingCancelled:
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "status must be pending, confirmed or cancelled"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Bookings.UpdateStatus(ctx, id, status); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"id": id, "status": status})
}
