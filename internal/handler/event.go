package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/DanielJKrikorian/admin-bremembered-sub001/internal/model"
	"github.com/DanielJKrikorian/admin-bremembered-sub001/internal/repository"
)

// EventHandler exposes calendar reads and maintenance.  Events tied to
// bookings are created by the booking flow, never through this handler;
// staff use these routes to view vendor calendars, fix times and remove
// orphaned entries flagged by a failed cleanup.
type EventHandler struct {
	Events *repository.EventRepo
}

func NewEventHandler(e *repository.EventRepo) *EventHandler {
	return &EventHandler{Events: e}
}

type rescheduleReq struct {
	StartTime string `json:"start_time"` // RFC 3339
	EndTime   string `json:"end_time"`   // RFC 3339
}

// ListByVendor returns a vendor's calendar ordered by start time.
func (h *EventHandler) ListByVendor(c echo.Context) error {
	vendorID, err := strconv.ParseUint(c.QueryParam("vendor_id"), 10, 64)
	if err != nil || vendorID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "vendor_id query param required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	events, err := h.Events.ListByVendor(ctx, vendorID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list events failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"events": events})
}

// Reschedule moves an event to new start/end times.
func (h *EventHandler) Reschedule(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	var req rescheduleReq
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
	if !start.Before(end) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "end_time must be after start_time"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Events.Reschedule(ctx, id, &model.Event{StartTime: start, EndTime: end}); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"id": id, "start_time": start, "end_time": end})
}

// Delete removes a calendar event.  This is also the manual path for
// clearing an orphaned blocked-time entry after a failed booking
// cleanup.
func (h *EventHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Events.Delete(ctx, id); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
