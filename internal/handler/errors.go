package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/DanielJKrikorian/admin-bremembered-sub001/internal/repository"
	"github.com/DanielJKrikorian/admin-bremembered-sub001/internal/service"
)

// respondError maps service and repository errors onto HTTP statuses.
// The mapping keeps failure classes distinct on the wire: a declined
// card, an unreachable gateway and an orphaned calendar event are three
// different operator problems.
func respondError(c echo.Context, err error) error {
	var verr service.ValidationError
	switch {
	case errors.As(err, &verr):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": verr.Error(), "field": verr.Field})
	case errors.Is(err, repository.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
	case errors.Is(err, service.ErrInvalidAmount):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "amount must be a positive number of cents"})
	case errors.Is(err, service.ErrInvalidTransition):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	case errors.Is(err, service.ErrPaymentNotConfirmed):
		return c.JSON(http.StatusPaymentRequired, echo.Map{"error": err.Error()})
	case errors.Is(err, service.ErrGatewayUnavailable):
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "payment gateway unavailable; no charge was recorded"})
	case errors.Is(err, service.ErrCompensationFailed):
		// The failed cleanup left an orphaned calendar entry; the message
		// carries the event id for manual removal.
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	case errors.Is(err, service.ErrEventCreationFailed),
		errors.Is(err, service.ErrBookingCreationFailed):
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
}
