package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ARYAMAN170/smart-event-booking-backend/internal/middleware"
	"github.com/ARYAMAN170/smart-event-booking-backend/internal/model"
	"github.com/ARYAMAN170/smart-event-booking-backend/internal/repository"
)

var errNoIdentity = errors.New("no authenticated user in context")

// currentUser extracts the typed identity stored by the JWT middleware.
func currentUser(c echo.Context) (uint64, model.Role, error) {
	uid, ok := c.Get(middleware.CtxUserID).(uint64)
	if !ok || uid == 0 {
		return 0, model.RoleUser, errNoIdentity
	}
	role, ok := c.Get(middleware.CtxRole).(model.Role)
	if !ok {
		return 0, model.RoleUser, errNoIdentity
	}
	return uid, role, nil
}

// writeRepoError maps the repository error taxonomy onto HTTP statuses so a
// client can tell "try again" (500) apart from "request is invalid" (4xx).
func writeRepoError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, repository.ErrEventNotFound),
		errors.Is(err, repository.ErrBookingNotFound),
		errors.Is(err, repository.ErrUserNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case errors.Is(err, repository.ErrInvalidQuantity):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.Is(err, repository.ErrForbidden):
		return c.JSON(http.StatusForbidden, echo.Map{"error": err.Error()})
	case errors.Is(err, repository.ErrInsufficientSeats),
		errors.Is(err, repository.ErrAlreadyCancelled),
		errors.Is(err, repository.ErrEventHasBookings):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	default:
		// Transient store failure: retryable by the caller, never swallowed.
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "store unavailable"})
	}
}
