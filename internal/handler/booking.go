package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ARYAMAN170/smart-event-booking-backend/internal/model"
	"github.com/ARYAMAN170/smart-event-booking-backend/internal/queue"
)

// SeatLedger is the slice of the booking ledger the HTTP layer needs.
// Tests substitute a fake.
type SeatLedger interface {
	Book(ctx context.Context, eventID uint64, qty int, userID uint64, mobile *string) (*model.Booking, error)
	Cancel(ctx context.Context, bookingID, callerID uint64, callerRole model.Role) error
	ListForUser(ctx context.Context, userID uint64) ([]model.BookingDetail, error)
	ListAll(ctx context.Context) ([]model.BookingDetail, error)
}

// BookingPublisher emits booking lifecycle events to the message broker.
// Publishing happens after commit and failures never affect the request
// outcome.  May be nil, in which case no events are emitted.
type BookingPublisher interface {
	PublishConfirmed(ctx context.Context, ev queue.BookingConfirmedEvent) error
	PublishCancelled(ctx context.Context, ev queue.BookingCancelledEvent) error
}

// BookingHandler exposes the seat inventory ledger over HTTP.  All routes
// assume JWT middleware has already authenticated the caller.
type BookingHandler struct {
	Ledger SeatLedger
	Events BookingPublisher
}

func NewBookingHandler(ledger SeatLedger, events BookingPublisher) *BookingHandler {
	return &BookingHandler{Ledger: ledger, Events: events}
}

type bookReq struct {
	EventID  uint64 `json:"event_id"`
	Quantity int    `json:"quantity"`
	Mobile   string `json:"mobile"`
}

// Create handles POST /v1/bookings.  The availability check, seat decrement
// and booking insert are atomic in the ledger; this layer only validates
// input shape and maps errors.
func (h *BookingHandler) Create(c echo.Context) error {
	userID, _, err := currentUser(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req bookReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.EventID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "event_id is required"})
	}
	if req.Quantity <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "quantity must be positive"})
	}
	var mobile *string
	if m := strings.TrimSpace(req.Mobile); m != "" {
		mobile = &m
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	b, err := h.Ledger.Book(ctx, req.EventID, req.Quantity, userID, mobile)
	if err != nil {
		return writeRepoError(c, err)
	}

	if h.Events != nil {
		_ = h.Events.PublishConfirmed(ctx, queue.BookingConfirmedEvent{
			BookingID:        b.ID,
			EventID:          b.EventID,
			UserID:           b.UserID,
			EventName:        b.EventName,
			Quantity:         b.Quantity,
			TotalAmountCents: b.TotalAmountCents,
			BookedAt:         b.BookingDate.UTC().Format(time.RFC3339),
		})
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "booking confirmed",
		"booking": b,
	})
}

// Cancel handles PUT /v1/bookings/:id/cancel.  Only the booking's owner or
// an admin may cancel; a second cancel is a 409, not a no-op.
func (h *BookingHandler) Cancel(c echo.Context) error {
	userID, role, err := currentUser(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	bookingID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || bookingID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Ledger.Cancel(ctx, bookingID, userID, role); err != nil {
		return writeRepoError(c, err)
	}

	if h.Events != nil {
		_ = h.Events.PublishCancelled(ctx, queue.BookingCancelledEvent{
			BookingID:   bookingID,
			CancelledBy: userID,
			CancelledAt: time.Now().UTC().Format(time.RFC3339),
		})
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "booking cancelled"})
}

// MyBookings handles GET /v1/bookings/my.
func (h *BookingHandler) MyBookings(c echo.Context) error {
	userID, _, err := currentUser(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.Ledger.ListForUser(ctx, userID)
	if err != nil {
		return writeRepoError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// ListAll handles GET /v1/bookings (admin only, enforced by route
// middleware).
func (h *BookingHandler) ListAll(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.Ledger.ListAll(ctx)
	if err != nil {
		return writeRepoError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}
