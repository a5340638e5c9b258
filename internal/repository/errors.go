// Package repository implements all database access for the booking backend.
// This file defines the sentinel errors shared across repositories so that
// handlers can translate each failure into a distinct HTTP status instead of
// collapsing everything into a generic 500.
package repository

import "errors"

// ErrEventNotFound is returned when the referenced event does not exist.
var ErrEventNotFound = errors.New("event not found")

// ErrBookingNotFound is returned when the referenced booking does not exist.
var ErrBookingNotFound = errors.New("booking not found")

// ErrUserNotFound is returned when the referenced user does not exist.
var ErrUserNotFound = errors.New("user not found")

// ErrInsufficientSeats is returned when a booking asks for more seats than
// the event has available.  The event row is left untouched.
var ErrInsufficientSeats = errors.New("not enough seats available")

// ErrInvalidQuantity is returned when a booking requests a non-positive
// number of seats.
var ErrInvalidQuantity = errors.New("quantity must be positive")

// ErrForbidden is returned when the caller attempts an operation on a
// resource they do not own.  Handlers translate this into HTTP 403.
var ErrForbidden = errors.New("forbidden")

// ErrAlreadyCancelled is returned when cancelling a booking that has already
// been cancelled.  Cancellation is deliberately not idempotent: the second
// call is an error and performs no writes.
var ErrAlreadyCancelled = errors.New("booking already cancelled")

// ErrEventHasBookings is returned when deleting an event that still has
// confirmed bookings.  Handlers translate this into HTTP 409.
var ErrEventHasBookings = errors.New("event has active bookings")

// ErrEmailExists is returned when registering with an email that is already
// taken.
var ErrEmailExists = errors.New("email already exists")
