// Package queue defines message payloads exchanged over the message broker
// and the background consumer that records confirmed bookings.
package queue

// Queue names used on the broker.
const (
	BookingConfirmedQueue = "booking.confirmed"
	BookingCancelledQueue = "booking.cancelled"
)

// BookingConfirmedEvent is published when a booking commits.  It carries
// enough information for downstream consumers to log, notify or feed
// analytics without querying the primary database.
type BookingConfirmedEvent struct {
	BookingID        uint64 `json:"booking_id"`
	EventID          uint64 `json:"event_id"`
	UserID           uint64 `json:"user_id"`
	EventName        string `json:"event_name"`
	Quantity         int    `json:"quantity"`
	TotalAmountCents uint32 `json:"total_amount_cents"`
	BookedAt         string `json:"booked_at"`
}

// BookingCancelledEvent is published when a cancellation commits.
type BookingCancelledEvent struct {
	BookingID   uint64 `json:"booking_id"`
	CancelledBy uint64 `json:"cancelled_by"`
	CancelledAt string `json:"cancelled_at"`
}
