package model

import "time"

// BookingStatus enumerates the states of a booking.  The only transition is
// confirmed -> cancelled; cancelled is terminal.
type BookingStatus string

const (
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

// Booking mirrors the `bookings` table.  Name, Email, EventName and
// TotalAmountCents are snapshots taken at booking time and never recomputed,
// so later edits to the user or the event do not rewrite booking history.
type Booking struct {
	ID               uint64        `json:"id"`
	EventID          uint64        `json:"event_id"`
	UserID           uint64        `json:"user_id"`
	Name             string        `json:"name"`
	Email            string        `json:"email"`
	Mobile           *string       `json:"mobile,omitempty"`
	Quantity         int           `json:"quantity"`
	TotalAmountCents uint32        `json:"total_amount_cents"`
	EventName        string        `json:"event_name"`
	Status           BookingStatus `json:"status"`
	BookingDate      time.Time     `json:"booking_date"`
}

// BookingDetail is a booking joined with live event metadata for display in
// listings.  The snapshot fields still come from the booking row.
type BookingDetail struct {
	Booking
	EventTitle    string  `json:"event_title"`
	EventDate     string  `json:"event_date"`
	EventLocation string  `json:"event_location"`
	EventImageURL *string `json:"event_img,omitempty"`
}
