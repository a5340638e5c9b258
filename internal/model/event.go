package model

import "time"

// Event mirrors the `events` table.  An event owns a finite seat pool:
// total_seats is fixed by the catalog while available_seats is mutated
// exclusively by the booking ledger (decrement on book, increment on
// cancel).  Prices are stored in cents to avoid floating point drift.
//
// Invariant: 0 <= AvailableSeats <= TotalSeats at all times.
type Event struct {
	ID             uint64    `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Location       string    `json:"location"`
	Date           string    `json:"date"` // DATE column, YYYY-MM-DD
	TotalSeats     int       `json:"total_seats"`
	AvailableSeats int       `json:"available_seats"`
	PriceCents     uint32    `json:"price_cents"`
	ImageURL       *string   `json:"img,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// BookedSeats returns the number of seats currently held by confirmed
// bookings.
func (e *Event) BookedSeats() int { return e.TotalSeats - e.AvailableSeats }

// IsSoldOut reports whether no seats remain.
func (e *Event) IsSoldOut() bool { return e.AvailableSeats <= 0 }
