package model

import "testing"

func TestEventSeatAccounting(t *testing.T) {
	e := Event{TotalSeats: 100, AvailableSeats: 37}
	if got := e.BookedSeats(); got != 63 {
		t.Errorf("BookedSeats() = %d, want 63", got)
	}
	if e.IsSoldOut() {
		t.Error("IsSoldOut() = true with seats remaining")
	}

	e.AvailableSeats = 0
	if e.BookedSeats() != 100 {
		t.Errorf("BookedSeats() = %d, want 100", e.BookedSeats())
	}
	if !e.IsSoldOut() {
		t.Error("IsSoldOut() = false with zero seats")
	}
}
