package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/ARYAMAN170/smart-event-booking-backend/internal/model"
)

// BookingLedger converts "book N seats of event E for user U" and
// "cancel booking B" into a consistent pair of facts: the event's
// available_seats counter and a booking row.  Every mutation runs inside a
// single transaction with the event row locked (SELECT ... FOR UPDATE), so
// two concurrent bookings can never both pass the availability check when
// only one of them fits.  The seat decrement is additionally guarded by
// "AND available_seats >= ?" with a RowsAffected check, which keeps the
// counter non-negative even if the lock discipline is ever violated.
//
// The ledger holds no state between calls; the database is the only shared
// mutable resource.
type BookingLedger struct{ DB *sql.DB }

func NewBookingLedger(db *sql.DB) *BookingLedger { return &BookingLedger{DB: db} }

// Query strings are kept on one line each; tests match them verbatim.
const (
	ledgerUserQ        = "SELECT name, email FROM users WHERE id = ?"
	ledgerLockEventQ   = "SELECT title, price_cents, available_seats FROM events WHERE id = ? FOR UPDATE"
	ledgerDebitSeatsQ  = "UPDATE events SET available_seats = available_seats - ? WHERE id = ? AND available_seats >= ?"
	ledgerInsertQ      = "INSERT INTO bookings (event_id, user_id, name, email, mobile, quantity, total_amount_cents, event_name, status) VALUES (?,?,?,?,?,?,?,?,'confirmed')"
	ledgerBookedAtQ    = "SELECT booking_date FROM bookings WHERE id = ?"
	ledgerLockBookingQ = "SELECT event_id, user_id, quantity, status FROM bookings WHERE id = ? FOR UPDATE"
	ledgerCancelQ      = "UPDATE bookings SET status = 'cancelled' WHERE id = ?"
	ledgerCreditSeatsQ = "UPDATE events SET available_seats = LEAST(available_seats + ?, total_seats) WHERE id = ?"
)

// Book reserves qty seats of an event for a user.  The availability check,
// the seat decrement and the booking insert commit together or not at all.
// The booking snapshots the user's name/email, the event title and the total
// amount (qty * price at booking time); none of these are ever recomputed.
//
// Errors: ErrInvalidQuantity, ErrUserNotFound, ErrEventNotFound,
// ErrInsufficientSeats; anything else is a store failure.
func (l *BookingLedger) Book(ctx context.Context, eventID uint64, qty int, userID uint64, mobile *string) (*model.Booking, error) {
	if qty <= 0 {
		return nil, ErrInvalidQuantity
	}

	tx, err := l.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var name, email string
	err = tx.QueryRowContext(ctx, ledgerUserQ, userID).Scan(&name, &email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	// Lock the event row for the remainder of the transaction.  Concurrent
	// Book/Cancel calls on the same event block here until we commit.
	var (
		title      string
		priceCents uint32
		available  int
	)
	err = tx.QueryRowContext(ctx, ledgerLockEventQ, eventID).Scan(&title, &priceCents, &available)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrEventNotFound
	}
	if err != nil {
		return nil, err
	}
	if available < qty {
		return nil, ErrInsufficientSeats
	}

	res, err := tx.ExecContext(ctx, ledgerDebitSeatsQ, qty, eventID, qty)
	if err != nil {
		return nil, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrInsufficientSeats
	}

	total := uint32(qty) * priceCents
	b := &model.Booking{
		EventID:          eventID,
		UserID:           userID,
		Name:             name,
		Email:            email,
		Mobile:           mobile,
		Quantity:         qty,
		TotalAmountCents: total,
		EventName:        title,
		Status:           model.BookingConfirmed,
	}
	ins, err := tx.ExecContext(ctx, ledgerInsertQ,
		b.EventID, b.UserID, b.Name, b.Email, nullableStr(b.Mobile), b.Quantity, b.TotalAmountCents, b.EventName)
	if err != nil {
		return nil, err
	}
	id, err := ins.LastInsertId()
	if err != nil {
		return nil, err
	}
	b.ID = uint64(id)

	// Read the DB-assigned timestamp back so the caller sees the stored row.
	if err := tx.QueryRowContext(ctx, ledgerBookedAtQ, b.ID).Scan(&b.BookingDate); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true
	return b, nil
}

// Cancel marks a booking cancelled and returns its seats to the event pool.
// Only the booking's owner or an admin may cancel.  Cancelling twice is an
// error (ErrAlreadyCancelled), not a no-op, and the second call performs no
// writes.  The status flip and the seat credit commit together or not at
// all.
//
// The credit is capped at total_seats: a catalog edit may have shrunk the
// event since the booking was made, and available_seats must never exceed
// the current total.
func (l *BookingLedger) Cancel(ctx context.Context, bookingID, callerID uint64, callerRole model.Role) error {
	tx, err := l.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var (
		eventID uint64
		ownerID uint64
		qty     int
		status  string
	)
	err = tx.QueryRowContext(ctx, ledgerLockBookingQ, bookingID).Scan(&eventID, &ownerID, &qty, &status)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrBookingNotFound
	}
	if err != nil {
		return err
	}
	if ownerID != callerID && !callerRole.IsAdmin() {
		return ErrForbidden
	}
	if model.BookingStatus(status) == model.BookingCancelled {
		return ErrAlreadyCancelled
	}

	if _, err := tx.ExecContext(ctx, ledgerCancelQ, bookingID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, ledgerCreditSeatsQ, qty, eventID); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

const ledgerDetailColumns = "b.id, b.event_id, b.user_id, b.name, b.email, b.mobile, b.quantity, b.total_amount_cents, b.event_name, b.status, b.booking_date, e.title, e.date, e.location, e.img"

// ListForUser returns the user's bookings joined with live event metadata,
// newest first.  Read-only; no invariant concerns.
func (l *BookingLedger) ListForUser(ctx context.Context, userID uint64) ([]model.BookingDetail, error) {
	rows, err := l.DB.QueryContext(ctx,
		"SELECT "+ledgerDetailColumns+" FROM bookings b JOIN events e ON e.id = b.event_id WHERE b.user_id = ? ORDER BY b.booking_date DESC",
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBookingDetails(rows)
}

// ListAll returns every booking in the system, newest first.  Exposed to
// admins only.
func (l *BookingLedger) ListAll(ctx context.Context) ([]model.BookingDetail, error) {
	rows, err := l.DB.QueryContext(ctx,
		"SELECT "+ledgerDetailColumns+" FROM bookings b JOIN events e ON e.id = b.event_id ORDER BY b.booking_date DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBookingDetails(rows)
}

func scanBookingDetails(rows *sql.Rows) ([]model.BookingDetail, error) {
	details := make([]model.BookingDetail, 0)
	for rows.Next() {
		var (
			d      model.BookingDetail
			mobile sql.NullString
			img    sql.NullString
			status string
		)
		if err := rows.Scan(
			&d.ID, &d.EventID, &d.UserID, &d.Name, &d.Email, &mobile,
			&d.Quantity, &d.TotalAmountCents, &d.EventName, &status, &d.BookingDate,
			&d.EventTitle, &d.EventDate, &d.EventLocation, &img,
		); err != nil {
			return nil, err
		}
		d.Status = model.BookingStatus(status)
		if mobile.Valid {
			m := mobile.String
			d.Mobile = &m
		}
		if img.Valid {
			u := img.String
			d.EventImageURL = &u
		}
		details = append(details, d)
	}
	return details, rows.Err()
}
