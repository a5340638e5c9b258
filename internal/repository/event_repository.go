package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/ARYAMAN170/smart-event-booking-backend/internal/model"
)

// EventRepo owns the event catalog: every event field except
// available_seats, which is written only by the booking ledger.  Catalog
// writes that touch the seat pool (changing total_seats, deleting an event)
// run inside transactions so the ledger invariant
// 0 <= available_seats <= total_seats holds at every commit point.
type EventRepo struct{ DB *sql.DB }

func NewEventRepo(db *sql.DB) *EventRepo { return &EventRepo{DB: db} }

const eventColumns = "id, title, description, location, date, total_seats, available_seats, price_cents, img, created_at, updated_at"

func scanEvent(row interface{ Scan(...any) error }) (model.Event, error) {
	var (
		e   model.Event
		img sql.NullString
	)
	err := row.Scan(&e.ID, &e.Title, &e.Description, &e.Location, &e.Date,
		&e.TotalSeats, &e.AvailableSeats, &e.PriceCents, &img, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return model.Event{}, err
	}
	if img.Valid {
		u := img.String
		e.ImageURL = &u
	}
	return e, nil
}

// List returns events, optionally filtered by a location substring and an
// exact date (YYYY-MM-DD).  Results are ordered by event date ascending.
func (r *EventRepo) List(ctx context.Context, location, date string) ([]model.Event, error) {
	query := "SELECT " + eventColumns + " FROM events WHERE 1=1"
	args := make([]any, 0, 2)
	if location != "" {
		query += " AND location LIKE ?"
		args = append(args, "%"+location+"%")
	}
	if date != "" {
		query += " AND date = ?"
		args = append(args, date)
	}
	query += " ORDER BY date ASC, id ASC"

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]model.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// GetByID returns a single event or ErrEventNotFound.
func (r *EventRepo) GetByID(ctx context.Context, id uint64) (model.Event, error) {
	row := r.DB.QueryRowContext(ctx,
		"SELECT "+eventColumns+" FROM events WHERE id = ?", id)
	e, err := scanEvent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Event{}, ErrEventNotFound
	}
	return e, err
}

// Create inserts a new event.  The seat pool starts full:
// available_seats = total_seats.
func (r *EventRepo) Create(ctx context.Context, e *model.Event) error {
	e.AvailableSeats = e.TotalSeats
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO events (title, description, location, date, total_seats, available_seats, price_cents, img) VALUES (?,?,?,?,?,?,?,?)",
		e.Title, e.Description, e.Location, e.Date, e.TotalSeats, e.AvailableSeats, e.PriceCents, nullableStr(e.ImageURL))
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	e.ID = uint64(id)
	return nil
}

// Update rewrites an event's catalog fields.  When total_seats changes, the
// same delta is applied to available_seats, clamped to [0, total_seats], so
// growing an event frees new seats and shrinking it never strands the pool
// below zero.  Runs in a transaction with the event row locked against
// concurrent ledger writes.
func (r *EventRepo) Update(ctx context.Context, e *model.Event) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var oldTotal, oldAvailable int
	err = tx.QueryRowContext(ctx,
		"SELECT total_seats, available_seats FROM events WHERE id = ? FOR UPDATE",
		e.ID).Scan(&oldTotal, &oldAvailable)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrEventNotFound
	}
	if err != nil {
		return err
	}

	available := oldAvailable + (e.TotalSeats - oldTotal)
	if available < 0 {
		available = 0
	}
	if available > e.TotalSeats {
		available = e.TotalSeats
	}
	e.AvailableSeats = available

	_, err = tx.ExecContext(ctx,
		"UPDATE events SET title = ?, description = ?, location = ?, date = ?, total_seats = ?, available_seats = ?, price_cents = ?, img = ? WHERE id = ?",
		e.Title, e.Description, e.Location, e.Date, e.TotalSeats, e.AvailableSeats, e.PriceCents, nullableStr(e.ImageURL), e.ID)
	if err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// Delete removes an event.  Deletion is refused with ErrEventHasBookings
// while confirmed bookings still reference it; cancelled bookings are kept
// for history and do not block deletion.
func (r *EventRepo) Delete(ctx context.Context, id uint64) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var exists uint64
	err = tx.QueryRowContext(ctx,
		"SELECT id FROM events WHERE id = ? FOR UPDATE", id).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrEventNotFound
	}
	if err != nil {
		return err
	}

	var active int
	err = tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM bookings WHERE event_id = ? AND status = 'confirmed'",
		id).Scan(&active)
	if err != nil {
		return err
	}
	if active > 0 {
		return ErrEventHasBookings
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM bookings WHERE event_id = ?", id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM events WHERE id = ?", id); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

func nullableStr(s *string) any {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	return *s
}
