package handler

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/ARYAMAN170/smart-event-booking-backend/internal/model"
	"github.com/ARYAMAN170/smart-event-booking-backend/internal/repository"
)

type fakeCatalog struct {
	listFn    func(ctx context.Context, location, date string) ([]model.Event, error)
	getByIDFn func(ctx context.Context, id uint64) (model.Event, error)
	createFn  func(ctx context.Context, e *model.Event) error
	updateFn  func(ctx context.Context, e *model.Event) error
	deleteFn  func(ctx context.Context, id uint64) error
}

func (f *fakeCatalog) List(ctx context.Context, location, date string) ([]model.Event, error) {
	return f.listFn(ctx, location, date)
}
func (f *fakeCatalog) GetByID(ctx context.Context, id uint64) (model.Event, error) {
	return f.getByIDFn(ctx, id)
}
func (f *fakeCatalog) Create(ctx context.Context, e *model.Event) error { return f.createFn(ctx, e) }
func (f *fakeCatalog) Update(ctx context.Context, e *model.Event) error { return f.updateFn(ctx, e) }
func (f *fakeCatalog) Delete(ctx context.Context, id uint64) error      { return f.deleteFn(ctx, id) }

func TestEventList_PassesFilters(t *testing.T) {
	cat := &fakeCatalog{
		listFn: func(_ context.Context, location, date string) ([]model.Event, error) {
			if location != "Pune" || date != "2025-07-01" {
				t.Errorf("List(%q, %q)", location, date)
			}
			return []model.Event{{ID: 7, Title: "Go Conf"}}, nil
		},
	}
	h := NewEventHandler(cat)

	c, rec := newTestCtx(http.MethodGet, "/v1/events?location=Pune&date=2025-07-01", "")
	if err := h.List(c); err != nil {
		t.Fatalf("List: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Go Conf") {
		t.Errorf("body = %s", rec.Body)
	}
}

func TestEventGet_NotFound(t *testing.T) {
	cat := &fakeCatalog{
		getByIDFn: func(context.Context, uint64) (model.Event, error) {
			return model.Event{}, repository.ErrEventNotFound
		},
	}
	h := NewEventHandler(cat)

	c, rec := newTestCtx(http.MethodGet, "/v1/events/7", "")
	c.SetParamNames("id")
	c.SetParamValues("7")

	if err := h.Get(c); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestEventCreate_SeatsStartFull(t *testing.T) {
	cat := &fakeCatalog{
		createFn: func(_ context.Context, e *model.Event) error {
			if e.TotalSeats != 120 {
				t.Errorf("TotalSeats = %d, want 120", e.TotalSeats)
			}
			e.ID = 7
			e.AvailableSeats = e.TotalSeats
			return nil
		},
	}
	h := NewEventHandler(cat)

	body := `{"title":"Go Conf","location":"Pune","date":"2025-07-01","total_seats":120,"price_cents":10000}`
	c, rec := newTestCtx(http.MethodPost, "/v1/events", body)
	asUser(c, 1, model.RoleAdmin)

	if err := h.Create(c); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201; body: %s", rec.Code, rec.Body)
	}
	if !strings.Contains(rec.Body.String(), `"available_seats":120`) {
		t.Errorf("body = %s", rec.Body)
	}
}

func TestEventCreate_Validation(t *testing.T) {
	called := false
	cat := &fakeCatalog{
		createFn: func(context.Context, *model.Event) error { called = true; return nil },
	}
	h := NewEventHandler(cat)

	cases := []struct {
		name string
		body string
	}{
		{"missing title", `{"total_seats":10}`},
		{"blank title", `{"title":"   ","total_seats":10}`},
		{"zero seats", `{"title":"Go Conf","total_seats":0}`},
		{"negative seats", `{"title":"Go Conf","total_seats":-5}`},
		{"bad date", `{"title":"Go Conf","total_seats":10,"date":"01-07-2025"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := newTestCtx(http.MethodPost, "/v1/events", tc.body)
			asUser(c, 1, model.RoleAdmin)
			if err := h.Create(c); err != nil {
				t.Fatalf("Create: %v", err)
			}
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400; body: %s", rec.Code, rec.Body)
			}
		})
	}
	if called {
		t.Error("catalog was called for invalid input")
	}
}

func TestEventDelete(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"success", nil, http.StatusNoContent},
		{"has bookings", repository.ErrEventHasBookings, http.StatusConflict},
		{"not found", repository.ErrEventNotFound, http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cat := &fakeCatalog{
				deleteFn: func(_ context.Context, id uint64) error {
					if id != 7 {
						t.Errorf("Delete(%d), want 7", id)
					}
					return tc.err
				},
			}
			h := NewEventHandler(cat)

			c, rec := newTestCtx(http.MethodDelete, "/v1/events/7", "")
			c.SetParamNames("id")
			c.SetParamValues("7")
			asUser(c, 1, model.RoleAdmin)

			if err := h.Delete(c); err != nil {
				t.Fatalf("Delete: %v", err)
			}
			if rec.Code != tc.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tc.wantStatus)
			}
		})
	}
}

func TestEventUpdate_BadID(t *testing.T) {
	h := NewEventHandler(&fakeCatalog{})
	c, rec := newTestCtx(http.MethodPut, "/v1/events/abc", `{"title":"x","total_seats":1}`)
	c.SetParamNames("id")
	c.SetParamValues("abc")
	asUser(c, 1, model.RoleAdmin)

	if err := h.Update(c); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}
