package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ARYAMAN170/smart-event-booking-backend/internal/middleware"
	"github.com/ARYAMAN170/smart-event-booking-backend/internal/model"
	"github.com/ARYAMAN170/smart-event-booking-backend/internal/queue"
	"github.com/ARYAMAN170/smart-event-booking-backend/internal/repository"
)

type fakeLedger struct {
	bookFn        func(ctx context.Context, eventID uint64, qty int, userID uint64, mobile *string) (*model.Booking, error)
	cancelFn      func(ctx context.Context, bookingID, callerID uint64, callerRole model.Role) error
	listForUserFn func(ctx context.Context, userID uint64) ([]model.BookingDetail, error)
	listAllFn     func(ctx context.Context) ([]model.BookingDetail, error)
}

func (f *fakeLedger) Book(ctx context.Context, eventID uint64, qty int, userID uint64, mobile *string) (*model.Booking, error) {
	return f.bookFn(ctx, eventID, qty, userID, mobile)
}

func (f *fakeLedger) Cancel(ctx context.Context, bookingID, callerID uint64, callerRole model.Role) error {
	return f.cancelFn(ctx, bookingID, callerID, callerRole)
}

func (f *fakeLedger) ListForUser(ctx context.Context, userID uint64) ([]model.BookingDetail, error) {
	return f.listForUserFn(ctx, userID)
}

func (f *fakeLedger) ListAll(ctx context.Context) ([]model.BookingDetail, error) {
	return f.listAllFn(ctx)
}

type fakePublisher struct {
	confirmed []queue.BookingConfirmedEvent
	cancelled []queue.BookingCancelledEvent
}

func (f *fakePublisher) PublishConfirmed(_ context.Context, ev queue.BookingConfirmedEvent) error {
	f.confirmed = append(f.confirmed, ev)
	return nil
}

func (f *fakePublisher) PublishCancelled(_ context.Context, ev queue.BookingCancelledEvent) error {
	f.cancelled = append(f.cancelled, ev)
	return nil
}

func newTestCtx(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func asUser(c echo.Context, id uint64, role model.Role) {
	c.Set(middleware.CtxUserID, id)
	c.Set(middleware.CtxRole, role)
}

func TestBookingCreate_Success(t *testing.T) {
	var gotEventID, gotUserID uint64
	var gotQty int
	ledger := &fakeLedger{
		bookFn: func(_ context.Context, eventID uint64, qty int, userID uint64, mobile *string) (*model.Booking, error) {
			gotEventID, gotQty, gotUserID = eventID, qty, userID
			if mobile != nil {
				t.Errorf("mobile = %q, want nil", *mobile)
			}
			return &model.Booking{
				ID: 99, EventID: eventID, UserID: userID,
				Quantity: qty, TotalAmountCents: 30000,
				EventName: "Go Conf", Status: model.BookingConfirmed,
				BookingDate: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
			}, nil
		},
	}
	pub := &fakePublisher{}
	h := NewBookingHandler(ledger, pub)

	c, rec := newTestCtx(http.MethodPost, "/v1/bookings", `{"event_id":7,"quantity":3}`)
	asUser(c, 42, model.RoleUser)

	if err := h.Create(c); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201; body: %s", rec.Code, rec.Body)
	}
	if gotEventID != 7 || gotQty != 3 || gotUserID != 42 {
		t.Errorf("ledger called with event=%d qty=%d user=%d", gotEventID, gotQty, gotUserID)
	}
	if len(pub.confirmed) != 1 {
		t.Fatalf("published %d confirmed events, want 1", len(pub.confirmed))
	}
	if ev := pub.confirmed[0]; ev.BookingID != 99 || ev.TotalAmountCents != 30000 {
		t.Errorf("published event = %+v", ev)
	}
}

func TestBookingCreate_InsufficientSeats(t *testing.T) {
	ledger := &fakeLedger{
		bookFn: func(context.Context, uint64, int, uint64, *string) (*model.Booking, error) {
			return nil, repository.ErrInsufficientSeats
		},
	}
	pub := &fakePublisher{}
	h := NewBookingHandler(ledger, pub)

	c, rec := newTestCtx(http.MethodPost, "/v1/bookings", `{"event_id":7,"quantity":3}`)
	asUser(c, 42, model.RoleUser)

	if err := h.Create(c); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409", rec.Code)
	}
	if len(pub.confirmed) != 0 {
		t.Errorf("published %d events on failed booking, want 0", len(pub.confirmed))
	}
}

func TestBookingCreate_Validation(t *testing.T) {
	called := false
	ledger := &fakeLedger{
		bookFn: func(context.Context, uint64, int, uint64, *string) (*model.Booking, error) {
			called = true
			return nil, nil
		},
	}
	h := NewBookingHandler(ledger, nil)

	cases := []struct {
		name string
		body string
	}{
		{"zero quantity", `{"event_id":7,"quantity":0}`},
		{"negative quantity", `{"event_id":7,"quantity":-2}`},
		{"missing event", `{"quantity":1}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := newTestCtx(http.MethodPost, "/v1/bookings", tc.body)
			asUser(c, 42, model.RoleUser)
			if err := h.Create(c); err != nil {
				t.Fatalf("Create: %v", err)
			}
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
	if called {
		t.Error("ledger was called for invalid input")
	}
}

func TestBookingCreate_Unauthenticated(t *testing.T) {
	h := NewBookingHandler(&fakeLedger{}, nil)
	c, rec := newTestCtx(http.MethodPost, "/v1/bookings", `{"event_id":7,"quantity":1}`)

	if err := h.Create(c); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestBookingCancel(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantEvents int
	}{
		{"success", nil, http.StatusOK, 1},
		{"forbidden", repository.ErrForbidden, http.StatusForbidden, 0},
		{"already cancelled", repository.ErrAlreadyCancelled, http.StatusConflict, 0},
		{"not found", repository.ErrBookingNotFound, http.StatusNotFound, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ledger := &fakeLedger{
				cancelFn: func(_ context.Context, bookingID, callerID uint64, callerRole model.Role) error {
					if bookingID != 99 || callerID != 42 || callerRole != model.RoleUser {
						t.Errorf("Cancel(%d, %d, %q)", bookingID, callerID, callerRole)
					}
					return tc.err
				},
			}
			pub := &fakePublisher{}
			h := NewBookingHandler(ledger, pub)

			c, rec := newTestCtx(http.MethodPut, "/v1/bookings/99/cancel", "")
			c.SetParamNames("id")
			c.SetParamValues("99")
			asUser(c, 42, model.RoleUser)

			if err := h.Cancel(c); err != nil {
				t.Fatalf("Cancel: %v", err)
			}
			if rec.Code != tc.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tc.wantStatus)
			}
			if len(pub.cancelled) != tc.wantEvents {
				t.Errorf("published %d cancelled events, want %d", len(pub.cancelled), tc.wantEvents)
			}
		})
	}
}

func TestBookingCancel_BadID(t *testing.T) {
	h := NewBookingHandler(&fakeLedger{}, nil)
	for _, id := range []string{"abc", "0", "-3"} {
		c, rec := newTestCtx(http.MethodPut, "/v1/bookings/"+id+"/cancel", "")
		c.SetParamNames("id")
		c.SetParamValues(id)
		asUser(c, 42, model.RoleUser)

		if err := h.Cancel(c); err != nil {
			t.Fatalf("Cancel: %v", err)
		}
		if rec.Code != http.StatusBadRequest {
			t.Errorf("id %q: status = %d, want 400", id, rec.Code)
		}
	}
}

func TestBookingMyBookings(t *testing.T) {
	ledger := &fakeLedger{
		listForUserFn: func(_ context.Context, userID uint64) ([]model.BookingDetail, error) {
			if userID != 42 {
				t.Errorf("ListForUser(%d), want 42", userID)
			}
			return []model.BookingDetail{
				{Booking: model.Booking{ID: 99, Status: model.BookingConfirmed}},
			}, nil
		},
	}
	h := NewBookingHandler(ledger, nil)

	c, rec := newTestCtx(http.MethodGet, "/v1/bookings/my", "")
	asUser(c, 42, model.RoleUser)

	if err := h.MyBookings(c); err != nil {
		t.Fatalf("MyBookings: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"items"`) {
		t.Errorf("body missing items: %s", rec.Body)
	}
}

func TestBookingListAll_StoreFailure(t *testing.T) {
	ledger := &fakeLedger{
		listAllFn: func(context.Context) ([]model.BookingDetail, error) {
			return nil, context.DeadlineExceeded
		},
	}
	h := NewBookingHandler(ledger, nil)

	c, rec := newTestCtx(http.MethodGet, "/v1/bookings", "")
	asUser(c, 1, model.RoleAdmin)

	if err := h.ListAll(c); err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "store unavailable") {
		t.Errorf("body = %s", rec.Body)
	}
}
