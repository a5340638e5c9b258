package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ARYAMAN170/smart-event-booking-backend/internal/model"
)

// EventCatalog is the slice of the event repository the HTTP layer needs.
// Tests substitute a fake.
type EventCatalog interface {
	List(ctx context.Context, location, date string) ([]model.Event, error)
	GetByID(ctx context.Context, id uint64) (model.Event, error)
	Create(ctx context.Context, e *model.Event) error
	Update(ctx context.Context, e *model.Event) error
	Delete(ctx context.Context, id uint64) error
}

// EventHandler exposes the event catalog over HTTP.  Listing and fetching
// are public; create/update/delete are admin-only (enforced by route
// middleware).
type EventHandler struct {
	Catalog EventCatalog
}

func NewEventHandler(catalog EventCatalog) *EventHandler {
	return &EventHandler{Catalog: catalog}
}

type eventReq struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Location    string  `json:"location"`
	Date        string  `json:"date"` // YYYY-MM-DD
	TotalSeats  int     `json:"total_seats"`
	PriceCents  uint32  `json:"price_cents"`
	ImageURL    *string `json:"img"`
}

func (r *eventReq) validate() string {
	r.Title = strings.TrimSpace(r.Title)
	r.Location = strings.TrimSpace(r.Location)
	r.Date = strings.TrimSpace(r.Date)
	if r.Title == "" {
		return "title is required"
	}
	if r.TotalSeats <= 0 {
		return "total_seats must be positive"
	}
	if r.Date != "" {
		if _, err := time.Parse("2006-01-02", r.Date); err != nil {
			return "date must be YYYY-MM-DD"
		}
	}
	return ""
}

// List handles GET /v1/events with optional ?location= and ?date= filters.
func (h *EventHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	events, err := h.Catalog.List(ctx, c.QueryParam("location"), c.QueryParam("date"))
	if err != nil {
		return writeRepoError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": events})
}

// Get handles GET /v1/events/:id.
func (h *EventHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	e, err := h.Catalog.GetByID(ctx, id)
	if err != nil {
		return writeRepoError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"item": e})
}

// Create handles POST /v1/events (admin).  The seat pool starts full.
func (h *EventHandler) Create(c echo.Context) error {
	var req eventReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	e := model.Event{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Date:        req.Date,
		TotalSeats:  req.TotalSeats,
		PriceCents:  req.PriceCents,
		ImageURL:    req.ImageURL,
	}
	if err := h.Catalog.Create(ctx, &e); err != nil {
		return writeRepoError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"item": e})
}

// Update handles PUT /v1/events/:id (admin).  Changing total_seats shifts
// available_seats by the same delta; the repository keeps the pool within
// bounds.
func (h *EventHandler) Update(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	var req eventReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	e := model.Event{
		ID:          id,
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Date:        req.Date,
		TotalSeats:  req.TotalSeats,
		PriceCents:  req.PriceCents,
		ImageURL:    req.ImageURL,
	}
	if err := h.Catalog.Update(ctx, &e); err != nil {
		return writeRepoError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"item": e})
}

// Delete handles DELETE /v1/events/:id (admin).  Refused with 409 while
// confirmed bookings exist.
func (h *EventHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Catalog.Delete(ctx, id); err != nil {
		return writeRepoError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
