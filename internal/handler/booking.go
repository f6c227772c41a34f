package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tobenna/room-booking/internal/auth"
	"github.com/tobenna/room-booking/internal/booking"
	"github.com/tobenna/room-booking/internal/middleware"
	"github.com/tobenna/room-booking/internal/model"
	"github.com/tobenna/room-booking/internal/repository"
)

// BookingHandler exposes the booking engine over HTTP. All methods assume
// session middleware ran first where a claim is required; error mapping
// follows one taxonomy: 401 unauthenticated, 403 forbidden, 404 not found,
// 400 invalid argument, 409 conflict, 502 store unavailable.
type BookingHandler struct {
	Engine *booking.Engine
}

func NewBookingHandler(engine *booking.Engine) *BookingHandler {
	if engine == nil {
		panic("nil engine passed to NewBookingHandler")
	}
	return &BookingHandler{Engine: engine}
}

const dayLayout = "2006-01-02"

type createBookingReq struct {
	RoomID     uint64 `json:"room_id"`
	BookingDay string `json:"booking_day"`
	UserEmail  string `json:"user_email"`
}

// Create handles POST /room/booking. The owner is stamped from the session;
// a body asserting someone else's email is rejected. A room that lost the
// availability race returns 409 so the client can pick another room.
func (h *BookingHandler) Create(c echo.Context) error {
	claims, ok := middleware.CurrentClaims(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized access"})
	}
	var req createBookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.RoomID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}
	if _, err := time.Parse(dayLayout, req.BookingDay); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking day"})
	}

	b := &model.Booking{
		RoomID:     req.RoomID,
		UserEmail:  req.UserEmail,
		BookingDay: req.BookingDay,
	}
	if err := h.Engine.Create(c.Request().Context(), claims, b); err != nil {
		return bookingError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"booking": b})
}

// Cancel handles DELETE /booking/:id. Ownership is resolved through the
// booking itself, so the route needs no email parameter.
func (h *BookingHandler) Cancel(c echo.Context) error {
	claims, ok := middleware.CurrentClaims(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized access"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	if err := h.Engine.Cancel(c.Request().Context(), claims, id); err != nil {
		return bookingError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"deleted_count": 1})
}

// ListByOwner handles GET /room-bookings?email=E. The guard compares E
// against the verified claim; a mismatch is 403 and leaks nothing about
// either scope's bookings.
func (h *BookingHandler) ListByOwner(c echo.Context) error {
	claims, ok := middleware.CurrentClaims(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized access"})
	}
	email := c.QueryParam("email")
	if email == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email is required"})
	}
	items, err := h.Engine.ListByOwner(c.Request().Context(), claims, email)
	if err != nil {
		return bookingError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

type updateDayReq struct {
	BookingDay string `json:"booking_day"`
}

// UpdateDay handles PATCH /update-booking-date/:id. Only the date changes;
// every other booking attribute and the room's availability stay untouched.
func (h *BookingHandler) UpdateDay(c echo.Context) error {
	claims, ok := middleware.CurrentClaims(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized access"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	var req updateDayReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if _, err := time.Parse(dayLayout, req.BookingDay); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking day"})
	}
	if err := h.Engine.UpdateDay(c.Request().Context(), claims, id, req.BookingDay); err != nil {
		return bookingError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"modified_count": 1})
}

type availabilityReq struct {
	Availability *bool `json:"availability"`
}

// SetAvailability handles PATCH /room-availability/:id. It is idempotent
// and kept for compatibility with clients of the old two-step flow.
func (h *BookingHandler) SetAvailability(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}
	var req availabilityReq
	if err := c.Bind(&req); err != nil || req.Availability == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "availability is required"})
	}
	if err := h.Engine.SetAvailability(c.Request().Context(), id, *req.Availability); err != nil {
		return bookingError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// bookingError maps engine and store errors onto the response taxonomy.
// Anything unrecognized is treated as the store being unreachable.
func bookingError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, auth.ErrForbidden):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden access"})
	case errors.Is(err, repository.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
	case errors.Is(err, repository.ErrConflict):
		return c.JSON(http.StatusConflict, echo.Map{"error": "room is no longer available"})
	default:
		c.Logger().Errorf("store error: %v", err)
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "store unavailable"})
	}
}
