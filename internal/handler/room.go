package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/tobenna/room-booking/internal/repository"
)

// RoomHandler serves the read-only room browsing endpoints. These are plain
// passthrough over the store; no authentication and no invariant logic.
type RoomHandler struct {
	Rooms *repository.RoomRepo
}

func NewRoomHandler(rooms *repository.RoomRepo) *RoomHandler {
	if rooms == nil {
		panic("nil repository passed to NewRoomHandler")
	}
	return &RoomHandler{Rooms: rooms}
}

const latestLimit = 6

// List handles GET /. It returns every room.
func (h *RoomHandler) List(c echo.Context) error {
	rooms, err := h.Rooms.List(c.Request().Context())
	if err != nil {
		return bookingError(c, err)
	}
	return c.JSON(http.StatusOK, rooms)
}

// ListByPrice handles GET /roomsSortByPrice, cheapest first.
func (h *RoomHandler) ListByPrice(c echo.Context) error {
	rooms, err := h.Rooms.ListByPrice(c.Request().Context())
	if err != nil {
		return bookingError(c, err)
	}
	return c.JSON(http.StatusOK, rooms)
}

// Latest handles GET /latestRoom and returns the six newest rooms.
func (h *RoomHandler) Latest(c echo.Context) error {
	rooms, err := h.Rooms.Latest(c.Request().Context(), latestLimit)
	if err != nil {
		return bookingError(c, err)
	}
	return c.JSON(http.StatusOK, rooms)
}

// GetByID handles GET /room/:id. Malformed ids are 400, unknown ids 404.
func (h *RoomHandler) GetByID(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}
	room, err := h.Rooms.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return bookingError(c, err)
	}
	return c.JSON(http.StatusOK, room)
}
