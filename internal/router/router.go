// Package router defines how HTTP routes are registered for the API. Paths
// mirror the contract existing clients already speak.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/tobenna/room-booking/internal/handler"
)

// RegisterPublic registers the unauthenticated browse endpoints: room and
// review listings plus review creation. The cache middleware (a no-op when
// Redis is absent) wraps the listing routes so hot catalogs skip the store.
func RegisterPublic(e *echo.Echo, rooms *handler.RoomHandler, reviews *handler.ReviewHandler, cache echo.MiddlewareFunc) {
	e.GET("/healthz", handler.Health)

	e.GET("/", rooms.List, cache)
	e.GET("/roomsSortByPrice", rooms.ListByPrice, cache)
	e.GET("/latestRoom", rooms.Latest, cache)
	e.GET("/room/:id", rooms.GetByID)

	e.GET("/latestReview", reviews.Latest, cache)
	e.GET("/all-reviews", reviews.ListByRoom, cache)
	e.POST("/review", reviews.Create)
}

// RegisterSession registers login and logout. Neither consults the store;
// login signs a token for the asserted identity and logout clears the
// cookie.
func RegisterSession(e *echo.Echo, sessions *handler.SessionHandler) {
	e.POST("/session", sessions.Create)
	e.POST("/logout", sessions.Clear)
}

// RegisterBookings registers the booking surface. Every operation that
// reads or mutates a booking requires a session; the availability PATCH
// stays open for compatibility with the old two-step client flow.
func RegisterBookings(e *echo.Echo, bookings *handler.BookingHandler, session echo.MiddlewareFunc) {
	e.GET("/room-bookings", bookings.ListByOwner, session)
	e.POST("/room/booking", bookings.Create, session)
	e.DELETE("/booking/:id", bookings.Cancel, session)
	e.PATCH("/update-booking-date/:id", bookings.UpdateDay, session)

	e.PATCH("/room-availability/:id", bookings.SetAvailability)
}
