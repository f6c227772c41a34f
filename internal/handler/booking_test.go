package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tobenna/room-booking/internal/auth"
	"github.com/tobenna/room-booking/internal/booking"
	"github.com/tobenna/room-booking/internal/middleware"
	"github.com/tobenna/room-booking/internal/model"
	"github.com/tobenna/room-booking/internal/repository"
)

const handlerTestSecret = "handler-test-secret"

// memStore is the store double for handler tests. It honors the same
// contract as the SQL repositories: create and delete move the room's
// availability atomically, sentinel errors signal not-found and conflict.
type memStore struct {
	mu       sync.Mutex
	nextID   uint64
	rooms    map[uint64]*model.Room
	bookings map[uint64]*model.Booking
}

func newMemStore(rooms ...*model.Room) *memStore {
	s := &memStore{
		rooms:    make(map[uint64]*model.Room),
		bookings: make(map[uint64]*model.Booking),
	}
	for _, r := range rooms {
		s.rooms[r.ID] = r
	}
	return s
}

func (s *memStore) Create(_ context.Context, b *model.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rooms[b.RoomID]
	if !ok {
		return repository.ErrNotFound
	}
	if !r.Availability {
		return repository.ErrConflict
	}
	r.Availability = false
	s.nextID++
	b.ID = s.nextID
	b.RoomName = r.Name
	b.Price = r.Price
	b.CreatedAt = time.Now().UTC()
	cp := *b
	s.bookings[b.ID] = &cp
	return nil
}

func (s *memStore) Delete(_ context.Context, id uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[id]
	if !ok {
		return repository.ErrNotFound
	}
	delete(s.bookings, id)
	if r, ok := s.rooms[b.RoomID]; ok {
		r.Availability = true
	}
	return nil
}

func (s *memStore) GetByID(_ context.Context, id uint64) (*model.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (s *memStore) ListByEmail(_ context.Context, email string) ([]model.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := []model.Booking{}
	for _, b := range s.bookings {
		if b.UserEmail == email {
			items = append(items, *b)
		}
	}
	return items, nil
}

func (s *memStore) UpdateDay(_ context.Context, id uint64, day string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[id]
	if !ok {
		return repository.ErrNotFound
	}
	b.BookingDay = day
	return nil
}

func (s *memStore) SetAvailability(_ context.Context, id uint64, available bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rooms[id]
	if !ok {
		return repository.ErrNotFound
	}
	r.Availability = available
	return nil
}

func newBookingServer(t *testing.T, store *memStore) *echo.Echo {
	t.Helper()
	h := NewBookingHandler(booking.NewEngine(store, store, nil))
	session := middleware.Session(auth.NewVerifier(handlerTestSecret))

	e := echo.New()
	e.GET("/room-bookings", h.ListByOwner, session)
	e.POST("/room/booking", h.Create, session)
	e.DELETE("/booking/:id", h.Cancel, session)
	e.PATCH("/update-booking-date/:id", h.UpdateDay, session)
	e.PATCH("/room-availability/:id", h.SetAvailability)
	return e
}

func sessionCookie(t *testing.T, email string) *http.Cookie {
	t.Helper()
	token, _, err := auth.NewSessionToken(handlerTestSecret, email, time.Hour)
	if err != nil {
		t.Fatalf("NewSessionToken: %v", err)
	}
	return &http.Cookie{Name: middleware.SessionCookie, Value: token}
}

func doJSON(e *echo.Echo, method, target, body string, cookie *http.Cookie) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestBookingRoutesRequireSession(t *testing.T) {
	e := newBookingServer(t, newMemStore())
	for _, rt := range []struct{ method, target string }{
		{http.MethodGet, "/room-bookings?email=guest@example.com"},
		{http.MethodPost, "/room/booking"},
		{http.MethodDelete, "/booking/1"},
		{http.MethodPatch, "/update-booking-date/1"},
	} {
		rec := doJSON(e, rt.method, rt.target, "", nil)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s %s: status = %d, want 401", rt.method, rt.target, rec.Code)
		}
	}
}

func TestCreateBooking(t *testing.T) {
	store := newMemStore(&model.Room{ID: 7, Name: "Sea View", Price: 120, Availability: true})
	e := newBookingServer(t, store)
	ck := sessionCookie(t, "guest@example.com")

	rec := doJSON(e, http.MethodPost, "/room/booking", `{"room_id":7,"booking_day":"2026-09-10"}`, ck)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (body %s)", rec.Code, rec.Body.String())
	}
	var resp struct {
		Booking model.Booking `json:"booking"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Booking.ID == 0 || resp.Booking.UserEmail != "guest@example.com" {
		t.Fatalf("booking = %+v", resp.Booking)
	}

	// Same room again: the availability race loser gets a conflict.
	rec = doJSON(e, http.MethodPost, "/room/booking", `{"room_id":7,"booking_day":"2026-09-11"}`, ck)
	if rec.Code != http.StatusConflict {
		t.Fatalf("second create: status = %d, want 409", rec.Code)
	}
}

func TestCreateBookingValidation(t *testing.T) {
	store := newMemStore(&model.Room{ID: 7, Availability: true})
	e := newBookingServer(t, store)
	ck := sessionCookie(t, "guest@example.com")

	cases := []struct {
		name string
		body string
		want int
	}{
		{"missing room", `{"booking_day":"2026-09-10"}`, http.StatusBadRequest},
		{"bad day", `{"room_id":7,"booking_day":"soon"}`, http.StatusBadRequest},
		{"unknown room", `{"room_id":99,"booking_day":"2026-09-10"}`, http.StatusNotFound},
		{"foreign owner", `{"room_id":7,"booking_day":"2026-09-10","user_email":"other@example.com"}`, http.StatusForbidden},
	}
	for _, tc := range cases {
		rec := doJSON(e, http.MethodPost, "/room/booking", tc.body, ck)
		if rec.Code != tc.want {
			t.Errorf("%s: status = %d, want %d", tc.name, rec.Code, tc.want)
		}
	}
}

func TestCancelBooking(t *testing.T) {
	store := newMemStore(&model.Room{ID: 7, Availability: true})
	e := newBookingServer(t, store)
	ck := sessionCookie(t, "guest@example.com")

	rec := doJSON(e, http.MethodPost, "/room/booking", `{"room_id":7,"booking_day":"2026-09-10"}`, ck)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: status = %d", rec.Code)
	}

	if rec := doJSON(e, http.MethodDelete, "/booking/nope", "", ck); rec.Code != http.StatusBadRequest {
		t.Fatalf("bad id: status = %d, want 400", rec.Code)
	}
	if rec := doJSON(e, http.MethodDelete, "/booking/42", "", ck); rec.Code != http.StatusNotFound {
		t.Fatalf("unknown id: status = %d, want 404", rec.Code)
	}
	if rec := doJSON(e, http.MethodDelete, "/booking/1", "", sessionCookie(t, "other@example.com")); rec.Code != http.StatusForbidden {
		t.Fatalf("foreign cancel: status = %d, want 403", rec.Code)
	}

	rec = doJSON(e, http.MethodDelete, "/booking/1", "", ck)
	if rec.Code != http.StatusOK {
		t.Fatalf("cancel: status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"deleted_count":1`) {
		t.Fatalf("body = %s", rec.Body.String())
	}
}

func TestListBookingsByOwner(t *testing.T) {
	store := newMemStore(&model.Room{ID: 7, Availability: true})
	e := newBookingServer(t, store)
	ck := sessionCookie(t, "guest@example.com")

	if rec := doJSON(e, http.MethodGet, "/room-bookings", "", ck); rec.Code != http.StatusBadRequest {
		t.Fatalf("missing email: status = %d, want 400", rec.Code)
	}
	if rec := doJSON(e, http.MethodGet, "/room-bookings?email=other@example.com", "", ck); rec.Code != http.StatusForbidden {
		t.Fatalf("foreign scope: status = %d, want 403", rec.Code)
	}

	rec := doJSON(e, http.MethodGet, "/room-bookings?email=guest@example.com", "", ck)
	if rec.Code != http.StatusOK {
		t.Fatalf("own scope: status = %d, want 200", rec.Code)
	}
	var resp struct {
		Items []model.Booking `json:"items"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Items) != 0 {
		t.Fatalf("items = %+v, want empty list", resp.Items)
	}
}

func TestUpdateBookingDay(t *testing.T) {
	store := newMemStore(&model.Room{ID: 7, Availability: true})
	e := newBookingServer(t, store)
	ck := sessionCookie(t, "guest@example.com")

	if rec := doJSON(e, http.MethodPost, "/room/booking", `{"room_id":7,"booking_day":"2026-09-10"}`, ck); rec.Code != http.StatusCreated {
		t.Fatalf("create: status = %d", rec.Code)
	}

	if rec := doJSON(e, http.MethodPatch, "/update-booking-date/1", `{"booking_day":"whenever"}`, ck); rec.Code != http.StatusBadRequest {
		t.Fatalf("bad day: status = %d, want 400", rec.Code)
	}
	rec := doJSON(e, http.MethodPatch, "/update-booking-date/1", `{"booking_day":"2026-09-12"}`, ck)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}
	got, err := store.GetByID(context.Background(), 1)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.BookingDay != "2026-09-12" {
		t.Fatalf("booking day = %q, want 2026-09-12", got.BookingDay)
	}
}

func TestSetRoomAvailability(t *testing.T) {
	store := newMemStore(&model.Room{ID: 7, Availability: true})
	e := newBookingServer(t, store)

	if rec := doJSON(e, http.MethodPatch, "/room-availability/7", `{}`, nil); rec.Code != http.StatusBadRequest {
		t.Fatalf("missing flag: status = %d, want 400", rec.Code)
	}
	if rec := doJSON(e, http.MethodPatch, "/room-availability/99", `{"availability":false}`, nil); rec.Code != http.StatusNotFound {
		t.Fatalf("unknown room: status = %d, want 404", rec.Code)
	}
	for i := 0; i < 2; i++ {
		rec := doJSON(e, http.MethodPatch, "/room-availability/7", `{"availability":false}`, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("set #%d: status = %d, want 200", i+1, rec.Code)
		}
	}
	if store.rooms[7].Availability {
		t.Fatal("room still available")
	}
}
