package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tobenna/room-booking/internal/auth"
	"github.com/tobenna/room-booking/internal/config"
	"github.com/tobenna/room-booking/internal/middleware"
)

// SessionHandler issues and clears session tokens. The token is delivered in
// an httpOnly cookie so it stays out of reach of client-side scripts; logout
// clears the cookie without consulting the store.
type SessionHandler struct {
	Cfg config.Config
}

func NewSessionHandler(cfg config.Config) *SessionHandler {
	return &SessionHandler{Cfg: cfg}
}

type sessionReq struct {
	Email string `json:"email"`
}

// Create handles POST /session. It signs a session token for the asserted
// identity with a fixed validity window and sets it as the session cookie.
func (h *SessionHandler) Create(c echo.Context) error {
	var req sessionReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email required"})
	}

	ttl := time.Duration(h.Cfg.SessionTTLMin) * time.Minute
	token, exp, err := auth.NewSessionToken(h.Cfg.JWTSecret, req.Email, ttl)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue token failed"})
	}

	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  exp,
		HttpOnly: true,
		Secure:   h.Cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// Clear handles POST /logout. Expiring the cookie is all that is needed:
// tokens are stateless, so there is nothing server-side to invalidate.
func (h *SessionHandler) Clear(c echo.Context) error {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.Cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
