package middleware // middleware provides shared request processing for handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tobenna/room-booking/internal/auth"
)

// SessionCookie is the name of the httpOnly cookie carrying the session
// token. It matches what the session handler sets at login.
const SessionCookie = "token"

const claimsKey = "session_claims"

// Session returns middleware that verifies the session cookie and injects
// the resulting identity claims into the request context. A missing cookie
// and an invalid or expired token produce the same 401 body; the difference
// is only visible in the server log.
func Session(v *auth.Verifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := ""
			if ck, err := c.Cookie(SessionCookie); err == nil {
				raw = ck.Value
			}
			claims, err := v.Verify(raw)
			if err != nil {
				c.Logger().Infof("session rejected: %v", err)
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized access"})
			}
			c.Set(claimsKey, claims)
			return next(c)
		}
	}
}

// CurrentClaims returns the identity claims stored by Session. The second
// return is false when the request passed through no session middleware.
func CurrentClaims(c echo.Context) (auth.Claims, bool) {
	claims, ok := c.Get(claimsKey).(auth.Claims)
	return claims, ok
}
