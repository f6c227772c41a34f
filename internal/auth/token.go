// Package auth implements the session token lifecycle and the ownership
// guard. Tokens are HS256 JWTs carrying the caller's email; they are issued
// at login, delivered in an httpOnly cookie, and verified on every protected
// request. Nothing in this package touches the store.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the verified identity extracted from a session token. It lives
// for a single request and is passed explicitly; it is never cached or
// shared across requests.
type Claims struct {
	Email string
}

// ErrTokenMissing and ErrTokenInvalid both translate to the same 401
// response. They stay distinct so middleware can log which case occurred.
var (
	ErrTokenMissing = errors.New("auth: session token missing")
	ErrTokenInvalid = errors.New("auth: session token invalid")
)

// NewSessionToken builds and signs an HS256 JWT for the given identity. It
// returns the serialized token and its expiry. The expiry is embedded in the
// token itself; verification needs no server-side session state.
func NewSessionToken(secret, email string, ttl time.Duration) (string, time.Time, error) {
	now := time.Now().UTC()
	exp := now.Add(ttl)
	claims := jwt.MapClaims{
		"email": email,
		"exp":   exp.Unix(),
		"iat":   now.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// Verifier validates session tokens against the server secret. The clock is
// a field so expiry behavior can be tested without sleeping.
type Verifier struct {
	secret []byte
	now    func() time.Time
}

// NewVerifier returns a Verifier bound to the signing secret.
func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret), now: time.Now}
}

// Verify checks the signature and expiry of a raw token string and returns
// the identity it carries. An empty string yields ErrTokenMissing; every
// other failure (bad signature, wrong algorithm, expired, malformed claims)
// yields ErrTokenInvalid.
func (v *Verifier) Verify(raw string) (Claims, error) {
	if raw == "" {
		return Claims{}, ErrTokenMissing
	}
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return v.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}), jwt.WithTimeFunc(func() time.Time { return v.now() }))
	if err != nil || !tok.Valid {
		return Claims{}, ErrTokenInvalid
	}
	mc, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, ErrTokenInvalid
	}
	email, _ := mc["email"].(string)
	if email == "" {
		return Claims{}, ErrTokenInvalid
	}
	return Claims{Email: email}, nil
}
