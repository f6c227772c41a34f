package auth

import "errors"

// ErrForbidden is returned when a verified caller requests a resource scope
// they do not own. Handlers translate this into an HTTP 403 response,
// distinct from the 401 used for verification failures.
var ErrForbidden = errors.New("auth: forbidden")

// RequireOwner approves an operation scoped to ownerEmail. Identifiers are
// emails supplied verbatim at login, so the comparison is exact and
// case-sensitive. An empty claim never matches anything.
func RequireOwner(claims Claims, ownerEmail string) error {
	if claims.Email == "" || claims.Email != ownerEmail {
		return ErrForbidden
	}
	return nil
}
