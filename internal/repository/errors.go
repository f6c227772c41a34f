// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as handlers
// to distinguish between different failure scenarios: ErrNotFound signals a
// reference to a room or booking that does not exist, while ErrConflict
// signals that a booking lost the availability race on its room.
package repository

import "errors"

// ErrNotFound is returned when the referenced room or booking does not
// exist. Handlers should translate this into an HTTP 404 response.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when a booking cannot be created because the room
// was no longer available at the moment of the conditional write. Handlers
// should translate this into an HTTP 409 response.
var ErrConflict = errors.New("conflict")
