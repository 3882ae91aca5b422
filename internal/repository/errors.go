// Package repository defines sentinel errors shared across repositories.
// Handlers translate them into HTTP statuses: ErrNotFound -> 404,
// ErrForbidden -> 403, ErrEmailExists -> 409, ErrConflict -> 409.
package repository

import "errors"

// ErrNotFound is returned when a row does not exist.
var ErrNotFound = errors.New("not found")

// ErrForbidden is returned when the caller does not own the row it is
// trying to mutate.
var ErrForbidden = errors.New("forbidden")

// ErrEmailExists is returned on signup with an already registered email.
var ErrEmailExists = errors.New("email already exists")

// ErrConflict is returned when an operation cannot proceed because of the
// row's current state, such as reviewing a booking that is not completed.
var ErrConflict = errors.New("conflict")
