package apperr

import "errors"

// ErrInvalid is returned when input fails validation at the boundary.
var ErrInvalid = errors.New("invalid input")

// ErrConflict signals a state conflict, e.g. an illegal order status transition.
var ErrConflict = errors.New("conflict")

// ErrNotFound indicates that the requested resource does not exist.
var ErrNotFound = errors.New("not found")

// ErrUnauthorized is returned on a credential mismatch.
var ErrUnauthorized = errors.New("invalid credentials")
