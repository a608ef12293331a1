// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios. For
// example, ErrForbidden indicates that the current user is not
// authorized to perform an operation on a booking owned by someone
// else, while ErrInvalidTransition signals that the booking's current
// status disallows the requested target status.
package repository

import "errors"

// ErrNotFound is returned when the requested booking does not exist.
// Handlers should translate this into an HTTP 404 response.
var ErrNotFound = errors.New("not found")

// ErrForbidden is returned when the caller is authenticated but not
// authorized for the requested transition: a customer touching a
// booking they do not own, or a role requesting a target status
// outside its allowed set. Handlers should translate this into an
// HTTP 403 response.
var ErrForbidden = errors.New("forbidden")

// ErrInvalidTransition is returned when the caller is authorized but
// the booking's current status does not permit the requested target.
// Re-applying an already-applied transition also lands here, so a
// retried request can never double-apply. Handlers should translate
// this into an HTTP 400 response.
var ErrInvalidTransition = errors.New("invalid status transition")
