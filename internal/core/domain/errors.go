package domain

import "errors"

// Closed set of failure kinds the service layer can return. The HTTP
// boundary translates them to status codes; nothing below the boundary
// deals in transport codes.
var (
	ErrUnauthorized = errors.New("no valid identity")
	ErrForbidden    = errors.New("access forbidden")
	ErrNotFound     = errors.New("entity not found")
	ErrNoContent    = errors.New("nothing to return")
	ErrNotModified  = errors.New("store reported no effect")
	ErrBadRequest   = errors.New("invalid input")
)
