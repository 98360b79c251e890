package service

import "errors"

// Sentinel errors shared by the services. Handlers translate these to HTTP
// statuses; anything else maps to a generic 500 without leaking detail.
var (
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrInvalidInput = errors.New("invalid input")
)
