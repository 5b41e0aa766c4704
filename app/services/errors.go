package services

import "errors"

// Service-level failure taxonomy. Controllers map these onto HTTP status
// codes with errors.Is; services never return raw persistence errors for
// expected conditions.
var (
	ErrNotFound          = errors.New("resource not found")
	ErrForbidden         = errors.New("access denied")
	ErrInvalidInput      = errors.New("invalid input")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrUnavailable       = errors.New("service unavailable")
	ErrEmailTaken        = errors.New("email already registered")
	ErrInvalidLogin      = errors.New("invalid email or password")
)
