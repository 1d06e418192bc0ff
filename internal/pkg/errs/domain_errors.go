package errs

import "errors"

// Error taxonomy shared by every layer. Domain sentinels carry one of these
// markers so the transport layer can map them without knowing each sentinel.
var (
	ErrValidation   = errors.New("validation error")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("state conflict")
	ErrForbidden    = errors.New("forbidden")
	ErrUnauthorized = errors.New("unauthorized")

	// Store failures worth retrying (serialization failure, deadlock, connection loss).
	ErrTransient = errors.New("transient store failure")
)

func Validation(msg string) error   { return Define(msg, ErrValidation) }
func NotFound(msg string) error     { return Define(msg, ErrNotFound) }
func Conflict(msg string) error     { return Define(msg, ErrConflict) }
func Forbidden(msg string) error    { return Define(msg, ErrForbidden) }
func Unauthorized(msg string) error { return Define(msg, ErrUnauthorized) }

func IsValidation(err error) bool   { return Is(err, ErrValidation) }
func IsNotFound(err error) bool     { return Is(err, ErrNotFound) }
func IsConflict(err error) bool     { return Is(err, ErrConflict) }
func IsForbidden(err error) bool    { return Is(err, ErrForbidden) }
func IsUnauthorized(err error) bool { return Is(err, ErrUnauthorized) }
func IsTransient(err error) bool    { return Is(err, ErrTransient) }
