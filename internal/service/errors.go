package service

import "errors"

// Error classes. Handlers map these to HTTP status codes with errors.Is.
var (
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
)

// Error is a failure with a message that is safe to show to the client.
// It unwraps to its class.
type Error struct {
	Class   error
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Class }

func newError(class error, message string) error {
	return &Error{Class: class, Message: message}
}

// Unknown email and wrong password share this value so callers cannot tell
// them apart.
var ErrInvalidCredentials error = &Error{Class: ErrUnauthorized, Message: "Invalid credentials"}

var (
	errMissingFields      = newError(ErrValidation, "Missing required fields")
	errInvalidRole        = newError(ErrValidation, "Invalid role")
	errEmailInUse         = newError(ErrConflict, "Email already in use")
	errInvalidToken       = newError(ErrUnauthorized, "Invalid or expired token")
	errTokenUserNotFound  = newError(ErrUnauthorized, "User not found")
	errForbidden          = newError(ErrForbidden, "Forbidden")
	errUserNotFound       = newError(ErrNotFound, "User not found")
	errGoalNotFound       = newError(ErrNotFound, "Goal not found")
	errReminderNotFound   = newError(ErrNotFound, "Reminder not found")
	errPatientNotAssigned = newError(ErrNotFound, "Patient not assigned to this provider")
)
