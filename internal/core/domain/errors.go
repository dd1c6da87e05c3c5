package domain

import "errors"

// Domain errors. Services wrap these with context; callers classify with errors.Is.
var (
	ErrNotFound      = errors.New("resource not found")
	ErrAlreadyExists = errors.New("resource already exists")
	ErrInactive      = errors.New("resource is inactive")
	ErrBusinessRule  = errors.New("business rule violation")
	ErrInvalidInput  = errors.New("invalid input")

	// ErrConflict is transient: the transaction lost a race and may be retried.
	ErrConflict = errors.New("concurrent modification conflict")
)

// ErrorKind is a coarse classification of domain errors
type ErrorKind string

const (
	KindNotFound      ErrorKind = "not_found"
	KindAlreadyExists ErrorKind = "already_exists"
	KindInactive      ErrorKind = "inactive"
	KindBusinessRule  ErrorKind = "business_rule_violation"
	KindInvalidInput  ErrorKind = "invalid_input"
	KindConflict      ErrorKind = "conflict"
	KindUnknown       ErrorKind = "unknown"
)

// KindOf classifies err by the domain sentinel it wraps
func KindOf(err error) ErrorKind {
	switch {
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrAlreadyExists):
		return KindAlreadyExists
	case errors.Is(err, ErrInactive):
		return KindInactive
	case errors.Is(err, ErrBusinessRule):
		return KindBusinessRule
	case errors.Is(err, ErrInvalidInput):
		return KindInvalidInput
	case errors.Is(err, ErrConflict):
		return KindConflict
	default:
		return KindUnknown
	}
}
