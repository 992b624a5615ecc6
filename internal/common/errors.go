package common

import (
	"errors"
	"net/http"
)

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors.
	ErrorUnauthorized = errors.New("unauthorized")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
	ErrTokenRevoked = errors.New("token revoked")
)

// Kind classifies an application error.
type Kind int

const (
	KindServer Kind = iota
	KindValidation
	KindAuthentication
	KindNotFound
	KindConfiguration
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuthentication:
		return "authentication"
	case KindNotFound:
		return "not_found"
	case KindConfiguration:
		return "configuration"
	default:
		return "server"
	}
}

// Error is the error type returned by services. Message is safe to show to
// clients; Err carries the underlying cause for logs.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Validation reports malformed or missing input (400).
func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Status: http.StatusBadRequest, Message: msg}
}

// Unauthenticated reports a missing, invalid or expired credential (401).
func Unauthenticated(msg string, err error) *Error {
	return &Error{Kind: KindAuthentication, Status: http.StatusUnauthorized, Message: msg, Err: err}
}

// NotFound reports an unknown resource. The status is 404 for owned
// resources and 411 for share hashes.
func NotFound(status int, msg string) *Error {
	return &Error{Kind: KindNotFound, Status: status, Message: msg, Err: ErrorNotFound}
}

// Configuration reports an invalid or incomplete configuration. It is only
// produced at startup.
func Configuration(msg string) *Error {
	return &Error{Kind: KindConfiguration, Status: http.StatusInternalServerError, Message: msg}
}

// Internal reports an unexpected failure (500).
func Internal(msg string, err error) *Error {
	return &Error{Kind: KindServer, Status: http.StatusInternalServerError, Message: msg, Err: err}
}

// AsError extracts an *Error from err's chain.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
