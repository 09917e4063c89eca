package domain

import (
	"context"
	"errors"
)

// Sentinel errors shared by the gateway and the repositories.
var (
	// ErrUnauthenticated means there is no usable token pair: nothing stored,
	// or the refresh credential was rejected. The only recovery is a fresh login.
	ErrUnauthenticated = errors.New("not authenticated")

	// ErrInvalidCredentials means the server rejected a login or sign-up.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUserExists means sign-up failed because the email is taken.
	ErrUserExists = errors.New("user already exists")

	// ErrCouldNotConnect is a transport-level connection failure.
	ErrCouldNotConnect = errors.New("could not connect")

	// ErrTimeout is a transport-level timeout.
	ErrTimeout = errors.New("request timed out")
)

// ErrorKind is the user-visible classification of a failure.
type ErrorKind int

const (
	ErrorUnknown ErrorKind = iota
	ErrorUnauthenticated
	ErrorInvalidCredentials
	ErrorCouldNotConnect
	ErrorTimeout
)

func (k ErrorKind) String() string {
	switch k {
	case ErrorUnauthenticated:
		return "unauthenticated"
	case ErrorInvalidCredentials:
		return "invalid_credentials"
	case ErrorCouldNotConnect:
		return "could_not_connect"
	case ErrorTimeout:
		return "timeout"
	default:
		return "unknown"
	}
}

// Classify maps an error onto the user-visible taxonomy. Callers must filter
// cancellations with IsCancel before classifying; cancellation is not an error.
func Classify(err error) ErrorKind {
	switch {
	case errors.Is(err, ErrUnauthenticated):
		return ErrorUnauthenticated
	case errors.Is(err, ErrInvalidCredentials), errors.Is(err, ErrUserExists):
		return ErrorInvalidCredentials
	case errors.Is(err, ErrTimeout):
		return ErrorTimeout
	case errors.Is(err, ErrCouldNotConnect):
		return ErrorCouldNotConnect
	default:
		return ErrorUnknown
	}
}

// IsCancel reports whether err is a context cancellation, which must never be
// surfaced on the error channel.
func IsCancel(err error) bool {
	return errors.Is(err, context.Canceled)
}
