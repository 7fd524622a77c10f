package domain

import "errors"

// Core error taxonomy. Services return these (possibly wrapped); the HTTP
// layer maps them onto status codes and response bodies.
var (
	// ErrDuplicateEmail means the registration email is already taken.
	ErrDuplicateEmail = errors.New("email already registered")

	// ErrInvalidCredentials covers both unknown email and wrong password.
	// The two cases are intentionally indistinguishable to callers.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUnauthenticated means the request carries no valid session.
	ErrUnauthenticated = errors.New("authentication required")

	// ErrForbidden means the session is valid but does not own the resource.
	ErrForbidden = errors.New("not the resource owner")

	// ErrNotFound means the addressed resource does not exist.
	ErrNotFound = errors.New("resource not found")

	// ErrMalformed means the input failed shape or field validation.
	ErrMalformed = errors.New("malformed input")

	// ErrStoreUnavailable means the persistence layer failed. Not retried.
	ErrStoreUnavailable = errors.New("store unavailable")
)
