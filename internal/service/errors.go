package service

import (
	"errors"
)

// Typed failures surfaced to the API layer. The service never retries and
// never swallows an error: anything not in this list is a backend failure
// and is wrapped with context and propagated.
var (
	// ErrNotFound means a referenced record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrUnauthorized means the caller is not allowed to act on the record.
	ErrUnauthorized = errors.New("not allowed")

	// ErrInvalidState means an operation precondition does not hold, for
	// example accepting a friend request that was already handled.
	ErrInvalidState = errors.New("operation precondition failed")

	// ErrInvalidInput means the request itself is malformed beyond what
	// binding validation catches, for example an unknown expense category.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidCredentials means login failed.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrEmailTaken means sign-up used an already registered email.
	ErrEmailTaken = errors.New("email already registered")
)
