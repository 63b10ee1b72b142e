package service

import "errors"

// Common service-level errors
var (
	// ErrInvalidCredentials indicates the email or password did not match.
	// Callers must not reveal which one was wrong.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrNotOwned indicates the authenticated user does not own the
	// requested resource
	ErrNotOwned = errors.New("resource is not owned by the authenticated user")
)
