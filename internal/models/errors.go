package models

import "errors"

// Domain errors shared between repositories, services and handlers.
// The messages of the conflict and credential errors are client-facing
// and serialized verbatim into error responses.
var (
	// ErrNotFound is returned when a requested record does not exist
	ErrNotFound = errors.New("not found")
	// ErrUsernameExists is returned when registering an already-taken username
	ErrUsernameExists = errors.New("Username already exists")
	// ErrEmailExists is returned when registering an already-taken email
	ErrEmailExists = errors.New("Email already exists")
	// ErrInvalidCredentials is returned for both an unknown username and a
	// wrong password, so login failures never reveal whether a user exists
	ErrInvalidCredentials = errors.New("Invalid credentials")
	// ErrThreadLocked is returned when posting to a locked forum thread
	ErrThreadLocked = errors.New("Thread is locked")
)
