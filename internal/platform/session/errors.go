package session

import "errors"

var (
	// ErrSessionNotFound means the session id is unknown or the token TTL
	// elapsed; the caller must log in again
	ErrSessionNotFound = errors.New("session not found or expired")

	// ErrMissingCredentials is returned when username or password is empty
	ErrMissingCredentials = errors.New("username and password are required")
)
