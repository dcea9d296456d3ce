package store

import "errors"

// Common store errors used across backend adapters.
var (
	// ErrBackend is returned when the remote service rejected or failed a call.
	ErrBackend = errors.New("backend request failed")

	// ErrNoRows is returned when a lookup by identity matched nothing.
	ErrNoRows = errors.New("no rows returned")

	// ErrInvalidCredentials is returned when a sign-in or session refresh is
	// rejected by the identity service.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidEntity is returned when a write violates a backend constraint.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrDuplicate is returned when a write violates a uniqueness constraint.
	ErrDuplicate = errors.New("entity already exists")

	// ErrNoClient is returned when a client could not be acquired, typically
	// because no valid principal accompanied the request.
	ErrNoClient = errors.New("no backend client available")
)

// IsNoRows reports whether err is or wraps ErrNoRows.
func IsNoRows(err error) bool {
	return errors.Is(err, ErrNoRows)
}
