package errors

import "errors"

var (
	ErrNotFound = errors.New("reservation not found")

	// ErrSpaceNotFound is returned when the space disappears while an
	// admission holds its lock.
	ErrSpaceNotFound = errors.New("space not found")

	ErrLockTimeout = errors.New("timed out waiting for reservation lock")
)
