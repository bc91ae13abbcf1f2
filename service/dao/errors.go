package dao

import "errors"

// Sentinel errors shared by every record backend; match them with errors.Is.
var (
	// ErrNotFound is returned when no record is stored under the flow id.
	ErrNotFound = errors.New("dao: not found")

	// ErrInvalidID indicates that the supplied flow id is empty or contains a
	// path separator or "..".
	ErrInvalidID = errors.New("dao: invalid id")

	// ErrNilEntity is returned when the caller attempts to persist a nil record.
	ErrNilEntity = errors.New("dao: nil entity")
)
