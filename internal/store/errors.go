package store

import "errors"

var (
	// ErrNotFound is returned when no document has the requested id
	ErrNotFound = errors.New("document not found")

	// ErrInvalidID is returned when an id is not a 24-character hex ObjectID
	ErrInvalidID = errors.New("invalid ID format")
)
