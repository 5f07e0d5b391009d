package booking

import "errors"

var (
	ErrSubmitInFlight = errors.New("booking submission already in flight")

	ErrCloseWhileSubmitting = errors.New("booking form cannot be closed while a submission is in flight")

	ErrNotEditable = errors.New("booking form is not editable in its current state")

	ErrDisposed = errors.New("booking session has been disposed")

	ErrUnknownField = errors.New("unknown booking form field")
)
