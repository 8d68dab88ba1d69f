package errors

import "errors"

var (
	ErrNotFound = errors.New("booking not found")

	// ErrStatusConflict signals a status-guarded write that matched no
	// document: the booking is missing or no longer in the expected status.
	ErrStatusConflict = errors.New("booking is not in the expected status")
)
