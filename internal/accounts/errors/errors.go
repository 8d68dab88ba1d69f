package errors

import "errors"

var (
	ErrNotFound = errors.New("account not found")

	// ErrNotPending signals a conditional approval write that matched no
	// pending technician document.
	ErrNotPending = errors.New("technician application is not pending")
)
