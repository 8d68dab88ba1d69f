package errors

import "errors"

var (
	ErrNotFound = errors.New("platform settings not found")
)
