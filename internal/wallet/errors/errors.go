package errors

import "errors"

var (
	ErrAccountNotFound = errors.New("account not found")

	// ErrInsufficientFunds signals a conditional debit that found the balance
	// below the required floor.
	ErrInsufficientFunds = errors.New("insufficient funds")
)
