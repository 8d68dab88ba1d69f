package errors

import (
	"fmt"
	"net/http"
)

const (
	CodeNotFound          = "NOT_FOUND"
	CodeValidation        = "VALIDATION_ERROR"
	CodeInvalidInput      = "INVALID_INPUT"
	CodeInsufficientFunds = "INSUFFICIENT_FUNDS"
	CodeNotApproved       = "NOT_APPROVED"
	CodeStaleState        = "STALE_STATE"
	CodeInvalidAmount     = "INVALID_AMOUNT"
	CodeInvalidTransition = "INVALID_TRANSITION"
	CodeInvalidRate       = "INVALID_RATE"
	CodeConflict          = "CONFLICT"
	CodeInternal          = "INTERNAL_ERROR"
)

type AppError struct {
	Code       string         `json:"code"`
	Message    string         `json:"message"`
	HTTPStatus int            `json:"-"`
	Details    map[string]any `json:"details,omitempty"`
	Err        error          `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func (e *AppError) StatusCode() int {
	return e.HTTPStatus
}

func (e *AppError) WithDetails(details map[string]any) *AppError {
	e.Details = details
	return e
}

func New(code, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

func Wrap(err error, code, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

func NotFound(resource string) *AppError {
	return &AppError{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
	}
}

func NotFoundWithID(resource, id string) *AppError {
	return &AppError{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
		Details: map[string]any{
			"resource": resource,
			"id":       id,
		},
	}
}

func Validation(message string, details map[string]any) *AppError {
	return &AppError{
		Code:       CodeValidation,
		Message:    message,
		HTTPStatus: http.StatusUnprocessableEntity,
		Details:    details,
	}
}

func InvalidInput(message string) *AppError {
	return &AppError{
		Code:       CodeInvalidInput,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

// InsufficientFunds covers both a failed debit and a technician below the
// configured minimum balance floor.
func InsufficientFunds(message string) *AppError {
	return &AppError{
		Code:       CodeInsufficientFunds,
		Message:    message,
		HTTPStatus: http.StatusPaymentRequired,
	}
}

func NotApproved(technicianID string) *AppError {
	return &AppError{
		Code:       CodeNotApproved,
		Message:    "Technician is not approved to accept jobs",
		HTTPStatus: http.StatusForbidden,
		Details: map[string]any{
			"technician_id": technicianID,
		},
	}
}

// StaleState reports a lost optimistic-concurrency race: the booking was
// claimed or transitioned by another caller between read and write.
func StaleState(message string) *AppError {
	return &AppError{
		Code:       CodeStaleState,
		Message:    message,
		HTTPStatus: http.StatusConflict,
	}
}

func InvalidAmount(message string) *AppError {
	return &AppError{
		Code:       CodeInvalidAmount,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

func InvalidTransition(message string) *AppError {
	return &AppError{
		Code:       CodeInvalidTransition,
		Message:    message,
		HTTPStatus: http.StatusConflict,
	}
}

func InvalidRate(message string) *AppError {
	return &AppError{
		Code:       CodeInvalidRate,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

func Conflict(message string) *AppError {
	return &AppError{
		Code:       CodeConflict,
		Message:    message,
		HTTPStatus: http.StatusConflict,
	}
}

func Internal(message string, err error) *AppError {
	return &AppError{
		Code:       CodeInternal,
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func IsAppError(err error) bool {
	_, ok := err.(*AppError)
	return ok
}

func AsAppError(err error) *AppError {
	if appErr, ok := err.(*AppError); ok {
		return appErr
	}
	return Internal("An unexpected error occurred", err)
}
