package validator

import (
	"errors"
	"fmt"
	"strings"

	"fastfix/pkg/logger"
	"fastfix/pkg/model"

	"github.com/go-playground/validator/v10"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

type AccountValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewAccountValidator(log *logger.Logger) *AccountValidator {
	return &AccountValidator{
		validate: validator.New(),
		logger:   log,
	}
}

func (v *AccountValidator) Validate(account *model.Account) error {
	if err := v.validate.Struct(account); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}

	if account.IsTechnician() {
		if account.Expertise == "" {
			return ValidationErrors{
				ValidationError{
					Field:   "Expertise",
					Message: "expertise is required for technicians",
				},
			}
		}
		if account.ApprovalStatus == "" {
			return ValidationErrors{
				ValidationError{
					Field:   "ApprovalStatus",
					Message: "approval_status is required for technicians",
				},
			}
		}
	}

	return nil
}

func (v *AccountValidator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "min":
			message = fmt.Sprintf("%s must be at least %s", err.Field(), err.Param())
		case "max":
			message = fmt.Sprintf("%s must be at most %s", err.Field(), err.Param())
		case "uuid4":
			message = fmt.Sprintf("%s must be a valid UUID", err.Field())
		case "oneof":
			message = fmt.Sprintf("%s must be one of: %s", err.Field(), err.Param())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}
