package exceptions

import (
	"errors"
	"patient-service/internal/pkg/constvars"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationFailure carries every violated constraint of a payload as a
// human-readable message. It is answered with 400 and the bare message list.
type ValidationFailure struct {
	Messages []string
}

func (e *ValidationFailure) Error() string {
	return constvars.ErrDevValidationFailed + ": " + strings.Join(e.Messages, ", ")
}

func NewValidationFailure(messages ...string) *ValidationFailure {
	return &ValidationFailure{Messages: messages}
}

// ErrInputValidation converts the error returned by the validator into a
// ValidationFailure. Errors that are not validator.ValidationErrors are
// returned untouched.
func ErrInputValidation(err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}
	return &ValidationFailure{Messages: FormatAllValidationErrors(validationErrors)}
}

func ErrMalformedPayload() *ValidationFailure {
	return NewValidationFailure(constvars.ValidationMessageMalformedPatient)
}

func FormatAllValidationErrors(err error) []string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []string{constvars.ErrClientCannotProcessRequest}
	}

	messages := make([]string, 0, len(validationErrors))
	for _, fieldErr := range validationErrors {
		customMessage, ok := constvars.CustomValidationErrorMessages[fieldErr.Tag()]
		if !ok {
			customMessage = "is invalid"
		}
		messages = append(messages, fieldErr.Field()+" "+customMessage)
	}
	return messages
}
