package services

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ValidationError carries the human-readable message returned to the
// caller on 400-class failures.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func validation(msg string) error { return &ValidationError{Message: msg} }

// ValidationMessage extracts the message when err is a ValidationError.
func ValidationMessage(err error) (string, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Message, true
	}
	return "", false
}
