package article

import (
	"errors"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Every Service operation fails with an error matching exactly one of these.
var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrNotFound         = errors.New("not found")
	ErrForbidden        = errors.New("forbidden")
	ErrValidationFailed = errors.New("validation failed")
	ErrFault            = errors.New("internal fault")
)

// ErrUnauthenticated is the InvalidInput raised when an operation needs a
// signed-in caller.
var ErrUnauthenticated = fmt.Errorf("%w: authentication required", ErrInvalidInput)

// ValidationError reports field-level failures together with the rejected
// input, so callers can echo it back for correction.
type ValidationError struct {
	Fields validation.Errors
	Input  interface{}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrValidationFailed, e.Fields.Error())
}

func (e *ValidationError) Unwrap() error {
	return ErrValidationFailed
}

// FieldMessages flattens Fields into field -> message.
func (e *ValidationError) FieldMessages() map[string]string {
	out := make(map[string]string, len(e.Fields))
	for field, err := range e.Fields {
		out[field] = err.Error()
	}

	return out
}

func invalidInput(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

func fault(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrFault, op, err)
}
