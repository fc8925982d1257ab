package service

import (
	"errors"
	"fmt"
)

// ValidationError is a request the store refuses as malformed.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

var (
	ErrInvalidCredentials = errors.New("invalid employee id or password")
	ErrForbidden          = errors.New("not allowed to access this employee")
	ErrInvalidToken       = errors.New("invalid or expired token")
)
