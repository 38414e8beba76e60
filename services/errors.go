package services

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// checkRequired enforces a non-empty value within the column size.
func checkRequired(field, value string, max int) error {
	if value == "" {
		return invalid("%s is required", field)
	}
	return checkLength(field, value, max)
}

func checkLength(field, value string, max int) error {
	if utf8.RuneCountInString(value) > max {
		return invalid("%s must be at most %d characters", field, max)
	}
	return nil
}

func checkOptional(field string, value *string, max int) error {
	if value == nil {
		return nil
	}
	return checkLength(field, *value, max)
}
