package xmlable

import (
	"errors"
	"fmt"
)

// ErrSchema matches every schema violation via errors.Is.
var ErrSchema = errors.New("xmlable: schema violation")

// MissingRequiredFieldError is returned when a required field is not supplied.
type MissingRequiredFieldError struct {
	Entity string
	Field  string
}

func (e *MissingRequiredFieldError) Error() string {
	return fmt.Sprintf("xmlable: %s: required field %q is missing", e.Entity, e.Field)
}

// Is implements errors.Is.
func (e *MissingRequiredFieldError) Is(target error) bool {
	return target == ErrSchema
}

// UnknownFieldError is returned when a supplied field is not declared.
type UnknownFieldError struct {
	Entity string
	Field  string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("xmlable: %s: unknown field %q", e.Entity, e.Field)
}

// Is implements errors.Is.
func (e *UnknownFieldError) Is(target error) bool {
	return target == ErrSchema
}
