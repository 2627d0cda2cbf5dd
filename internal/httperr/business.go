package httperr

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// BusinessError is a rule violation identified by a stable code.
type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// ======================================================
// NOT FOUND
// ======================================================

type NotFoundError struct {
	Code string
}

func (e NotFoundError) Error() string {
	return e.Code
}

func ErrNotFound(code string) error {
	return NotFoundError{Code: code}
}

func IsNotFound(err error) bool {
	var nf NotFoundError
	return errors.As(err, &nf)
}

// ======================================================
// UNAUTHORIZED
// ======================================================

type AuthError struct {
	Code string
}

func (e AuthError) Error() string {
	return e.Code
}

func ErrUnauthorized(code string) error {
	return AuthError{Code: code}
}

func IsUnauthorized(err error) bool {
	var ae AuthError
	return errors.As(err, &ae)
}

// ======================================================
// VALIDATION
// ======================================================

// ValidationError carries one message per offending field, keyed by the
// JSON name of the field.
type ValidationError struct {
	Fields map[string]string
}

func (e ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func ErrValidation(fields map[string]string) error {
	return ValidationError{Fields: fields}
}

// ErrInvalidField is a shorthand for a single-field validation failure.
func ErrInvalidField(field, message string) error {
	return ValidationError{Fields: map[string]string{field: message}}
}

func IsValidation(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve)
}

// ValidationFields returns the field messages of err, or nil when err is not
// a validation failure.
func ValidationFields(err error) map[string]string {
	var ve ValidationError
	if errors.As(err, &ve) {
		return ve.Fields
	}
	return nil
}
