package model

import (
	"errors"
	"strings"
)

var (
	ErrNotFound            = errors.New("not found")
	ErrDuplicateUsername   = errors.New("username already registered")
	ErrDuplicateEnrollment = errors.New("enrollment number already exists")
	ErrInvalidCredentials  = errors.New("incorrect username or password")
	ErrInvalidSignature    = errors.New("token signature is invalid")
	ErrExpired             = errors.New("token has expired")
	ErrMalformedClaims     = errors.New("token claims are malformed")
	ErrUnknownSubject      = errors.New("token subject is unknown")
	ErrUserDisabled        = errors.New("user is disabled")
	ErrNoUpdateFields      = errors.New("no update data provided")
	ErrStoreUnavailable    = errors.New("store is unavailable")
)

// FieldError describes a single failed validation rule.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError is returned when input violates schema constraints.
type ValidationError struct {
	Fields []FieldError
}

// NewValidationError builds a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Message: message}}}
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
