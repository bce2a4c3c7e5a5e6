// Package apperrors defines the error kinds the service layer returns so
// callers can tell a missing entity from bad input or a failed probe.
package apperrors

import "fmt"

// NotFoundError reports a lookup miss, carrying the entity kind and id.
type NotFoundError struct {
	Kind string
	ID   uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found with id: %d", e.Kind, e.ID)
}

func NewNotFound(kind string, id uint) *NotFoundError {
	return &NotFoundError{Kind: kind, ID: id}
}

// ValidationError reports a required field missing or malformed, caught
// before any mutation is committed.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func NewValidation(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// ProbeError wraps a failure of an individual probe.
type ProbeError struct {
	ResourceID uint
	Err        error
}

func (e *ProbeError) Error() string {
	return fmt.Sprintf("probe failed for resource %d: %v", e.ResourceID, e.Err)
}

func (e *ProbeError) Unwrap() error {
	return e.Err
}
