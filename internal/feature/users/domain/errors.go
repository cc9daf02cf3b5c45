// Package domain defines domain-level errors for the users feature.
package domain

import "errors"

// Domain errors for user operations.
// These errors represent business rule failures and should be handled appropriately by upper layers.
var (
	// ErrUserNotFound indicates that no user was found with the given id.
	// This is returned by store lookups for absent or deleted users.
	ErrUserNotFound = errors.New("user not found")
)

// ValidationError indicates that a field value or a save violated a user rule.
// The message is the exact rule text and is safe to surface to callers.
// The entity's previous valid state is retained: an invalid value never
// reaches the field, and a failed save leaves the store untouched.
type ValidationError struct {
	Message string
}

// NewValidationError creates a ValidationError with the given rule message.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

// Error returns the rule message.
func (e *ValidationError) Error() string {
	return e.Message
}

// AccessError indicates an attempt to read a write-only attribute.
// It never affects entity state; only the offending read fails.
type AccessError struct {
	Message string
}

// NewAccessError creates an AccessError with the given message.
func NewAccessError(message string) *AccessError {
	return &AccessError{Message: message}
}

// Error returns the access violation message.
func (e *AccessError) Error() string {
	return e.Message
}
